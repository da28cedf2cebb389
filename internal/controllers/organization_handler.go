package controllers

import (
	"oneasy-portal/dto"
	"oneasy-portal/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrganizationHandler struct {
	orgs *services.OrganizationService
}

func NewOrganizationHandler(orgs *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

// Organizations godoc
// @Summary      List organizations
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  controllers.Envelope{data=[]models.Organization}
// @Router       /admin/organizations [get]
func (h *OrganizationHandler) Organizations() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := h.orgs.Organizations(c.UserContext())
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, list)
	}
}

// Directors godoc
// @Summary      List directors
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  controllers.Envelope{data=[]models.Director}
// @Router       /admin/directors [get]
func (h *OrganizationHandler) Directors() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := h.orgs.Directors(c.UserContext())
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, list)
	}
}

// CreateOrganization godoc
// @Summary      Add an organization
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.OrganizationRequest  true  "Organization"
// @Success      201  {object}  controllers.Envelope{data=models.Organization}
// @Router       /admin/organizations [post]
func (h *OrganizationHandler) CreateOrganization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.OrganizationRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		o, err := h.orgs.CreateOrganization(c.UserContext(), req)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusCreated, o)
	}
}

// CreateDirector godoc
// @Summary      Add a director
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DirectorRequest  true  "Director"
// @Success      201  {object}  controllers.Envelope{data=models.Director}
// @Router       /admin/directors [post]
func (h *OrganizationHandler) CreateDirector() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.DirectorRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		d, err := h.orgs.CreateDirector(c.UserContext(), req)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusCreated, d)
	}
}
