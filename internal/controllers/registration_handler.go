package controllers

import (
	"context"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/middleware"
	"oneasy-portal/internal/services"

	"github.com/gofiber/fiber/v2"
)

type RegistrationHandler struct {
	regs *services.RegistrationService
	docs *services.DocumentService
}

func NewRegistrationHandler(regs *services.RegistrationService, docs *services.DocumentService) *RegistrationHandler {
	return &RegistrationHandler{regs: regs, docs: docs}
}

// WithKind pins the registration kind of a route group.
func WithKind(kind forms.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("kind", kind)
		return c.Next()
	}
}

func kindParam(c *fiber.Ctx) (forms.Kind, error) {
	if kind, ok := c.Locals("kind").(forms.Kind); ok {
		return kind, nil
	}
	kind, err := forms.ParseKind(c.Params("kind"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return kind, nil
}

// Submit godoc
// @Summary      Create or update a registration draft
// @Description  Without ticketId a new draft is created and a ticket id issued. With ticketId the draft is updated in place. status "submitted" finalizes it.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string                     true  "startup-india | gst | private-limited | proprietorship"
// @Param        body  body  dto.SubmitRegistrationDTO  true  "Draft"
// @Success      200   {object}  controllers.Envelope{data=dto.RegistrationDTO}
// @Failure      400   {object}  controllers.Envelope
// @Failure      404   {object}  controllers.Envelope
// @Failure      423   {object}  controllers.Envelope
// @Router       /{kind}/submit [post]
func (h *RegistrationHandler) Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		var body dto.SubmitRegistrationDTO
		if err := c.BodyParser(&body); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}

		reg, err := h.regs.Save(c.UserContext(), kind, actor, body)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, dto.NewRegistrationDTO(reg))
	}
}

// Get godoc
// @Summary      Get a registration by ticket id
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        kind      path  string  true  "Registration kind"
// @Param        ticketId  path  string  true  "Ticket id"
// @Success      200  {object}  controllers.Envelope{data=dto.RegistrationDTO}
// @Failure      404  {object}  controllers.Envelope
// @Router       /{kind}/{ticketId} [get]
func (h *RegistrationHandler) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		reg, err := h.regs.Get(c.UserContext(), kind, actor, c.Params("ticketId"))
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, dto.NewRegistrationDTO(reg))
	}
}

// List godoc
// @Summary      List registrations of a kind
// @Description  Clients see their own registrations, staff see all of them.
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string  true  "Registration kind"
// @Success      200  {object}  controllers.Envelope{data=[]dto.RegistrationDTO}
// @Router       /{kind} [get]
func (h *RegistrationHandler) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		regs, err := h.regs.List(c.UserContext(), kind, actor)
		if err != nil {
			return err
		}
		out := make([]dto.RegistrationDTO, 0, len(regs))
		for i := range regs {
			out = append(out, dto.NewRegistrationDTO(&regs[i]))
		}
		return ok(c, fiber.StatusOK, out)
	}
}

// SignedURL godoc
// @Summary      Sign a document reference
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        kind     path   string  true  "Registration kind"
// @Param        fileUrl  query  string  true  "Document reference"
// @Success      200  {object}  controllers.Envelope{data=dto.SignedURLDTO}
// @Failure      400  {object}  controllers.Envelope
// @Failure      403  {object}  controllers.Envelope
// @Router       /{kind}/signed-url [get]
func (h *RegistrationHandler) SignedURL() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		link, exp, err := h.docs.Sign(c.UserContext(), actor, c.Query("fileUrl"), func(ctx context.Context, ref string) (bool, error) {
			return h.regs.References(ctx, kind, actor, ref)
		})
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, dto.SignedURLDTO{SignedURL: link, ExpiresAt: exp})
	}
}
