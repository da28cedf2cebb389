package controllers

import (
	"oneasy-portal/dto"
	"oneasy-portal/internal/middleware"
	"oneasy-portal/internal/services"

	"github.com/gofiber/fiber/v2"
)

type NoticeHandler struct {
	notices *services.NoticeService
}

func NewNoticeHandler(notices *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// Mine godoc
// @Summary      Dashboard notices of the caller
// @Description  Global notices plus the ones targeted at the caller.
// @Tags         notices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  controllers.Envelope{data=[]models.Notice}
// @Router       /notices [get]
func (h *NoticeHandler) Mine() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		list, err := h.notices.ForActor(c.UserContext(), actor)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, list)
	}
}

// All godoc
// @Summary      Every notice
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  controllers.Envelope{data=[]models.Notice}
// @Router       /admin/notices [get]
func (h *NoticeHandler) All() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := h.notices.All(c.UserContext())
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, list)
	}
}

// Create godoc
// @Summary      Publish a notice
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.NoticeRequest  true  "Notice"
// @Success      201  {object}  controllers.Envelope{data=models.Notice}
// @Failure      400  {object}  controllers.Envelope
// @Router       /admin/notices [post]
func (h *NoticeHandler) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		var req dto.NoticeRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		n, err := h.notices.Create(c.UserContext(), actor, req)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusCreated, n)
	}
}

// Update godoc
// @Summary      Edit a notice
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "Notice id"
// @Param        body  body  dto.NoticeRequest  true  "Notice"
// @Success      200  {object}  controllers.Envelope{data=models.Notice}
// @Failure      404  {object}  controllers.Envelope
// @Router       /admin/notices/{id} [put]
func (h *NoticeHandler) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.NoticeRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		n, err := h.notices.Update(c.UserContext(), c.Params("id"), req)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, n)
	}
}

// Delete godoc
// @Summary      Remove a notice
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Notice id"
// @Success      200  {object}  controllers.Envelope
// @Failure      404  {object}  controllers.Envelope
// @Router       /admin/notices/{id} [delete]
func (h *NoticeHandler) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := h.notices.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: "notice deleted"})
	}
}
