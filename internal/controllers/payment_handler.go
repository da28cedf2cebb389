package controllers

import (
	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/middleware"
	"oneasy-portal/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Packages godoc
// @Summary      Package catalog
// @Tags         packages
// @Produce      json
// @Param        kind  query  string  false  "Restrict to one registration kind"
// @Success      200  {object}  controllers.Envelope{data=[]models.Package}
// @Router       /packages [get]
func (h *PaymentHandler) Packages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var kind forms.Kind
		if q := c.Query("kind"); q != "" {
			k, err := forms.ParseKind(q)
			if err != nil {
				return fail(c, fiber.StatusBadRequest, err.Error())
			}
			kind = k
		}
		return ok(c, fiber.StatusOK, h.payments.Packages(kind))
	}
}

// Pay godoc
// @Summary      Confirm a package purchase
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PaymentRequest  true  "Package"
// @Success      201  {object}  controllers.Envelope{data=models.Payment}
// @Failure      404  {object}  controllers.Envelope
// @Router       /payments [post]
func (h *PaymentHandler) Pay() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		var req dto.PaymentRequest
		if err := c.BodyParser(&req); err != nil || req.PackageID == "" {
			return fail(c, fiber.StatusBadRequest, "packageId is required")
		}
		pay, _, err := h.payments.Pay(c.UserContext(), actor, req.PackageID)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusCreated, pay)
	}
}
