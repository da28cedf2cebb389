package controllers

import (
	"context"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/middleware"
	"oneasy-portal/internal/services"
	"oneasy-portal/internal/viewmode"

	"github.com/gofiber/fiber/v2"
)

// GetFillRequests godoc
// @Summary      Read the fill-request flags of a ticket
// @Tags         fill-requests
// @Produce      json
// @Security     BearerAuth
// @Param        kind      path  string  true  "Registration kind"
// @Param        ticketId  path  string  true  "Ticket id"
// @Success      200  {object}  controllers.Envelope{data=dto.FillRequestsDTO}
// @Router       /{kind}/fill-requests/{ticketId} [get]
func (h *RegistrationHandler) GetFillRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		ticket := c.Params("ticketId")
		flags, err := h.regs.FillRequests(c.UserContext(), kind, actor, ticket)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, fillDTO(ticket, flags))
	}
}

// SetTeamFill godoc
// @Summary      Hand the form to the internal team, or take it back
// @Tags         fill-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind      path  string             true  "Registration kind"
// @Param        ticketId  path  string             true  "Ticket id"
// @Param        body      body  dto.FillToggleDTO  true  "Toggle"
// @Success      200  {object}  controllers.Envelope{data=dto.FillRequestsDTO}
// @Router       /{kind}/fill-requests/{ticketId}/team [put]
func (h *RegistrationHandler) SetTeamFill() fiber.Handler {
	return h.toggle(h.regs.SetTeamFill)
}

// SetClientFill godoc
// @Summary      Ask the client to fill the form
// @Tags         fill-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind      path  string             true  "Registration kind"
// @Param        ticketId  path  string             true  "Ticket id"
// @Param        body      body  dto.FillToggleDTO  true  "Toggle"
// @Success      200  {object}  controllers.Envelope{data=dto.FillRequestsDTO}
// @Failure      403  {object}  controllers.Envelope
// @Router       /{kind}/fill-requests/{ticketId}/client [put]
func (h *RegistrationHandler) SetClientFill() fiber.Handler {
	return h.toggle(h.regs.SetClientFill)
}

type toggleFunc func(ctx context.Context, kind forms.Kind, actor services.Actor, ticketID string, active bool) (viewmode.Flags, error)

func (h *RegistrationHandler) toggle(set toggleFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := kindParam(c)
		if err != nil {
			return err
		}
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		var body dto.FillToggleDTO
		if err := c.BodyParser(&body); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		ticket := c.Params("ticketId")
		flags, err := set(c.UserContext(), kind, actor, ticket, body.Active)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, fillDTO(ticket, flags))
	}
}

func fillDTO(ticket string, f viewmode.Flags) dto.FillRequestsDTO {
	return dto.FillRequestsDTO{TicketID: ticket, TeamFill: f.TeamFill, ClientFillRequested: f.ClientFillRequested}
}
