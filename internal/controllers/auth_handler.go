package controllers

import (
	"oneasy-portal/dto"
	"oneasy-portal/internal/middleware"
	"oneasy-portal/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary      Client self sign-up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "New client"
// @Success      201  {object}  controllers.Envelope{data=models.User}
// @Failure      400  {object}  controllers.Envelope
// @Failure      409  {object}  controllers.Envelope
// @Router       /register [post]
func (h *AuthHandler) Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		u, err := h.auth.Register(c.UserContext(), req)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusCreated, u)
	}
}

// Login godoc
// @Summary      Log in with email or phone
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200  {object}  controllers.Envelope{data=dto.LoginResponse}
// @Failure      401  {object}  controllers.Envelope
// @Router       /login [post]
func (h *AuthHandler) Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		resp, err := h.auth.Login(c.UserContext(), req)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, resp)
	}
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  controllers.Envelope{data=models.User}
// @Router       /me [get]
func (h *AuthHandler) Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		u, err := h.auth.Me(c.UserContext(), actor)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, u)
	}
}

// CreateUser godoc
// @Summary      Add a user from the admin console
// @Description  Admins create clients; superadmins may also create admins.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "New user"
// @Success      201  {object}  controllers.Envelope{data=models.User}
// @Failure      400  {object}  controllers.Envelope
// @Failure      403  {object}  controllers.Envelope
// @Failure      409  {object}  controllers.Envelope
// @Router       /admin/users [post]
func (h *AuthHandler) CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFrom(c)
		if err != nil {
			return err
		}
		var req dto.CreateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		u, err := h.auth.CreateUser(c.UserContext(), actor, req)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusCreated, u)
	}
}

// Clients godoc
// @Summary      List client accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  controllers.Envelope{data=[]models.User}
// @Router       /admin/clients [get]
func (h *AuthHandler) Clients() fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := h.auth.Clients(c.UserContext())
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, users)
	}
}

// Users godoc
// @Summary      List every account
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  controllers.Envelope{data=[]models.User}
// @Router       /superadmin/users [get]
func (h *AuthHandler) Users() fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := h.auth.Users(c.UserContext())
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, users)
	}
}
