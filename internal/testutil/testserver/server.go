// Package testserver runs the real route table over in-memory repositories.
package testserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"oneasy-portal/config"
	"oneasy-portal/dto"
	"oneasy-portal/internal/auth"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/routes"
	"oneasy-portal/internal/services"
	"oneasy-portal/internal/testutil"
	"oneasy-portal/internal/viewmode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const Secret = "test-secret"

type Server struct {
	App           *fiber.App
	Tokens        *auth.TokenIssuer
	Registrations *testutil.Registrations
	Users         *testutil.Users
	Auth          *services.AuthService
}

// New builds the app. Nothing listens until Start is called.
func New(t testing.TB) *Server {
	t.Helper()
	tokens := auth.NewTokenIssuer(Secret, time.Hour)
	regs := testutil.NewRegistrations()
	users := testutil.NewUsers()
	authSvc := services.NewAuthService(users, tokens, nil)
	payments := testutil.NewPayments()

	app := routes.NewApp(routes.Deps{
		Tokens:        tokens,
		Registrations: services.NewRegistrationService(regs, testutil.NewFillRequests(), payments, nil),
		Auth:          authSvc,
		Notices:       services.NewNoticeService(testutil.NewNotices()),
		Organizations: services.NewOrganizationService(testutil.NewOrganizations()),
		Payments:      services.NewPaymentService(config.DefaultPackages, payments),
		Documents:     services.NewDocumentService(t.TempDir(), auth.NewURLSigner(Secret, "http://portal.test", time.Minute)),
	})
	return &Server{App: app, Tokens: tokens, Registrations: regs, Users: users, Auth: authSvc}
}

// Start serves the app over HTTP until the test ends.
func (s *Server) Start(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(adaptor.FiberApp(s.App))
	t.Cleanup(srv.Close)
	return srv
}

// Seed creates a user directly and returns it with a bearer token.
func (s *Server) Seed(t testing.TB, role viewmode.Role, phone, email, password string) (*models.User, string) {
	t.Helper()
	req := dto.CreateUserRequest{Name: string(role) + " user", Phone: phone, Email: email, Password: password, Role: string(role)}
	super := services.Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleSuperadmin}
	u, err := s.Auth.CreateUser(context.Background(), super, req)
	if err != nil {
		t.Fatalf("seed %s: %v", role, err)
	}
	token, err := s.Tokens.Issue(u.ID.Hex(), u.Role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return u, token
}
