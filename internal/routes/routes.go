package routes

import (
	"strings"

	"oneasy-portal/internal/auth"
	"oneasy-portal/internal/controllers"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/logging"
	"oneasy-portal/internal/middleware"
	"oneasy-portal/internal/services"
	"oneasy-portal/internal/viewmode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Deps is everything the route table needs.
type Deps struct {
	Tokens        *auth.TokenIssuer
	Registrations *services.RegistrationService
	Auth          *services.AuthService
	Notices       *services.NoticeService
	Organizations *services.OrganizationService
	Payments      *services.PaymentService
	Documents     *services.DocumentService
	CORSOrigins   string
	Logger        *zap.Logger
}

// NewApp builds the fiber app with the envelope error handler and every route.
func NewApp(d Deps) *fiber.App {
	log := logging.OrNop(d.Logger)
	app := fiber.New(fiber.Config{
		AppName:      "oneasy-portal",
		ErrorHandler: controllers.ErrorHandler(log),
		BodyLimit:    20 * 1024 * 1024,
	})

	origins := d.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
		ExposeHeaders: middleware.HeaderRequestID,
	}))
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	Setup(app, d)
	return app
}

// Setup registers the API routes on app.
func Setup(app *fiber.App, d Deps) {
	authed := middleware.JWTAuth(d.Tokens)
	staff := middleware.RequireRoles(viewmode.RoleAdmin, viewmode.RoleSuperadmin)

	authH := controllers.NewAuthHandler(d.Auth)
	app.Post("/register", authH.Register())
	app.Post("/login", authH.Login())
	app.Get("/me", authed, authH.Me())

	payH := controllers.NewPaymentHandler(d.Payments)
	app.Get("/packages", payH.Packages())
	app.Post("/payments", authed, payH.Pay())

	docH := controllers.NewDocumentHandler(d.Documents)
	app.Get("/documents/view", docH.View())
	app.Post("/documents", authed, docH.Upload())

	noticeH := controllers.NewNoticeHandler(d.Notices)
	app.Get("/notices", authed, noticeH.Mine())

	orgH := controllers.NewOrganizationHandler(d.Organizations)
	admin := app.Group("/admin", authed, staff)
	admin.Post("/users", authH.CreateUser())
	admin.Get("/clients", authH.Clients())
	admin.Get("/notices", noticeH.All())
	admin.Post("/notices", noticeH.Create())
	admin.Put("/notices/:id", noticeH.Update())
	admin.Delete("/notices/:id", noticeH.Delete())
	admin.Get("/organizations", orgH.Organizations())
	admin.Post("/organizations", orgH.CreateOrganization())
	admin.Get("/directors", orgH.Directors())
	admin.Post("/directors", orgH.CreateDirector())

	super := app.Group("/superadmin", authed, middleware.RequireRoles(viewmode.RoleSuperadmin))
	super.Get("/users", authH.Users())

	regH := controllers.NewRegistrationHandler(d.Registrations, d.Documents)
	for _, kind := range forms.Kinds {
		SetupRegistration(app, kind, authed, regH)
	}
}

// SetupRegistration mounts the draft, document-link and fill-request routes
// of one registration kind under /<segment>.
func SetupRegistration(app *fiber.App, kind forms.Kind, authed fiber.Handler, h *controllers.RegistrationHandler) {
	g := app.Group("/"+strings.Trim(kind.Segment(), "/"), authed, controllers.WithKind(kind))
	g.Post("/submit", h.Submit())
	g.Get("/signed-url", h.SignedURL())
	g.Get("/fill-requests/:ticketId", h.GetFillRequests())
	g.Put("/fill-requests/:ticketId/team", h.SetTeamFill())
	g.Put("/fill-requests/:ticketId/client", h.SetClientFill())
	g.Get("/:ticketId", h.Get())
	g.Get("/", h.List())
}
