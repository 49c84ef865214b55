package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/daily-pulse/internal/api/http/handlers"
	"github.com/spec-kit/daily-pulse/internal/auth"
	"github.com/spec-kit/daily-pulse/internal/ratelimit"
)

// NewApp builds the Fiber application. Paths are routed while still escaped,
// so an encoded slash stays inside one segment; handlers decode parameters.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: errorHandler,
	})
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tokens         *handlers.TokenHandler
	Users          *handlers.UsersHandler
	News           *handlers.NewsHandler
	Publishers     *handlers.PublishersHandler
	AuthMiddleware *auth.AuthMiddleware
	// Admins is read by the admin gate on every admin request.
	Admins auth.UserLookup

	Limiter         ratelimit.Limiter
	RateLimit       int
	RateLimitWindow time.Duration
	Logger          *zap.Logger
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authed := cfg.AuthMiddleware.Handle
	admin := auth.RequireAdmin(cfg.Admins)
	limited := func(scope string) fiber.Handler {
		return ratelimit.Middleware(cfg.Limiter, scope, cfg.RateLimit, cfg.RateLimitWindow, cfg.Logger)
	}

	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post("/jwt", limited("jwt"), cfg.Tokens.Issue)

	app.Get("/users", authed, admin, cfg.Users.List)
	app.Get("/length", cfg.Users.Stats)
	app.Get("/premiumUser/:email", cfg.Users.GetByEmail)
	app.Get("/users/admin/:email", authed, auth.RequireSelf("email"), cfg.Users.AdminStatus)
	app.Post("/users", limited("users"), cfg.Users.Create)
	app.Delete("/users/:id", authed, admin, cfg.Users.Delete)
	app.Patch("/users/admin/:id", authed, admin, cfg.Users.Promote)
	app.Patch("/users/payment/:email", authed, cfg.Users.MarkPremium)

	app.Post("/news", authed, cfg.News.Create)
	app.Get("/news", cfg.News.List)
	app.Get("/news/user/:email", authed, cfg.News.ListByAuthor)
	app.Get("/news/status", cfg.News.ListApproved)
	app.Get("/news/premium", authed, cfg.News.ListPremium)
	app.Get("/news/title/:name", cfg.News.SearchByTitle)
	app.Get("/news/publisher/:name", cfg.News.SearchByPublisher)
	app.Get("/news/:id", cfg.News.Get)
	app.Get("/trendingNews", cfg.News.Trending)
	app.Patch("/news/updateStatus/:id", authed, admin, cfg.News.UpdateStatus)
	app.Delete("/news/:id", authed, cfg.News.Delete)
	app.Patch("/news/:id", authed, cfg.News.Update)

	app.Post("/publisher", authed, admin, cfg.Publishers.Create)
	app.Get("/publisher", cfg.Publishers.List)
}
