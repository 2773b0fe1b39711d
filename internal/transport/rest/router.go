package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authpkg "github.com/conceptdost/conceptdost-backend/internal/auth"
	"github.com/conceptdost/conceptdost-backend/internal/config"
	"github.com/conceptdost/conceptdost-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Generate   *GenerateHandler
	Guest      *GuestHandler
	History    *HistoryHandler
	SavedCards *SavedCardsHandler
	Health     *HealthHandler
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (authpkg.TokenClaims, error)
}

// RouterDeps carries the cross-cutting pieces the routing table needs
// beyond the handlers themselves.
type RouterDeps struct {
	Validator tokenValidator
	Limiter   *middleware.RateLimiter
	Server    config.ServerConfig
	CORS      config.CORSConfig
	Logger    *slog.Logger
}

// NewRouter assembles the routing table. Generation and simplify are
// public: anonymous callers are admitted against the guest quota, so
// identity resolution happens in Auth but enforcement only on the
// user-owned routes below.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))
	if deps.Limiter != nil && deps.Server.RateLimitPerMinute > 0 {
		r.Use(deps.Limiter.Limit(deps.Server.RateLimitPerMinute))
	}
	r.Use(middleware.Auth(deps.Validator))

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health.Health)
		r.Get("/live", h.Health.Live)
		r.Get("/ready", h.Health.Ready)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", h.Generate.Generate)
		r.Post("/simplify", h.Generate.Simplify)
		r.Get("/guest-status", h.Guest.Status)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/logout", h.Auth.Logout)
				r.Delete("/account", h.Auth.DeleteAccount)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/history", h.History.List)
			r.Delete("/history", h.History.Delete)

			r.Get("/saved-cards", h.SavedCards.List)
			r.Post("/saved-cards/toggle", h.SavedCards.Toggle)
			r.Patch("/saved-cards", h.SavedCards.Update)
			r.Delete("/saved-cards", h.SavedCards.Delete)
		})
	})

	return r
}
