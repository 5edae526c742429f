package http

import (
	"net/http"

	"github.com/cipromart/directory/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Auth     *AuthHandler
	Billing  *BillingHandler
	Services *ServicesHandler
	Profile  *ProfileHandler
	// Sessions resolves the signed-in user for the protected group.
	Sessions middleware.SessionResolver
}

// NewRouter constructs and returns an HTTP handler that serves the
// directory API under /api.
//
// Routes:
//
//	GET    /api/packages                  → Billing.Packages
//	GET    /api/catalog                   → Catalog
//	GET    /api/business-profile          → Profile.Business
//	POST   /api/register                  → Auth.Register
//	POST   /api/login                     → Auth.Login
//	POST   /api/logout                    → Auth.Logout
//	GET    /api/me                        → Auth.Me             (session)
//	GET    /api/payment-methods           → Billing.PaymentMethods (session)
//	PUT    /api/me/package                → Billing.SelectPackage (session)
//	POST   /api/me/payment                → Billing.Pay         (session)
//	GET    /api/me/profile                → Profile.Get         (active)
//	PUT    /api/me/profile                → Profile.Save        (active)
//	GET    /api/me/services               → Services.List       (active)
//	POST   /api/me/services               → Services.Add        (active)
//	PATCH  /api/me/services/{serviceID}   → Services.Update     (active)
//	DELETE /api/me/services/{serviceID}   → Services.Delete     (active)
//
// Middleware chain (applied in order):
//  1. RequestID and Recoverer
//  2. AllowContentType("application/json"), which rejects non-JSON bodies
//  3. WithRequestLogging(logger)
//  4. RequireSession on the protected group
//  5. RequireActiveSubscription on the dashboard routes, answering 403
//     until a payment has succeeded
func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/packages", h.Billing.Packages)
		r.Get("/catalog", Catalog)
		r.Get("/business-profile", h.Profile.Business)
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		// Protected group: requires a signed-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(h.Sessions, logger))

			r.Get("/payment-methods", h.Billing.PaymentMethods)
			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Auth.Me)
				r.Put("/package", h.Billing.SelectPackage)
				r.Post("/payment", h.Billing.Pay)

				// Dashboard: only for paid-up accounts
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireActiveSubscription)

					r.Get("/profile", h.Profile.Get)
					r.Put("/profile", h.Profile.Save)
					r.Get("/services", h.Services.List)
					r.Post("/services", h.Services.Add)
					r.Patch("/services/{serviceID}", h.Services.Update)
					r.Delete("/services/{serviceID}", h.Services.Delete)
				})
			})
		})
	})

	return r
}
