package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JeffMenca/pitstop-manager/internal/config"
	"github.com/JeffMenca/pitstop-manager/internal/handler"
	"github.com/JeffMenca/pitstop-manager/internal/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Session   *handler.SessionHandler
	Events    *handler.EventsHandler
	Pages     *handler.PagesHandler
	Resources *handler.ResourceHandler
}

func New(cfg *config.Config, guard *middleware.Guard, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.LoginRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimit.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Login protocol. These stay public; the state machine decides how far
	// each caller gets.
	r.Group(func(public chi.Router) {
		public.Use(middleware.Timeout(cfg.RequestTimeout))

		public.Get("/login", h.Pages.Login)
		public.Post("/login", h.Auth.Login)
		public.Get("/verify-email", h.Pages.VerifyEmail)
		public.Post("/login/verify", h.Auth.VerifyEmail)
		public.Get("/two-factor", h.Pages.TwoFactor)
		public.Post("/login/mfa", h.Auth.TwoFactor)
		public.Post("/logout", h.Auth.Logout)
		public.Get("/session", h.Session.Current)
	})

	// The event stream stays outside the timeout wrapper; it is long-lived.
	r.Get("/events", h.Events.Stream)

	// Protected areas, mirroring the front-end's route allow-lists.
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Timeout(cfg.RequestTimeout))

		protected.With(guard.RequireAuth).Get("/home", h.Pages.Home)

		protected.Route("/admin", func(admin chi.Router) {
			admin.Use(guard.RequireRole("admin"))
			admin.Get("/", h.Pages.Section("Administration"))
			admin.Get("/vehicles", h.Resources.Vehicles)
			admin.Get("/orders", h.Resources.WorkOrders)
			admin.Get("/inventory", h.Resources.Inventory)
			admin.Get("/invoices", h.Resources.Invoices)
			admin.Get("/payments", h.Resources.Payments)
		})

		protected.Route("/client", func(client chi.Router) {
			client.Use(guard.RequireRole("client", "cliente"))
			client.Get("/", h.Pages.Section("Client area"))
			client.Get("/orders", h.Resources.WorkOrders)
			client.Get("/invoices", h.Resources.Invoices)
		})

		protected.Route("/employee", func(employee chi.Router) {
			employee.Use(guard.RequireRole("emple"))
			employee.Get("/", h.Pages.Section("Employee area"))
			employee.Get("/orders", h.Resources.WorkOrders)
			employee.Get("/invoices", h.Resources.Invoices)
		})

		protected.Route("/supplier", func(supplier chi.Router) {
			supplier.Use(guard.RequireRole("prove"))
			supplier.Get("/", h.Pages.Section("Supplier area"))
			supplier.Get("/inventory", h.Resources.Inventory)
			supplier.Get("/payments", h.Resources.Payments)
		})
	})

	return r
}
