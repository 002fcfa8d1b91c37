package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cms-admin/internal/config"
	"cms-admin/internal/handler"
	"cms-admin/internal/middleware"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Dashboard  *handler.DashboardHandler
	Blogs      *handler.BlogHandler
	Categories *handler.CategoryHandler
	Faqs       *handler.FaqHandler
	Files      *handler.FileHandler
	Toasts     *handler.ToastHandler
}

func New(cfg *config.Config, guard *middleware.Guard, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	r.Route("/auth", func(auth chi.Router) {
		auth.With(guard.RequireGuest).Get("/login", h.Auth.ShowLogin)
		auth.With(guard.RequireGuest).Post("/login", h.Auth.Login)
		auth.With(guard.RequireGuest).Get("/reset-password", h.Auth.ShowResetPassword)
		auth.With(guard.RequireGuest).Post("/reset-password", h.Auth.SendResetCode)
		auth.With(guard.RequireGuest).Get("/verify-otp", h.Auth.ShowVerifyOTP)
		auth.With(guard.RequireGuest).Post("/verify-otp", h.Auth.VerifyOTP)
		auth.With(guard.RequireGuest).Get("/new-password", h.Auth.ShowNewPassword)
		auth.With(guard.RequireGuest).Post("/new-password", h.Auth.SetNewPassword)
		auth.With(guard.RequireAuth).Post("/logout", h.Auth.Logout)
	})

	r.Group(func(protected chi.Router) {
		protected.Use(guard.RequireAuth)

		protected.Get("/dashboard", h.Dashboard.Index)
		protected.Get("/security", h.Dashboard.Security)

		protected.Get("/blogs", h.Blogs.Index)
		protected.Post("/blogs/create", h.Blogs.Create)
		protected.Get("/blogs/{id}/edit", h.Blogs.Edit)
		protected.Post("/blogs/{id}/edit", h.Blogs.Update)
		protected.Post("/blogs/{id}/delete", h.Blogs.Delete)

		protected.Get("/categories", h.Categories.Index)
		protected.Post("/categories/create", h.Categories.Create)
		protected.Post("/categories/{id}/edit", h.Categories.Update)
		protected.Post("/categories/{id}/delete", h.Categories.Delete)

		protected.Get("/faqs", h.Faqs.Index)
		protected.Post("/faqs/create", h.Faqs.Create)
		protected.Post("/faqs/{id}/edit", h.Faqs.Update)
		protected.Post("/faqs/{id}/delete", h.Faqs.Delete)

		protected.Post("/files/upload", h.Files.Upload)
	})

	// Toast dismissal works for guests and users alike; it only needs
	// the session to find the right queue.
	r.With(guard.AttachSession).Post("/toasts/{id}/dismiss", h.Toasts.Dismiss)

	return r
}
