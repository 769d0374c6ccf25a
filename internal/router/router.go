package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/auth"
	"github.com/maanvikp20/promosite/internal/handler"
	mw "github.com/maanvikp20/promosite/internal/middleware"
)

type Options struct {
	CORSOrigins []string
	// MetricsPath is left empty to disable the Prometheus endpoint.
	MetricsPath string
}

func New(
	log *zap.Logger,
	opts Options,
	guard *auth.Guard,
	dashH *handler.DashboardHandler,
	studentH *handler.StudentHandler,
	subH *handler.SubmissionHandler,
	authH *handler.AuthHandler,
	adminH *handler.AdminHandler,
	productH *handler.ProductHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Recovery(log))
	r.Use(mw.Logger(log))
	r.Use(mw.Metrics)
	r.Use(mw.CORS(opts.CORSOrigins))

	r.Get("/", dashH.Index)
	r.Get("/health", dashH.Health)
	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}

	// Students
	r.Route("/students", func(r chi.Router) {
		r.Get("/", studentH.List)
		r.Post("/", studentH.Create)
		r.Get("/{id}", studentH.Get)
		r.Put("/{id}", studentH.Update)
		r.Patch("/{id}", studentH.Update)
		r.Delete("/{id}", studentH.Delete)
	})

	// Contact form
	r.Post("/submissions", subH.Create)
	r.Post("/submit-form", subH.Create)

	r.Get("/products", productH.List)

	// Session
	r.Post("/login", authH.Login)
	r.Post("/logout", authH.Logout)
	r.Get("/session", authH.Session)

	// Admin area
	r.Route("/admin", func(r chi.Router) {
		r.Use(guard.RequireAdmin)

		r.Get("/protected", adminH.Protected)
		r.Get("/dashboard", dashH.Dashboard)

		r.Get("/submissions", adminH.ListSubmissions)
		r.Get("/submissions/{id}", adminH.GetSubmission)
		r.Put("/submissions/{id}", adminH.UpdateSubmission)
		r.Patch("/submissions/{id}", adminH.UpdateSubmission)
		r.Delete("/submissions/{id}", adminH.DeleteSubmission)
		r.Post("/submissions/{id}/approve", adminH.Approve)

		r.Get("/approved", adminH.ListApproved)
		r.Get("/approved/{id}", adminH.GetApproved)
	})

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"Route not found"}` + "\n"))
}
