package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"quizzie-backend/internal/handlers"
	"quizzie-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	submissionHandler *handlers.SubmissionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Quiz Routes ────
		r.Route("/quizzes", func(r chi.Router) {
			// Authoring requires the owner identity
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/", quizHandler.Create)
				r.Get("/", quizHandler.List)
				r.Post("/{id}/questions/{questionID}", quizHandler.UpdateQuestion)
			})

			// Public: viewing, taking, submitting, deleting by id
			r.Get("/{id}", quizHandler.Get)
			r.Get("/{id}/take", quizHandler.Take)
			r.Post("/{id}/submit", submissionHandler.Submit)
			r.Delete("/{id}", quizHandler.Delete)
		})

		// ──── Analytics Routes ────
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", analyticsHandler.Dashboard)
			r.Get("/quizzes", analyticsHandler.Report)
			r.Get("/quizzes/{id}/questions", analyticsHandler.QuestionWise)
			r.Get("/trending", analyticsHandler.Trending)
		})
	})

	return r
}
