package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/swaggo/swag"

	_ "mindcheck/internal/docs"
	"mindcheck/internal/metrics"
	"mindcheck/internal/service"
	"mindcheck/internal/transport/rest/handler"
	"mindcheck/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	QuestionService *service.QuestionService
	SurveyService   *service.SurveyService
	AdminService    *service.AdminService
	AuthService     *service.AuthService
	Metrics         *metrics.Metrics
	Logger          *slog.Logger

	// RateLimiter guards the public POST endpoints; nil disables it
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.Use(middleware.RequestLogger(logger, c.Metrics))

	// Initialize handlers
	surveyHandler := handler.NewSurveyHandler(c.QuestionService, c.SurveyService, logger)
	adminHandler := handler.NewAdminHandler(c.AdminService, c.SurveyService, c.QuestionService, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService, logger)
	limited := c.RateLimiter.Limit

	// Method checks run before the gate so a wrong verb is 405 even without a token
	get := func(h http.Handler) http.Handler {
		return middleware.AllowMethods(h, http.MethodGet)
	}
	post := func(h http.Handler) http.Handler {
		return middleware.AllowMethods(h, http.MethodPost)
	}
	gated := func(h http.HandlerFunc) http.Handler {
		return authMW.RequireApprovedAdmin(h)
	}

	// Public survey routes
	r.Handle("/survey/questions", get(http.HandlerFunc(surveyHandler.Questions)))
	r.Handle("/survey", post(limited(http.HandlerFunc(surveyHandler.Submit))))
	r.Handle("/survey/check", post(limited(http.HandlerFunc(surveyHandler.Check))))

	// Admin account routes
	r.Handle("/admin/signup", post(limited(http.HandlerFunc(adminHandler.Signup))))
	r.Handle("/admin/login", post(limited(http.HandlerFunc(adminHandler.Login))))

	// Admin console routes (require an approved admin)
	r.Handle("/admin/list", get(gated(adminHandler.List)))
	r.Handle("/admin/review", post(gated(adminHandler.Review)))
	r.Handle("/admin/entries", get(gated(adminHandler.Entries)))
	r.Handle("/admin/entries/{id}", get(gated(adminHandler.Entry)))
	r.Handle("/admin/questions", get(gated(adminHandler.Questions)))
	r.Handle("/admin/stats", get(gated(adminHandler.Stats)))

	// Health check
	r.Handle("/health", get(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})))

	r.Handle("/metrics", get(c.Metrics.Handler()))

	r.Handle("/docs/openapi.json", get(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			logger.Error("read api doc", "error", err)
			http.Error(w, `{"error":"internal_error"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})))

	origins := c.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(r)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not_found","message":"no such route"}`))
}
