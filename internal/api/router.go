package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/cbti-tools/sleep-diary/docs"
	"github.com/cbti-tools/sleep-diary/internal/api/handler"
	"github.com/cbti-tools/sleep-diary/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	diaryHandler   *handler.DiaryHandler
	metricsHandler *handler.MetricsHandler
	planHandler    *handler.PlanHandler
}

func NewRouter(diaryHandler *handler.DiaryHandler, metricsHandler *handler.MetricsHandler, planHandler *handler.PlanHandler) *Router {
	return &Router{
		diaryHandler:   diaryHandler,
		metricsHandler: metricsHandler,
		planHandler:    planHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Diary
		r.Route("/diary", func(r chi.Router) {
			r.Post("/", rt.diaryHandler.Create)
			r.Get("/", rt.diaryHandler.List)
			r.Get("/{date}", rt.diaryHandler.GetByDate)
			r.Put("/{date}", rt.diaryHandler.Replace)
		})

		// Derived metrics
		r.Route("/metrics", func(r chi.Router) {
			r.Get("/nights", rt.metricsHandler.Nights)
			r.Get("/rolling", rt.metricsHandler.Rolling)
		})

		// Window plan
		r.Route("/plan", func(r chi.Router) {
			r.Get("/proposal", rt.planHandler.Proposal)
			r.Post("/apply", rt.planHandler.Apply)
			r.Get("/history", rt.planHandler.History)
			r.Put("/history/{date}", rt.planHandler.Edit)
			r.Delete("/history/{date}", rt.planHandler.Remove)
			r.Get("/active", rt.planHandler.Active)
		})
	})

	return r
}
