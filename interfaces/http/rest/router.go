package rest

import (
	"net/http"

	"aulaadmin/application/controller"
	"aulaadmin/infrastructure/apiclient"
	"aulaadmin/interfaces/http/rest/handlers"
	"aulaadmin/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	controller *controller.Controller
	client     *apiclient.Client
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(
	ctrl *controller.Controller,
	client *apiclient.Client,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		controller: ctrl,
		client:     client,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	// Proxy: relays anything under /api/{entity}[/{id}] to the real
	// backend verbatim.
	proxyHandler := handlers.NewProxyHandler(rt.client, rt.logger)
	router.Route("/api/{entity}", func(r chi.Router) {
		r.HandleFunc("/", proxyHandler.Forward)
		r.HandleFunc("/{id}", proxyHandler.Forward)
	})

	// Admin endpoints: the dashboard's server-side engine.
	entityHandler := handlers.NewEntityHandler(rt.controller, rt.logger)
	router.Route("/admin", func(r chi.Router) {
		r.Get("/entities", entityHandler.ListEntities)
		r.Get("/state", entityHandler.GetState)
		r.Route("/entities/{entity}", func(r chi.Router) {
			r.Get("/table", entityHandler.GetTable)
			r.Get("/form", entityHandler.GetForm)
			r.Post("/records", entityHandler.CreateRecord)
			r.Put("/records/{id}", entityHandler.UpdateRecord)
			r.Delete("/records/{id}", entityHandler.DeleteRecord)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
