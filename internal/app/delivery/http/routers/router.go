package routers

import (
	"net/http"
	"time"

	"clinical-service/internal/app/config"
	"clinical-service/internal/app/delivery/http/controllers"
	"clinical-service/internal/app/delivery/http/middlewares"
	"clinical-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	metricsHandler http.Handler,
	healthController *controllers.HealthController,
	conditionController *controllers.ConditionController,
	encounterController *controllers.EncounterController,
	observationController *controllers.ObservationController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.Metrics)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	router.Get("/health", healthController.Check)
	router.Method(http.MethodGet, "/metrics", metricsHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.Authorize)

		r.Route("/"+constvars.ResourceConditions, func(r chi.Router) {
			attachConditionRoutes(r, conditionController)
		})

		r.Route("/"+constvars.ResourceEncounters, func(r chi.Router) {
			attachEncounterRoutes(r, encounterController)
		})

		r.Route("/"+constvars.ResourceObservations, func(r chi.Router) {
			attachObservationRoutes(r, observationController)
		})
	})
}
