package routers

import (
	"clinical-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachObservationRoutes(router chi.Router, observationController *controllers.ObservationController) {
	router.Get("/", observationController.FindAll)
	router.Post("/", observationController.Create)
	router.Get("/patient/{personnummer}", observationController.FindForPatient)
	router.Get("/{id}", observationController.FindByID)
}
