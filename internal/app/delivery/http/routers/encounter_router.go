package routers

import (
	"clinical-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachEncounterRoutes(router chi.Router, encounterController *controllers.EncounterController) {
	router.Get("/", encounterController.FindAll)
	router.Post("/", encounterController.Create)
	router.Get("/patient/{personnummer}", encounterController.FindForPatient)
	router.Get("/{id}", encounterController.FindByID)
}
