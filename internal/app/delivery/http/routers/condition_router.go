package routers

import (
	"clinical-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachConditionRoutes(router chi.Router, conditionController *controllers.ConditionController) {
	router.Get("/", conditionController.FindAll)
	router.Post("/", conditionController.Create)
	router.Get("/patient/{personnummer}", conditionController.FindForPatient)
	router.Get("/{id}", conditionController.FindByID)
}
