package controllers

import (
	"net/http"

	"clinical-service/internal/app/config"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/dto/responses"
	"clinical-service/internal/pkg/utils"
)

type HealthController struct {
	InternalConfig *config.InternalConfig
}

func NewHealthController(internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{InternalConfig: internalConfig}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, responses.HealthCheck{
		Status:  "ok",
		Version: ctrl.InternalConfig.App.Version,
	})
}
