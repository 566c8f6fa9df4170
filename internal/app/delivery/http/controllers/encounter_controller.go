package controllers

import (
	"context"
	"net/http"

	"clinical-service/internal/app/config"
	"clinical-service/internal/app/contracts"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/dto/requests"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type EncounterController struct {
	Log              *zap.Logger
	InternalConfig   *config.InternalConfig
	EncounterUsecase contracts.EncounterUsecase
}

func NewEncounterController(logger *zap.Logger, internalConfig *config.InternalConfig, encounterUsecase contracts.EncounterUsecase) *EncounterController {
	return &EncounterController{
		Log:              logger,
		InternalConfig:   internalConfig,
		EncounterUsecase: encounterUsecase,
	}
}

func (ctrl *EncounterController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EncounterController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	encounters, err := ctrl.EncounterUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("EncounterController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("EncounterController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(encounters)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindEncountersSuccessMessage, encounters)
}

func (ctrl *EncounterController) FindForPatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.FindForPatient requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EncounterController.FindForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	encounters := ctrl.EncounterUsecase.FindForPatient(ctx, chi.URLParam(r, constvars.URLParamPersonnummer))

	ctrl.Log.Info("EncounterController.FindForPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(encounters)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindEncountersSuccessMessage, encounters)
}

func (ctrl *EncounterController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EncounterController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	encounterID := chi.URLParam(r, constvars.URLParamID)
	encounter, found := ctrl.EncounterUsecase.FindByID(ctx, encounterID)
	if !found {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourceEncounter, encounterID))
		return
	}

	ctrl.Log.Info("EncounterController.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, encounterID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindEncounterSuccessMessage, encounter)
}

func (ctrl *EncounterController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.Create requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EncounterController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateEncounter)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("EncounterController.Create error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("EncounterController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	encounter, err := ctrl.EncounterUsecase.Create(ctx, request)
	if err != nil {
		ctrl.Log.Error("EncounterController.Create error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("EncounterController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateEncounterSuccessMessage, encounter)
}
