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

type ObservationController struct {
	Log                *zap.Logger
	InternalConfig     *config.InternalConfig
	ObservationUsecase contracts.ObservationUsecase
}

func NewObservationController(logger *zap.Logger, internalConfig *config.InternalConfig, observationUsecase contracts.ObservationUsecase) *ObservationController {
	return &ObservationController{
		Log:                logger,
		InternalConfig:     internalConfig,
		ObservationUsecase: observationUsecase,
	}
}

func (ctrl *ObservationController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ObservationController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ObservationController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	observations, err := ctrl.ObservationUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("ObservationController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ObservationController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(observations)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindObservationsSuccessMessage, observations)
}

func (ctrl *ObservationController) FindForPatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ObservationController.FindForPatient requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ObservationController.FindForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	observations := ctrl.ObservationUsecase.FindForPatient(ctx, chi.URLParam(r, constvars.URLParamPersonnummer))

	ctrl.Log.Info("ObservationController.FindForPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(observations)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindObservationsSuccessMessage, observations)
}

func (ctrl *ObservationController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ObservationController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ObservationController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	observationID := chi.URLParam(r, constvars.URLParamID)
	observation, found := ctrl.ObservationUsecase.FindByID(ctx, observationID)
	if !found {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourceObservation, observationID))
		return
	}

	ctrl.Log.Info("ObservationController.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, observationID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindObservationSuccessMessage, observation)
}

func (ctrl *ObservationController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ObservationController.Create requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ObservationController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateObservation)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("ObservationController.Create error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ObservationController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	observation, err := ctrl.ObservationUsecase.Create(ctx, request)
	if err != nil {
		ctrl.Log.Error("ObservationController.Create error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ObservationController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateObservationSuccessMessage, observation)
}
