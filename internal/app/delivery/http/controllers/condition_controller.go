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

type ConditionController struct {
	Log              *zap.Logger
	InternalConfig   *config.InternalConfig
	ConditionUsecase contracts.ConditionUsecase
}

func NewConditionController(logger *zap.Logger, internalConfig *config.InternalConfig, conditionUsecase contracts.ConditionUsecase) *ConditionController {
	return &ConditionController{
		Log:              logger,
		InternalConfig:   internalConfig,
		ConditionUsecase: conditionUsecase,
	}
}

func (ctrl *ConditionController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ConditionController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ConditionController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	conditions, err := ctrl.ConditionUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("ConditionController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ConditionController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(conditions)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindConditionsSuccessMessage, conditions)
}

func (ctrl *ConditionController) FindForPatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ConditionController.FindForPatient requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ConditionController.FindForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	conditions := ctrl.ConditionUsecase.FindForPatient(ctx, chi.URLParam(r, constvars.URLParamPersonnummer))

	ctrl.Log.Info("ConditionController.FindForPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(conditions)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindConditionsSuccessMessage, conditions)
}

func (ctrl *ConditionController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ConditionController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ConditionController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	conditionID := chi.URLParam(r, constvars.URLParamID)
	condition, found := ctrl.ConditionUsecase.FindByID(ctx, conditionID)
	if !found {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourceCondition, conditionID))
		return
	}

	ctrl.Log.Info("ConditionController.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, conditionID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindConditionSuccessMessage, condition)
}

func (ctrl *ConditionController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ConditionController.Create requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ConditionController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateCondition)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("ConditionController.Create error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ConditionController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	condition, err := ctrl.ConditionUsecase.Create(ctx, request)
	if err != nil {
		ctrl.Log.Error("ConditionController.Create error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ConditionController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateConditionSuccessMessage, condition)
}
