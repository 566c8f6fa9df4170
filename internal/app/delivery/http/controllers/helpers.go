package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"clinical-service/internal/app/config"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"go.uber.org/zap"
)

func requestTimeout(internalConfig *config.InternalConfig) time.Duration {
	if internalConfig == nil || internalConfig.App.RequestTimeoutInSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
