package middlewares

import (
	"clinical-service/internal/app/config"
	"clinical-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	MetricsRecorder contracts.MetricsRecorder
	Verifier        *TokenVerifier
	Policy          *AccessPolicy
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, metrics contracts.MetricsRecorder) (*Middlewares, error) {
	verifier, err := NewTokenVerifier(internalConfig.JWT)
	if err != nil {
		return nil, err
	}

	return &Middlewares{
		Log:             logger,
		InternalConfig:  internalConfig,
		MetricsRecorder: metrics,
		Verifier:        verifier,
		Policy:          NewAccessPolicy(internalConfig.App.EndpointPrefix),
	}, nil
}
