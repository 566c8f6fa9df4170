package main

import (
	"clinical-service/internal/app/config"
	"clinical-service/internal/app/contracts"
	"clinical-service/internal/app/drivers/metrics"
	"clinical-service/internal/app/drivers/tracer"
	"clinical-service/internal/app/services/core/conditions"
	"clinical-service/internal/app/services/core/encounters"
	"clinical-service/internal/app/services/core/identifiers"
	"clinical-service/internal/app/services/core/observations"
	"clinical-service/internal/app/services/fhir_client"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type services struct {
	Resolver     contracts.IdentifierResolver
	Conditions   contracts.ConditionUsecase
	Encounters   contracts.EncounterUsecase
	Observations contracts.ObservationUsecase
}

type servicesFactory func(opts rootOptions) (*services, error)

func newServices(opts rootOptions) (*services, error) {
	internalConfig := config.NewInternalConfig()
	if opts.fhirBaseURL != "" {
		internalConfig.FHIR.BaseUrl = opts.fhirBaseURL
	}

	logger := zap.NewNop()
	if opts.verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	collector := metrics.NewCollector(internalConfig.Metrics.Namespace)
	appTracer := otel.Tracer(tracer.InstrumentationName)

	gateway := fhir_client.NewFhirGateway(internalConfig, collector, appTracer, logger)
	return wireServices(gateway, collector, appTracer, logger), nil
}

func wireServices(gateway contracts.FhirGateway, recorder contracts.MetricsRecorder, appTracer trace.Tracer, logger *zap.Logger) *services {
	resolver := identifiers.NewIdentifierResolver(gateway, recorder, appTracer, logger)
	return &services{
		Resolver:     resolver,
		Conditions:   conditions.NewConditionUsecase(gateway, resolver, logger),
		Encounters:   encounters.NewEncounterUsecase(gateway, resolver, logger),
		Observations: observations.NewObservationUsecase(gateway, resolver, logger),
	}
}
