package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinical-service/internal/app/config"
	"clinical-service/internal/app/delivery/http/controllers"
	"clinical-service/internal/app/delivery/http/middlewares"
	"clinical-service/internal/app/delivery/http/routers"
	"clinical-service/internal/app/drivers/logger"
	"clinical-service/internal/app/drivers/metrics"
	"clinical-service/internal/app/drivers/tracer"
	"clinical-service/internal/app/services/core/conditions"
	"clinical-service/internal/app/services/core/encounters"
	"clinical-service/internal/app/services/core/identifiers"
	"clinical-service/internal/app/services/core/observations"
	"clinical-service/internal/app/services/fhir_client"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		zapLogger.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	tracerProvider, err := tracer.Init(context.Background(), internalConfig.Tracing, internalConfig.App.Version)
	if err != nil {
		zapLogger.Fatal("Error initializing tracer", zap.Error(err))
	}

	chiRouter := chi.NewRouter()
	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Logger:         zapLogger,
		TracerProvider: tracerProvider,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	// Metrics and tracing
	collector := metrics.NewCollector(bootstrap.InternalConfig.Metrics.Namespace)
	appTracer := bootstrap.TracerProvider.Tracer(tracer.InstrumentationName)

	// Middlewares
	middlewares, err := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig, collector)
	if err != nil {
		return err
	}

	// FHIR gateway and identifier resolver
	fhirGateway := fhir_client.NewFhirGateway(bootstrap.InternalConfig, collector, appTracer, bootstrap.Logger)
	identifierResolver := identifiers.NewIdentifierResolver(fhirGateway, collector, appTracer, bootstrap.Logger)

	// Condition
	conditionUsecase := conditions.NewConditionUsecase(fhirGateway, identifierResolver, bootstrap.Logger)
	conditionController := controllers.NewConditionController(bootstrap.Logger, bootstrap.InternalConfig, conditionUsecase)

	// Encounter
	encounterUsecase := encounters.NewEncounterUsecase(fhirGateway, identifierResolver, bootstrap.Logger)
	encounterController := controllers.NewEncounterController(bootstrap.Logger, bootstrap.InternalConfig, encounterUsecase)

	// Observation
	observationUsecase := observations.NewObservationUsecase(fhirGateway, identifierResolver, bootstrap.Logger)
	observationController := controllers.NewObservationController(bootstrap.Logger, bootstrap.InternalConfig, observationUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		collector.Handler(),
		controllers.NewHealthController(bootstrap.InternalConfig),
		conditionController,
		encounterController,
		observationController,
	)
	return nil
}
