package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Logger         *zap.Logger
	TracerProvider *sdktrace.TracerProvider
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.TracerProvider != nil {
		err := b.TracerProvider.Shutdown(ctx)
		if err != nil {
			return err
		}
		log.Println("Successfully flushing tracer provider")
	}

	// Sync on stdout/stderr returns EINVAL on some platforms; nothing to act on.
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
