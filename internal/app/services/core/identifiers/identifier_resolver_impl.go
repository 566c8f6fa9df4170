package identifiers

import (
	"context"
	"strings"

	"clinical-service/internal/app/contracts"
	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	outcomeFound = "found"
	outcomeMiss  = "miss"
	outcomeError = "error"
)

type identifierResolver struct {
	Strategies []contracts.ResolutionStrategy
	Metrics    contracts.MetricsRecorder
	Tracer     trace.Tracer
	Log        *zap.Logger
}

// NewIdentifierResolver tries identifier search first and falls back to
// reading the identifier as a FHIR id.
func NewIdentifierResolver(
	gateway contracts.FhirGateway,
	metrics contracts.MetricsRecorder,
	tracer trace.Tracer,
	logger *zap.Logger,
) contracts.IdentifierResolver {
	return NewIdentifierResolverWithStrategies(
		[]contracts.ResolutionStrategy{
			NewIdentifierSearchStrategy(gateway),
			NewDirectIDStrategy(gateway),
		},
		metrics,
		tracer,
		logger,
	)
}

func NewIdentifierResolverWithStrategies(
	strategies []contracts.ResolutionStrategy,
	metrics contracts.MetricsRecorder,
	tracer trace.Tracer,
	logger *zap.Logger,
) contracts.IdentifierResolver {
	return &identifierResolver{
		Strategies: strategies,
		Metrics:    metrics,
		Tracer:     tracer,
		Log:        logger,
	}
}

func (r *identifierResolver) Resolve(ctx context.Context, kind models.ResourceKind, identifier string) (models.ResolvedReference, error) {
	requestID := utils.GetRequestID(ctx)

	if !kind.Valid() {
		return models.ResolvedReference{}, exceptions.ErrUnsupportedResourceKind(kind.String())
	}
	if strings.TrimSpace(identifier) == "" {
		r.Log.Warn("identifierResolver.Resolve empty identifier",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, kind.String()),
		)
		return models.ResolvedReference{}, exceptions.ErrEmptyIdentifier(kind.String())
	}

	ctx, span := r.Tracer.Start(ctx, "IdentifierResolver.Resolve", trace.WithAttributes(
		attribute.String("fhir.resource_type", kind.String()),
	))
	defer span.End()

	r.Log.Info("identifierResolver.Resolve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, kind.String()),
	)

	for _, strategy := range r.Strategies {
		resolution, err := strategy.Lookup(ctx, kind, identifier)
		if err != nil {
			r.Metrics.RecordResolution(kind.String(), strategy.Name(), outcomeError)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.Log.Error("identifierResolver.Resolve strategy failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingResourceTypeKey, kind.String()),
				zap.String(constvars.LoggingStrategyKey, strategy.Name()),
				zap.Error(err),
			)
			return models.ResolvedReference{}, err
		}

		if !resolution.Found {
			r.Metrics.RecordResolution(kind.String(), strategy.Name(), outcomeMiss)
			r.Log.Debug("identifierResolver.Resolve strategy missed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingResourceTypeKey, kind.String()),
				zap.String(constvars.LoggingStrategyKey, strategy.Name()),
			)
			continue
		}

		r.Metrics.RecordResolution(kind.String(), strategy.Name(), outcomeFound)
		span.SetAttributes(
			attribute.String("resolver.strategy", resolution.Strategy),
			attribute.String("fhir.id", resolution.ID),
		)
		r.Log.Info("identifierResolver.Resolve succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, kind.String()),
			zap.String(constvars.LoggingStrategyKey, resolution.Strategy),
			zap.String(constvars.LoggingFhirIDKey, resolution.ID),
		)
		return models.ResolvedReference{Kind: kind, ID: resolution.ID}, nil
	}

	err := exceptions.ErrIdentifierNotResolved(kind.String())
	span.SetStatus(codes.Error, err.Error())
	r.Log.Warn("identifierResolver.Resolve identifier not found",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, kind.String()),
	)
	return models.ResolvedReference{}, err
}

func (r *identifierResolver) ResolveOptional(ctx context.Context, kind models.ResourceKind, identifier string) (models.ResolvedReference, bool) {
	reference, err := r.Resolve(ctx, kind, identifier)
	if err != nil {
		return models.ResolvedReference{}, false
	}
	return reference, true
}
