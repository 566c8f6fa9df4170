package fhir_client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clinical-service/internal/app/config"
	"clinical-service/internal/app/contracts"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/samply/golang-fhir-models/fhir-models/fhir"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	operationSearch = "search"
	operationRead   = "read"
	operationCreate = "create"
)

type fhirGateway struct {
	BaseUrl        string
	SearchPageSize int
	Client         *http.Client
	Metrics        contracts.MetricsRecorder
	Tracer         trace.Tracer
	Log            *zap.Logger
}

func NewFhirGateway(
	internalConfig *config.InternalConfig,
	metrics contracts.MetricsRecorder,
	tracer trace.Tracer,
	logger *zap.Logger,
) contracts.FhirGateway {
	return &fhirGateway{
		BaseUrl:        strings.TrimSuffix(internalConfig.FHIR.BaseUrl, "/"),
		SearchPageSize: internalConfig.FHIR.SearchPageSize,
		Client: &http.Client{
			Timeout: time.Duration(internalConfig.FHIR.TimeoutInSeconds) * time.Second,
		},
		Metrics: metrics,
		Tracer:  tracer,
		Log:     logger,
	}
}

// Search runs a type-level search and returns the first result page only.
func (g *fhirGateway) Search(ctx context.Context, resourceType string, params url.Values) (*fhir.Bundle, error) {
	requestID := utils.GetRequestID(ctx)
	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	if g.SearchPageSize > 0 && query.Get(constvars.FhirSearchParamCount) == "" {
		query.Set(constvars.FhirSearchParamCount, strconv.Itoa(g.SearchPageSize))
	}

	ctx, span := g.Tracer.Start(ctx, "FhirGateway.Search", trace.WithAttributes(
		attribute.String("fhir.resource_type", resourceType),
		attribute.String("fhir.query", redactedQuery(query)),
	))
	defer span.End()

	g.Log.Info("fhirGateway.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingQueryKey, redactedQuery(query)),
	)

	endpoint := fmt.Sprintf("%s/%s", g.BaseUrl, resourceType)
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	statusCode, body, err := g.send(ctx, operationSearch, resourceType, constvars.MethodGet, endpoint, nil)
	if err != nil {
		g.fail(span, requestID, "fhirGateway.Search error sending HTTP request", err)
		return nil, err
	}

	if statusCode != constvars.StatusOK {
		err := exceptions.ErrSearchFHIRResource(outcomeError(statusCode, body), resourceType)
		g.fail(span, requestID, "fhirGateway.Search error response from FHIR server", err)
		return nil, err
	}

	bundle, err := fhir.UnmarshalBundle(body)
	if err != nil {
		decodeErr := exceptions.ErrDecodeResponse(err, resourceType)
		g.fail(span, requestID, "fhirGateway.Search error decoding bundle", decodeErr)
		return nil, decodeErr
	}

	span.SetAttributes(attribute.Int("fhir.entry_count", len(bundle.Entry)))
	g.Log.Info("fhirGateway.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Int(constvars.LoggingResponseCountKey, len(bundle.Entry)),
	)
	return &bundle, nil
}

// Read fetches a single resource by id. 404 and 410 are reported as NotFound.
func (g *fhirGateway) Read(ctx context.Context, resourceType, id string) ([]byte, error) {
	requestID := utils.GetRequestID(ctx)

	ctx, span := g.Tracer.Start(ctx, "FhirGateway.Read", trace.WithAttributes(
		attribute.String("fhir.resource_type", resourceType),
		attribute.String("fhir.id", id),
	))
	defer span.End()

	g.Log.Info("fhirGateway.Read called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)

	if strings.TrimSpace(id) == "" {
		err := exceptions.ErrFHIRResourceNotFound(nil, resourceType, id)
		g.fail(span, requestID, "fhirGateway.Read empty resource ID", err)
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/%s", g.BaseUrl, resourceType, url.PathEscape(id))
	statusCode, body, err := g.send(ctx, operationRead, resourceType, constvars.MethodGet, endpoint, nil)
	if err != nil {
		g.fail(span, requestID, "fhirGateway.Read error sending HTTP request", err)
		return nil, err
	}

	switch statusCode {
	case constvars.StatusOK:
	case constvars.StatusNotFound, constvars.StatusGone:
		err := exceptions.ErrFHIRResourceNotFound(outcomeError(statusCode, body), resourceType, id)
		g.Log.Warn("fhirGateway.Read resource not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.String(constvars.LoggingResourceIDKey, id),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
		)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	default:
		err := exceptions.ErrGetFHIRResource(outcomeError(statusCode, body), resourceType)
		g.fail(span, requestID, "fhirGateway.Read error response from FHIR server", err)
		return nil, err
	}

	g.Log.Info("fhirGateway.Read succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)
	return body, nil
}

// Create submits resource and returns the id assigned by the server.
func (g *fhirGateway) Create(ctx context.Context, resourceType string, resource any) (string, error) {
	requestID := utils.GetRequestID(ctx)

	ctx, span := g.Tracer.Start(ctx, "FhirGateway.Create", trace.WithAttributes(
		attribute.String("fhir.resource_type", resourceType),
	))
	defer span.End()

	g.Log.Info("fhirGateway.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	requestJSON, err := json.Marshal(resource)
	if err != nil {
		marshalErr := exceptions.ErrCannotMarshalJSON(err)
		g.fail(span, requestID, "fhirGateway.Create error marshaling JSON", marshalErr)
		return "", marshalErr
	}

	endpoint := fmt.Sprintf("%s/%s", g.BaseUrl, resourceType)
	statusCode, body, location, err := g.sendWithLocation(ctx, operationCreate, resourceType, constvars.MethodPost, endpoint, requestJSON)
	if err != nil {
		g.fail(span, requestID, "fhirGateway.Create error sending HTTP request", err)
		return "", err
	}

	if statusCode != constvars.StatusCreated && statusCode != constvars.StatusOK {
		err := exceptions.ErrCreateFHIRResource(outcomeError(statusCode, body), resourceType)
		g.fail(span, requestID, "fhirGateway.Create error response from FHIR server", err)
		return "", err
	}

	id := assignedID(body, location, resourceType)
	if id == "" {
		err := exceptions.ErrCreateFHIRResource(errors.New("server response carries no resource id"), resourceType)
		g.fail(span, requestID, "fhirGateway.Create missing assigned ID", err)
		return "", err
	}

	span.SetAttributes(attribute.String("fhir.id", id))
	g.Log.Info("fhirGateway.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, id),
	)
	return id, nil
}

func (g *fhirGateway) send(ctx context.Context, operation, resourceType, method, endpoint string, payload []byte) (int, []byte, error) {
	statusCode, body, _, err := g.sendWithLocation(ctx, operation, resourceType, method, endpoint, payload)
	return statusCode, body, err
}

func (g *fhirGateway) sendWithLocation(ctx context.Context, operation, resourceType, method, endpoint string, payload []byte) (int, []byte, string, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, "", exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	}
	if requestID := utils.GetRequestID(ctx); requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := g.Client.Do(req)
	if err != nil {
		g.Metrics.RecordGatewayCall(resourceType, operation, 0, time.Since(start))
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactedURL(urlErr.URL)
		}
		return 0, nil, "", exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	g.Metrics.RecordGatewayCall(resourceType, operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, "", exceptions.ErrSendHTTPRequest(err)
	}

	return resp.StatusCode, body, resp.Header.Get(constvars.HeaderLocation), nil
}

func (g *fhirGateway) fail(span trace.Span, requestID, message string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	g.Log.Error(message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
}

// redactedQuery encodes query with identifier values masked, for logs and spans.
func redactedQuery(query url.Values) string {
	if _, ok := query[constvars.FhirSearchParamIdentifier]; !ok {
		return query.Encode()
	}
	masked := make(url.Values, len(query))
	for key, values := range query {
		masked[key] = values
	}
	masked.Set(constvars.FhirSearchParamIdentifier, constvars.RedactedValue)
	return masked.Encode()
}

func redactedURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = redactedQuery(parsed.Query())
	return parsed.String()
}

// outcomeError prefers the server's first OperationOutcome diagnostics over the
// bare status code.
func outcomeError(statusCode int, body []byte) error {
	if len(body) > 0 {
		outcome, err := fhir.UnmarshalOperationOutcome(body)
		if err == nil && len(outcome.Issue) > 0 && outcome.Issue[0].Diagnostics != nil {
			return fmt.Errorf("status %d: %s", statusCode, *outcome.Issue[0].Diagnostics)
		}
	}
	return fmt.Errorf("status %d", statusCode)
}

type createdResource struct {
	ID string `json:"id"`
}

func assignedID(body []byte, location, resourceType string) string {
	if len(body) > 0 {
		var created createdResource
		if err := json.Unmarshal(body, &created); err == nil && created.ID != "" {
			return created.ID
		}
	}
	return idFromLocation(location, resourceType)
}

// idFromLocation extracts the logical id from "[base]/Type/id[/_history/vid]".
func idFromLocation(location, resourceType string) string {
	if location == "" {
		return ""
	}
	if parsed, err := url.Parse(location); err == nil {
		location = parsed.Path
	}
	segments := strings.Split(strings.Trim(location, "/"), "/")
	for i := len(segments) - 2; i >= 0; i-- {
		if segments[i] == resourceType {
			return segments[i+1]
		}
	}
	return ""
}
