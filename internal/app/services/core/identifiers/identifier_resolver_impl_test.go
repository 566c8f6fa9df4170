package identifiers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"clinical-service/internal/app/config"
	"clinical-service/internal/app/contracts"
	"clinical-service/internal/app/drivers/metrics"
	"clinical-service/internal/app/mocks"
	"clinical-service/internal/app/models"
	"clinical-service/internal/app/services/fhir_client"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/exceptions"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const personnummer = "199001011234"

func identifierParams(identifier string) url.Values {
	return url.Values{constvars.FhirSearchParamIdentifier: {identifier}}
}

func newTestResolver(gateway *mocks.MockFhirGateway) (*identifierResolver, *metrics.Collector) {
	collector := metrics.NewCollector("test")
	resolver := NewIdentifierResolver(gateway, collector, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
	return resolver.(*identifierResolver), collector
}

func TestResolve_IdentifierSearchHit(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	gateway.On("Search", mock.Anything, constvars.ResourcePatient, identifierParams(personnummer)).
		Return(mocks.BundleOf(`{"resourceType":"Patient","id":"p-17"}`), nil)

	resolver, collector := newTestResolver(gateway)
	reference, err := resolver.Resolve(context.Background(), models.KindPatient, personnummer)

	require.NoError(t, err)
	assert.Equal(t, "p-17", reference.ID)
	assert.Equal(t, "Patient/p-17", reference.Reference())
	gateway.AssertNotCalled(t, "Read", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ResolutionsTotal.WithLabelValues("Patient", constvars.ResolutionStrategyIdentifierSearch, outcomeFound)))
}

func TestResolve_FirstEntryWins(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	gateway.On("Search", mock.Anything, constvars.ResourcePractitioner, identifierParams(personnummer)).
		Return(mocks.BundleOf(
			`{"resourceType":"Practitioner","id":"dr-1"}`,
			`{"resourceType":"Practitioner","id":"dr-2"}`,
		), nil)

	resolver, _ := newTestResolver(gateway)
	reference, err := resolver.Resolve(context.Background(), models.KindPractitioner, personnummer)

	require.NoError(t, err)
	assert.Equal(t, "Practitioner/dr-1", reference.Reference())
}

func TestResolve_FallsBackToDirectID(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	gateway.On("Search", mock.Anything, constvars.ResourcePatient, identifierParams("p-42")).
		Return(mocks.BundleOf(), nil)
	gateway.On("Read", mock.Anything, constvars.ResourcePatient, "p-42").
		Return([]byte(`{"resourceType":"Patient","id":"p-42"}`), nil)

	resolver, collector := newTestResolver(gateway)
	reference, err := resolver.Resolve(context.Background(), models.KindPatient, "p-42")

	require.NoError(t, err)
	assert.Equal(t, "Patient/p-42", reference.Reference())
	gateway.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ResolutionsTotal.WithLabelValues("Patient", constvars.ResolutionStrategyIdentifierSearch, outcomeMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ResolutionsTotal.WithLabelValues("Patient", constvars.ResolutionStrategyDirectID, outcomeFound)))
}

func TestResolve_BothStrategiesMissIsNotFound(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	gateway.On("Search", mock.Anything, constvars.ResourcePatient, identifierParams(personnummer)).
		Return(mocks.BundleOf(), nil)
	gateway.On("Read", mock.Anything, constvars.ResourcePatient, personnummer).
		Return(nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourcePatient, personnummer))

	resolver, _ := newTestResolver(gateway)
	_, err := resolver.Resolve(context.Background(), models.KindPatient, personnummer)

	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	assert.NotContains(t, err.Error(), personnummer)
}

func TestResolve_DirectReadFailureIsAMiss(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	gateway.On("Search", mock.Anything, constvars.ResourcePatient, identifierParams(personnummer)).
		Return(mocks.BundleOf(), nil)
	gateway.On("Read", mock.Anything, constvars.ResourcePatient, personnummer).
		Return(nil, exceptions.ErrGetFHIRResource(errors.New("status 500"), constvars.ResourcePatient))

	resolver, _ := newTestResolver(gateway)
	_, err := resolver.Resolve(context.Background(), models.KindPatient, personnummer)

	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
}

func TestResolve_SearchFailurePropagates(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	gateway.On("Search", mock.Anything, constvars.ResourcePatient, identifierParams(personnummer)).
		Return(nil, exceptions.ErrSendHTTPRequest(errors.New("connection refused")))

	resolver, collector := newTestResolver(gateway)
	_, err := resolver.Resolve(context.Background(), models.KindPatient, personnummer)

	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindBackendError))
	gateway.AssertNotCalled(t, "Read", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ResolutionsTotal.WithLabelValues("Patient", constvars.ResolutionStrategyIdentifierSearch, outcomeError)))
}

func TestResolve_EmptyIdentifierNeverCallsGateway(t *testing.T) {
	for _, identifier := range []string{"", "   "} {
		gateway := new(mocks.MockFhirGateway)
		resolver, _ := newTestResolver(gateway)

		_, err := resolver.Resolve(context.Background(), models.KindPatient, identifier)

		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidArgument))
		gateway.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
		gateway.AssertNotCalled(t, "Read", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestResolve_UnsupportedKind(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	resolver, _ := newTestResolver(gateway)

	_, err := resolver.Resolve(context.Background(), models.ResourceKind("Organization"), personnummer)

	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidArgument))
	gateway.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveOptional(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		gateway := new(mocks.MockFhirGateway)
		gateway.On("Search", mock.Anything, constvars.ResourcePractitioner, identifierParams(personnummer)).
			Return(mocks.BundleOf(`{"resourceType":"Practitioner","id":"dr-5"}`), nil)

		resolver, _ := newTestResolver(gateway)
		reference, ok := resolver.ResolveOptional(context.Background(), models.KindPractitioner, personnummer)

		assert.True(t, ok)
		assert.Equal(t, "Practitioner/dr-5", reference.Reference())
	})

	t.Run("search failure collapses to absent", func(t *testing.T) {
		gateway := new(mocks.MockFhirGateway)
		gateway.On("Search", mock.Anything, constvars.ResourcePractitioner, identifierParams(personnummer)).
			Return(nil, exceptions.ErrSendHTTPRequest(errors.New("timeout")))

		resolver, _ := newTestResolver(gateway)
		_, ok := resolver.ResolveOptional(context.Background(), models.KindPractitioner, personnummer)

		assert.False(t, ok)
	})

	t.Run("empty identifier is absent without a call", func(t *testing.T) {
		gateway := new(mocks.MockFhirGateway)
		resolver, _ := newTestResolver(gateway)

		_, ok := resolver.ResolveOptional(context.Background(), models.KindPractitioner, "")

		assert.False(t, ok)
		gateway.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})
}

type stubStrategy struct {
	name   string
	result models.Resolution
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Lookup(ctx context.Context, kind models.ResourceKind, identifier string) (models.Resolution, error) {
	s.calls++
	return s.result, s.err
}

func TestResolve_StopsAtFirstResolvingStrategy(t *testing.T) {
	first := &stubStrategy{name: "first", result: models.Unresolved("first")}
	second := &stubStrategy{name: "second", result: models.Resolved("second", "x-1")}
	third := &stubStrategy{name: "third", result: models.Resolved("third", "x-2")}

	resolver := NewIdentifierResolverWithStrategies(
		[]contracts.ResolutionStrategy{first, second, third},
		metrics.NewCollector("test"),
		noop.NewTracerProvider().Tracer("test"),
		zap.NewNop(),
	)
	reference, err := resolver.Resolve(context.Background(), models.KindPatient, personnummer)

	require.NoError(t, err)
	assert.Equal(t, "x-1", reference.ID)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestEscapeSearchValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: personnummer, expected: personnummer},
		{input: "a,b", expected: `a\,b`},
		{input: "urn:sys|123", expected: `urn:sys\|123`},
		{input: "x$y", expected: `x\$y`},
		{input: `back\slash`, expected: `back\\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeSearchValue(tt.input))
		})
	}
}

func TestResolve_SearchValueIsEscapedOnTheWire(t *testing.T) {
	var received []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/Patient" {
			received = append(received, r.URL.Query().Get(constvars.FhirSearchParamIdentifier))
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
			_, _ = w.Write([]byte(`{"resourceType":"Bundle","type":"searchset","entry":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	internalConfig := &config.InternalConfig{FHIR: config.FHIR{BaseUrl: server.URL, TimeoutInSeconds: 5}}
	collector := metrics.NewCollector("test")
	tracer := noop.NewTracerProvider().Tracer("test")
	gateway := fhir_client.NewFhirGateway(internalConfig, collector, tracer, zap.NewNop())
	resolver := NewIdentifierResolver(gateway, collector, tracer, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), models.KindPatient, "199001011234,200001011234")

	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	assert.Equal(t, []string{`199001011234\,200001011234`}, received)
}
