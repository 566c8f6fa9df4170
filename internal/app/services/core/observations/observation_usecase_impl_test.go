package observations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"clinical-service/internal/app/drivers/metrics"
	"clinical-service/internal/app/mocks"
	"clinical-service/internal/app/models"
	"clinical-service/internal/app/services/core/identifiers"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/dto/requests"
	"clinical-service/internal/pkg/exceptions"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

var measuredAt = time.Date(2025, 1, 20, 14, 5, 0, 0, time.UTC)

func patientRef(id string) models.ResolvedReference {
	return models.ResolvedReference{Kind: models.KindPatient, ID: id}
}

func createWithValue(t *testing.T, value, unit string) fhir.Observation {
	t.Helper()
	gateway := new(mocks.MockFhirGateway)
	resolver := new(mocks.MockIdentifierResolver)
	resolver.On("Resolve", mock.Anything, models.KindPatient, "199001011234").Return(patientRef("p-1"), nil)

	var submitted fhir.Observation
	gateway.On("Create", mock.Anything, constvars.ResourceObservation, mock.Anything).
		Run(func(args mock.Arguments) { submitted = args.Get(2).(fhir.Observation) }).
		Return("o-1", nil)
	gateway.On("Read", mock.Anything, constvars.ResourceObservation, "o-1").
		Return(nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourceObservation, "o-1"))

	_, err := NewObservationUsecase(gateway, resolver, zap.NewNop()).Create(context.Background(), &requests.CreateObservation{
		PatientPersonnummer: "199001011234",
		Description:         "Body temperature",
		Value:               value,
		Unit:                unit,
		EffectiveDateTime:   &measuredAt,
	})
	require.NoError(t, err)
	return submitted
}

func TestCreate_ValueEncoding(t *testing.T) {
	t.Run("number with unit becomes a quantity", func(t *testing.T) {
		observation := createWithValue(t, "72.5", "bpm")

		require.NotNil(t, observation.ValueQuantity)
		assert.Nil(t, observation.ValueString)
		assert.Equal(t, json.Number("72.5"), *observation.ValueQuantity.Value)
		assert.Equal(t, "bpm", *observation.ValueQuantity.Unit)
		assert.Equal(t, "bpm", *observation.ValueQuantity.Code)
		assert.Equal(t, constvars.CodeSystemUnitsOfMeasure, *observation.ValueQuantity.System)
	})

	t.Run("number without unit uses the score unit", func(t *testing.T) {
		observation := createWithValue(t, "10", "")

		require.NotNil(t, observation.ValueQuantity)
		assert.Equal(t, json.Number("10"), *observation.ValueQuantity.Value)
		assert.Equal(t, "{score}", *observation.ValueQuantity.Unit)
		assert.Equal(t, "{score}", *observation.ValueQuantity.Code)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		observation := createWithValue(t, " 37.2 ", "Cel")

		require.NotNil(t, observation.ValueQuantity)
		assert.Equal(t, json.Number("37.2"), *observation.ValueQuantity.Value)
	})

	t.Run("text becomes a string value", func(t *testing.T) {
		observation := createWithValue(t, "Normal", "bpm")

		assert.Nil(t, observation.ValueQuantity)
		require.NotNil(t, observation.ValueString)
		assert.Equal(t, "Normal", *observation.ValueString)
	})

	t.Run("non-finite numbers stay text", func(t *testing.T) {
		for _, value := range []string{"NaN", "Inf", "-Infinity", "1e400"} {
			observation := createWithValue(t, value, "")

			assert.Nil(t, observation.ValueQuantity, value)
			require.NotNil(t, observation.ValueString, value)
			assert.Equal(t, value, *observation.ValueString)
		}
	})

	t.Run("empty value sets nothing", func(t *testing.T) {
		observation := createWithValue(t, "", "bpm")

		assert.Nil(t, observation.ValueQuantity)
		assert.Nil(t, observation.ValueString)
	})
}

func TestCreate_FixedCodingAndTimestamps(t *testing.T) {
	observation := createWithValue(t, "36.6", "Cel")

	assert.Equal(t, fhir.ObservationStatusFinal, observation.Status)
	require.Len(t, observation.Category, 1)
	assert.Equal(t, constvars.CodeSystemObservationCategory, *observation.Category[0].Coding[0].System)
	assert.Equal(t, "vital-signs", *observation.Category[0].Coding[0].Code)
	assert.Equal(t, "Vital signs", *observation.Category[0].Coding[0].Display)
	assert.Equal(t, constvars.CodeSystemLoinc, *observation.Code.Coding[0].System)
	assert.Equal(t, "8310-5", *observation.Code.Coding[0].Code)
	assert.Equal(t, "Body temperature", *observation.Code.Coding[0].Display)
	assert.Equal(t, "Body temperature", *observation.Code.Text)
	assert.Equal(t, "Patient/p-1", *observation.Subject.Reference)
	assert.Empty(t, observation.Performer)
	assert.Equal(t, "2025-01-20T14:05:00Z", *observation.EffectiveDateTime)
	assert.Equal(t, "2025-01-20T14:05:00Z", *observation.Issued)
}

func TestCreate_PerformerIsResolvedPractitioner(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	resolver := new(mocks.MockIdentifierResolver)
	resolver.On("Resolve", mock.Anything, models.KindPatient, "199001011234").Return(patientRef("p-1"), nil)
	resolver.On("Resolve", mock.Anything, models.KindPractitioner, "197505051111").
		Return(models.ResolvedReference{Kind: models.KindPractitioner, ID: "dr-1"}, nil)

	var submitted fhir.Observation
	gateway.On("Create", mock.Anything, constvars.ResourceObservation, mock.Anything).
		Run(func(args mock.Arguments) { submitted = args.Get(2).(fhir.Observation) }).
		Return("o-2", nil)
	gateway.On("Read", mock.Anything, constvars.ResourceObservation, "o-2").
		Return([]byte(`{"resourceType":"Observation","id":"o-2","status":"final","code":{"text":"Pulse"}}`), nil)

	observation, err := NewObservationUsecase(gateway, resolver, zap.NewNop()).Create(context.Background(), &requests.CreateObservation{
		PatientPersonnummer:      "199001011234",
		PractitionerPersonnummer: "197505051111",
		Description:              "Pulse",
		Value:                    "72.5",
		Unit:                     "bpm",
	})
	require.NoError(t, err)

	require.Len(t, submitted.Performer, 1)
	assert.Equal(t, "Practitioner/dr-1", *submitted.Performer[0].Reference)
	assert.Equal(t, "o-2", *observation.Id)
	assert.Equal(t, "Pulse", *observation.Code.Text, "server copy is returned after a successful re-read")
}

func TestCreate_BlankPractitionerHasNoPerformer(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	resolver := new(mocks.MockIdentifierResolver)
	resolver.On("Resolve", mock.Anything, models.KindPatient, "199001011234").Return(patientRef("p-1"), nil)

	var submitted fhir.Observation
	gateway.On("Create", mock.Anything, constvars.ResourceObservation, mock.Anything).
		Run(func(args mock.Arguments) { submitted = args.Get(2).(fhir.Observation) }).
		Return("o-3", nil)
	gateway.On("Read", mock.Anything, constvars.ResourceObservation, "o-3").
		Return(nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourceObservation, "o-3"))

	_, err := NewObservationUsecase(gateway, resolver, zap.NewNop()).Create(context.Background(), &requests.CreateObservation{
		PatientPersonnummer:      "199001011234",
		PractitionerPersonnummer: "  ",
		Description:              "Pulse",
		Value:                    "72.5",
		Unit:                     "bpm",
	})
	require.NoError(t, err)

	assert.Empty(t, submitted.Performer)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, models.KindPractitioner, mock.Anything)
}

func TestCreate_CreateFailurePropagates(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	resolver := new(mocks.MockIdentifierResolver)
	resolver.On("Resolve", mock.Anything, models.KindPatient, "199001011234").Return(patientRef("p-1"), nil)
	createErr := exceptions.ErrCreateFHIRResource(errors.New("status 400"), constvars.ResourceObservation)
	gateway.On("Create", mock.Anything, constvars.ResourceObservation, mock.Anything).Return("", createErr)

	_, err := NewObservationUsecase(gateway, resolver, zap.NewNop()).Create(context.Background(), &requests.CreateObservation{
		PatientPersonnummer: "199001011234",
		Description:         "Pulse",
	})

	assert.ErrorIs(t, err, createErr)
}

func TestFindForPatient_SearchFailureYieldsEmptyList(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	resolver := new(mocks.MockIdentifierResolver)
	resolver.On("Resolve", mock.Anything, models.KindPatient, "199001011234").Return(patientRef("p-1"), nil)
	gateway.On("Search", mock.Anything, constvars.ResourceObservation, mock.Anything).
		Return(nil, exceptions.ErrSearchFHIRResource(errors.New("status 500"), constvars.ResourceObservation))

	observations := NewObservationUsecase(gateway, resolver, zap.NewNop()).FindForPatient(context.Background(), "199001011234")

	assert.NotNil(t, observations)
	assert.Empty(t, observations)
}

func TestFindByID_Absent(t *testing.T) {
	gateway := new(mocks.MockFhirGateway)
	gateway.On("Read", mock.Anything, constvars.ResourceObservation, "nope").
		Return(nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourceObservation, "nope"))

	observation, ok := NewObservationUsecase(gateway, new(mocks.MockIdentifierResolver), zap.NewNop()).FindByID(context.Background(), "nope")

	assert.False(t, ok)
	assert.Nil(t, observation)
}

func TestCreateThenFindByID_RoundTrip(t *testing.T) {
	gateway := mocks.NewMemoryGateway()
	gateway.AddPatient("p-5", "199001011234")
	resolver := identifiers.NewIdentifierResolver(gateway, metrics.NewCollector("test"), noop.NewTracerProvider().Tracer("test"), zap.NewNop())
	uc := NewObservationUsecase(gateway, resolver, zap.NewNop())

	created, err := uc.Create(context.Background(), &requests.CreateObservation{
		PatientPersonnummer: "199001011234",
		Description:         "Heart rate",
		Value:               "72.5",
		Unit:                "bpm",
		EffectiveDateTime:   &measuredAt,
	})
	require.NoError(t, err)

	found, ok := uc.FindByID(context.Background(), *created.Id)
	require.True(t, ok)
	assert.Equal(t, "Patient/p-5", *found.Subject.Reference)
	require.NotNil(t, found.ValueQuantity)
	assert.Equal(t, json.Number("72.5"), *found.ValueQuantity.Value)
	assert.Equal(t, "bpm", *found.ValueQuantity.Unit)

	all, err := uc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *created.Id, *all[0].Id)
}
