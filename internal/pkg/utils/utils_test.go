package utils

import (
	"context"
	"strings"
	"testing"
	"time"

	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/dto/requests"
	"clinical-service/internal/pkg/exceptions"

	"github.com/go-playground/validator/v10"
	"github.com/samply/golang-fhir-models/fhir-models/fhir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBundleEntries(t *testing.T) {
	bundle := &fhir.Bundle{
		Type: fhir.BundleTypeSearchset,
		Entry: []fhir.BundleEntry{
			{Resource: []byte(`{"resourceType":"Condition","id":"c-1","subject":{"reference":"Patient/p-1"}}`)},
			{Resource: []byte(`{"resourceType":"OperationOutcome","issue":[]}`)},
			{},
			{Resource: []byte(`{"resourceType":"Condition","id":"c-2","subject":{"reference":"Patient/p-1"}}`)},
		},
	}

	conditions, err := DecodeBundleEntries(bundle, constvars.ResourceCondition, fhir.UnmarshalCondition)
	require.NoError(t, err)
	require.Len(t, conditions, 2)
	assert.Equal(t, "c-1", *conditions[0].Id)
	assert.Equal(t, "c-2", *conditions[1].Id)
}

func TestDecodeBundleEntries_NilBundleIsEmpty(t *testing.T) {
	conditions, err := DecodeBundleEntries(nil, constvars.ResourceCondition, fhir.UnmarshalCondition)

	require.NoError(t, err)
	assert.NotNil(t, conditions)
	assert.Empty(t, conditions)
}

func TestDecodeBundleEntries_Malformed(t *testing.T) {
	bundle := &fhir.Bundle{Entry: []fhir.BundleEntry{{Resource: []byte(`{"resourceType":`)}}}

	_, err := DecodeBundleEntries(bundle, constvars.ResourceCondition, fhir.UnmarshalCondition)

	assert.True(t, exceptions.IsKind(err, exceptions.KindBackendError))
}

func TestNewTextCodeableConcept(t *testing.T) {
	concept := NewTextCodeableConcept(constvars.CodeSystemSnomedCT, constvars.ConditionCodeClinicalFinding, "Headache")

	require.Len(t, concept.Coding, 1)
	assert.Equal(t, "Headache", *concept.Coding[0].Display)
	assert.Equal(t, "Headache", *concept.Text)

	bare := NewCodeableConcept(constvars.CodeSystemConditionClinical, constvars.FhirConditionClinicalStatusActive, "")
	assert.Nil(t, bare.Coding[0].Display)
	assert.Nil(t, bare.Text)
}

func TestFormatFHIRTimes(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	assert.Equal(t, "2024-03-01T10:00:00+01:00", FormatFHIRDateTime(at))
	assert.Equal(t, "2024-03-01T10:00:00+01:00", FormatFHIRInstant(at))
	assert.Equal(t, "2024-03-01T10:00:00.5+01:00", FormatFHIRInstant(at.Add(500*time.Millisecond)))
}

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&requests.CreateObservation{Description: "Pulse"})

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	assert.Equal(t, "patient_personnummer", validationErrors[0].Field())
	assert.Equal(t, "patient_personnummer is required", exceptions.FormatFirstValidationError(err))

	assert.NoError(t, ValidateStruct(&requests.CreateObservation{PatientPersonnummer: "199001011234", Description: "Pulse"}))
}

func TestRequestIDs(t *testing.T) {
	id := GenerateRequestID()
	assert.True(t, strings.HasPrefix(id, constvars.REQUEST_ID_PREFIX))
	assert.NotEqual(t, id, GenerateRequestID())

	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, id)
	assert.Equal(t, id, GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}
