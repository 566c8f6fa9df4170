package utils

import (
	"clinical-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/samply/golang-fhir-models/fhir-models/fhir"
)

func Ptr[T any](v T) *T {
	return &v
}

func NewCoding(system, code, display string) fhir.Coding {
	coding := fhir.Coding{
		System: Ptr(system),
		Code:   Ptr(code),
	}
	if display != "" {
		coding.Display = Ptr(display)
	}
	return coding
}

func NewCodeableConcept(system, code, display string) fhir.CodeableConcept {
	return fhir.CodeableConcept{
		Coding: []fhir.Coding{NewCoding(system, code, display)},
	}
}

// NewTextCodeableConcept codes the concept and mirrors the display into text.
func NewTextCodeableConcept(system, code, text string) fhir.CodeableConcept {
	concept := NewCodeableConcept(system, code, text)
	if text != "" {
		concept.Text = Ptr(text)
	}
	return concept
}

func NewReference(reference string) *fhir.Reference {
	return &fhir.Reference{Reference: Ptr(reference)}
}

type resourceEnvelope struct {
	ResourceType string `json:"resourceType"`
}

// DecodeBundleEntries decodes every entry of resourceType in server order.
// Entries of other types, such as search outcome issues, are skipped.
func DecodeBundleEntries[T any](bundle *fhir.Bundle, resourceType string, unmarshal func([]byte) (T, error)) ([]T, error) {
	result := make([]T, 0)
	if bundle == nil {
		return result, nil
	}

	for _, entry := range bundle.Entry {
		if len(entry.Resource) == 0 {
			continue
		}

		var envelope resourceEnvelope
		err := json.Unmarshal(entry.Resource, &envelope)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, resourceType)
		}
		if envelope.ResourceType != resourceType {
			continue
		}

		resource, err := unmarshal(entry.Resource)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, resourceType)
		}
		result = append(result, resource)
	}
	return result, nil
}
