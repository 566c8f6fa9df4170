package contracts

import (
	"context"
	"net/url"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
)

// FhirGateway is the only component that talks to the FHIR backend.
type FhirGateway interface {
	Search(ctx context.Context, resourceType string, params url.Values) (*fhir.Bundle, error)
	Read(ctx context.Context, resourceType, id string) ([]byte, error)
	Create(ctx context.Context, resourceType string, resource any) (string, error)
}
