package mocks

import (
	"context"
	"net/url"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
	"github.com/stretchr/testify/mock"
)

type MockFhirGateway struct {
	mock.Mock
}

func (m *MockFhirGateway) Search(ctx context.Context, resourceType string, params url.Values) (*fhir.Bundle, error) {
	args := m.Called(ctx, resourceType, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir.Bundle), args.Error(1)
}

func (m *MockFhirGateway) Read(ctx context.Context, resourceType, id string) ([]byte, error) {
	args := m.Called(ctx, resourceType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFhirGateway) Create(ctx context.Context, resourceType string, resource any) (string, error) {
	args := m.Called(ctx, resourceType, resource)
	return args.String(0), args.Error(1)
}
