package mocks

import (
	"context"

	"clinical-service/internal/app/models"

	"github.com/stretchr/testify/mock"
)

type MockIdentifierResolver struct {
	mock.Mock
}

func (m *MockIdentifierResolver) Resolve(ctx context.Context, kind models.ResourceKind, identifier string) (models.ResolvedReference, error) {
	args := m.Called(ctx, kind, identifier)
	return args.Get(0).(models.ResolvedReference), args.Error(1)
}

func (m *MockIdentifierResolver) ResolveOptional(ctx context.Context, kind models.ResourceKind, identifier string) (models.ResolvedReference, bool) {
	args := m.Called(ctx, kind, identifier)
	return args.Get(0).(models.ResolvedReference), args.Bool(1)
}
