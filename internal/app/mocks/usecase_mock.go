package mocks

import (
	"context"

	"clinical-service/internal/pkg/dto/requests"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
	"github.com/stretchr/testify/mock"
)

type MockConditionUsecase struct {
	mock.Mock
}

func (m *MockConditionUsecase) FindAll(ctx context.Context) ([]fhir.Condition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fhir.Condition), args.Error(1)
}

func (m *MockConditionUsecase) FindForPatient(ctx context.Context, personnummer string) []fhir.Condition {
	args := m.Called(ctx, personnummer)
	return args.Get(0).([]fhir.Condition)
}

func (m *MockConditionUsecase) FindByID(ctx context.Context, id string) (*fhir.Condition, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*fhir.Condition), args.Bool(1)
}

func (m *MockConditionUsecase) Create(ctx context.Context, request *requests.CreateCondition) (*fhir.Condition, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir.Condition), args.Error(1)
}

type MockEncounterUsecase struct {
	mock.Mock
}

func (m *MockEncounterUsecase) FindAll(ctx context.Context) ([]fhir.Encounter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fhir.Encounter), args.Error(1)
}

func (m *MockEncounterUsecase) FindForPatient(ctx context.Context, personnummer string) []fhir.Encounter {
	args := m.Called(ctx, personnummer)
	return args.Get(0).([]fhir.Encounter)
}

func (m *MockEncounterUsecase) FindByID(ctx context.Context, id string) (*fhir.Encounter, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*fhir.Encounter), args.Bool(1)
}

func (m *MockEncounterUsecase) Create(ctx context.Context, request *requests.CreateEncounter) (*fhir.Encounter, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir.Encounter), args.Error(1)
}

type MockObservationUsecase struct {
	mock.Mock
}

func (m *MockObservationUsecase) FindAll(ctx context.Context) ([]fhir.Observation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fhir.Observation), args.Error(1)
}

func (m *MockObservationUsecase) FindForPatient(ctx context.Context, personnummer string) []fhir.Observation {
	args := m.Called(ctx, personnummer)
	return args.Get(0).([]fhir.Observation)
}

func (m *MockObservationUsecase) FindByID(ctx context.Context, id string) (*fhir.Observation, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*fhir.Observation), args.Bool(1)
}

func (m *MockObservationUsecase) Create(ctx context.Context, request *requests.CreateObservation) (*fhir.Observation, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir.Observation), args.Error(1)
}
