package contracts

import (
	"context"

	"clinical-service/internal/pkg/dto/requests"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
)

type ObservationUsecase interface {
	FindAll(ctx context.Context) ([]fhir.Observation, error)
	FindForPatient(ctx context.Context, personnummer string) []fhir.Observation
	FindByID(ctx context.Context, id string) (*fhir.Observation, bool)
	Create(ctx context.Context, request *requests.CreateObservation) (*fhir.Observation, error)
}
