package contracts

import (
	"context"

	"clinical-service/internal/pkg/dto/requests"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
)

type EncounterUsecase interface {
	FindAll(ctx context.Context) ([]fhir.Encounter, error)
	FindForPatient(ctx context.Context, personnummer string) []fhir.Encounter
	FindByID(ctx context.Context, id string) (*fhir.Encounter, bool)
	Create(ctx context.Context, request *requests.CreateEncounter) (*fhir.Encounter, error)
}
