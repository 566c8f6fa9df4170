package contracts

import (
	"context"

	"clinical-service/internal/pkg/dto/requests"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
)

type ConditionUsecase interface {
	FindAll(ctx context.Context) ([]fhir.Condition, error)
	FindForPatient(ctx context.Context, personnummer string) []fhir.Condition
	FindByID(ctx context.Context, id string) (*fhir.Condition, bool)
	Create(ctx context.Context, request *requests.CreateCondition) (*fhir.Condition, error)
}
