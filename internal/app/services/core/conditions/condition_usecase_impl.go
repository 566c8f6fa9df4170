package conditions

import (
	"context"
	"net/url"
	"strings"
	"time"

	"clinical-service/internal/app/contracts"
	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/dto/requests"
	"clinical-service/internal/pkg/utils"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
	"go.uber.org/zap"
)

type conditionUsecase struct {
	Gateway  contracts.FhirGateway
	Resolver contracts.IdentifierResolver
	Log      *zap.Logger
	Now      func() time.Time
}

func NewConditionUsecase(
	gateway contracts.FhirGateway,
	resolver contracts.IdentifierResolver,
	logger *zap.Logger,
) contracts.ConditionUsecase {
	return &conditionUsecase{
		Gateway:  gateway,
		Resolver: resolver,
		Log:      logger,
		Now:      time.Now,
	}
}

func (uc *conditionUsecase) FindAll(ctx context.Context) ([]fhir.Condition, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("conditionUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bundle, err := uc.Gateway.Search(ctx, constvars.ResourceCondition, nil)
	if err != nil {
		uc.Log.Error("conditionUsecase.FindAll error searching conditions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	conditions, err := utils.DecodeBundleEntries(bundle, constvars.ResourceCondition, fhir.UnmarshalCondition)
	if err != nil {
		uc.Log.Error("conditionUsecase.FindAll error decoding bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("conditionUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(conditions)),
	)
	return conditions, nil
}

// FindForPatient never fails: any resolution or search problem yields an empty list.
func (uc *conditionUsecase) FindForPatient(ctx context.Context, personnummer string) []fhir.Condition {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("conditionUsecase.FindForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patient, err := uc.Resolver.Resolve(ctx, models.KindPatient, personnummer)
	if err != nil {
		uc.Log.Warn("conditionUsecase.FindForPatient could not resolve patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return []fhir.Condition{}
	}

	params := url.Values{}
	params.Set(constvars.FhirSearchParamPatient, patient.ID)
	bundle, err := uc.Gateway.Search(ctx, constvars.ResourceCondition, params)
	if err != nil {
		uc.Log.Warn("conditionUsecase.FindForPatient could not fetch conditions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return []fhir.Condition{}
	}

	conditions, err := utils.DecodeBundleEntries(bundle, constvars.ResourceCondition, fhir.UnmarshalCondition)
	if err != nil {
		uc.Log.Warn("conditionUsecase.FindForPatient could not decode conditions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return []fhir.Condition{}
	}

	uc.Log.Info("conditionUsecase.FindForPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.Int(constvars.LoggingResponseCountKey, len(conditions)),
	)
	return conditions
}

func (uc *conditionUsecase) FindByID(ctx context.Context, id string) (*fhir.Condition, bool) {
	requestID := utils.GetRequestID(ctx)

	body, err := uc.Gateway.Read(ctx, constvars.ResourceCondition, id)
	if err != nil {
		uc.Log.Warn("conditionUsecase.FindByID could not find condition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, id),
			zap.Error(err),
		)
		return nil, false
	}

	condition, err := fhir.UnmarshalCondition(body)
	if err != nil {
		uc.Log.Warn("conditionUsecase.FindByID could not decode condition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, id),
			zap.Error(err),
		)
		return nil, false
	}
	return &condition, true
}

func (uc *conditionUsecase) Create(ctx context.Context, request *requests.CreateCondition) (*fhir.Condition, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("conditionUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patient, err := uc.Resolver.Resolve(ctx, models.KindPatient, request.PatientPersonnummer)
	if err != nil {
		return nil, err
	}

	var recorder *models.ResolvedReference
	if strings.TrimSpace(request.PractitionerPersonnummer) != "" {
		practitioner, err := uc.Resolver.Resolve(ctx, models.KindPractitioner, request.PractitionerPersonnummer)
		if err != nil {
			return nil, err
		}
		recorder = &practitioner
	}

	recordedDate := uc.Now()
	if request.RecordedDate != nil {
		recordedDate = *request.RecordedDate
	}

	condition := buildCondition(patient, recorder, request.Description, recordedDate)

	id, err := uc.Gateway.Create(ctx, constvars.ResourceCondition, condition)
	if err != nil {
		uc.Log.Error("conditionUsecase.Create error creating condition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("conditionUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, id),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)

	if created, ok := uc.FindByID(ctx, id); ok {
		return created, nil
	}
	condition.Id = &id
	return &condition, nil
}

func buildCondition(patient models.ResolvedReference, recorder *models.ResolvedReference, description string, recordedDate time.Time) fhir.Condition {
	recorded := utils.FormatFHIRDateTime(recordedDate)

	condition := fhir.Condition{
		ClinicalStatus: utils.Ptr(utils.NewCodeableConcept(
			constvars.CodeSystemConditionClinical,
			constvars.FhirConditionClinicalStatusActive,
			"",
		)),
		VerificationStatus: utils.Ptr(utils.NewCodeableConcept(
			constvars.CodeSystemConditionVerStatus,
			constvars.FhirConditionVerificationStatusConfirmed,
			"",
		)),
		Code: utils.Ptr(utils.NewTextCodeableConcept(
			constvars.CodeSystemSnomedCT,
			constvars.ConditionCodeClinicalFinding,
			description,
		)),
		Subject:       *utils.NewReference(patient.Reference()),
		RecordedDate:  &recorded,
		OnsetDateTime: &recorded,
	}

	if recorder != nil {
		condition.Recorder = utils.NewReference(recorder.Reference())
	}
	return condition
}
