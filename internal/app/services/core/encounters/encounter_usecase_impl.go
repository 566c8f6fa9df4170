package encounters

import (
	"context"
	"net/url"
	"strings"
	"time"

	"clinical-service/internal/app/contracts"
	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/dto/requests"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"github.com/samply/golang-fhir-models/fhir-models/fhir"
	"go.uber.org/zap"
)

type encounterUsecase struct {
	Gateway  contracts.FhirGateway
	Resolver contracts.IdentifierResolver
	Log      *zap.Logger
}

func NewEncounterUsecase(
	gateway contracts.FhirGateway,
	resolver contracts.IdentifierResolver,
	logger *zap.Logger,
) contracts.EncounterUsecase {
	return &encounterUsecase{
		Gateway:  gateway,
		Resolver: resolver,
		Log:      logger,
	}
}

func (uc *encounterUsecase) FindAll(ctx context.Context) ([]fhir.Encounter, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("encounterUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bundle, err := uc.Gateway.Search(ctx, constvars.ResourceEncounter, nil)
	if err != nil {
		uc.Log.Error("encounterUsecase.FindAll error searching encounters",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	encounters, err := utils.DecodeBundleEntries(bundle, constvars.ResourceEncounter, fhir.UnmarshalEncounter)
	if err != nil {
		uc.Log.Error("encounterUsecase.FindAll error decoding bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("encounterUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(encounters)),
	)
	return encounters, nil
}

func (uc *encounterUsecase) FindForPatient(ctx context.Context, personnummer string) []fhir.Encounter {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("encounterUsecase.FindForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patient, err := uc.Resolver.Resolve(ctx, models.KindPatient, personnummer)
	if err != nil {
		uc.Log.Warn("encounterUsecase.FindForPatient could not resolve patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return []fhir.Encounter{}
	}

	params := url.Values{}
	params.Set(constvars.FhirSearchParamPatient, patient.ID)
	bundle, err := uc.Gateway.Search(ctx, constvars.ResourceEncounter, params)
	if err != nil {
		uc.Log.Warn("encounterUsecase.FindForPatient could not fetch encounters",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return []fhir.Encounter{}
	}

	encounters, err := utils.DecodeBundleEntries(bundle, constvars.ResourceEncounter, fhir.UnmarshalEncounter)
	if err != nil {
		uc.Log.Warn("encounterUsecase.FindForPatient could not decode encounters",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return []fhir.Encounter{}
	}

	uc.Log.Info("encounterUsecase.FindForPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.Int(constvars.LoggingResponseCountKey, len(encounters)),
	)
	return encounters
}

func (uc *encounterUsecase) FindByID(ctx context.Context, id string) (*fhir.Encounter, bool) {
	requestID := utils.GetRequestID(ctx)

	body, err := uc.Gateway.Read(ctx, constvars.ResourceEncounter, id)
	if err != nil {
		uc.Log.Warn("encounterUsecase.FindByID could not find encounter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, id),
			zap.Error(err),
		)
		return nil, false
	}

	encounter, err := fhir.UnmarshalEncounter(body)
	if err != nil {
		uc.Log.Warn("encounterUsecase.FindByID could not decode encounter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, id),
			zap.Error(err),
		)
		return nil, false
	}
	return &encounter, true
}

func (uc *encounterUsecase) Create(ctx context.Context, request *requests.CreateEncounter) (*fhir.Encounter, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("encounterUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.StartTime == nil {
		return nil, exceptions.ErrEncounterPeriodStartMissing()
	}
	if request.EndTime != nil && request.EndTime.Before(*request.StartTime) {
		return nil, exceptions.ErrEncounterPeriodInvalid(
			utils.FormatFHIRDateTime(*request.StartTime),
			utils.FormatFHIRDateTime(*request.EndTime),
		)
	}

	patient, err := uc.Resolver.Resolve(ctx, models.KindPatient, request.PatientPersonnummer)
	if err != nil {
		return nil, err
	}

	var performer *models.ResolvedReference
	if strings.TrimSpace(request.PractitionerPersonnummer) != "" {
		practitioner, err := uc.Resolver.Resolve(ctx, models.KindPractitioner, request.PractitionerPersonnummer)
		if err != nil {
			return nil, err
		}
		performer = &practitioner
	}

	encounter := buildEncounter(patient, performer, *request.StartTime, request.EndTime)

	id, err := uc.Gateway.Create(ctx, constvars.ResourceEncounter, encounter)
	if err != nil {
		uc.Log.Error("encounterUsecase.Create error creating encounter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("encounterUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, id),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)

	if created, ok := uc.FindByID(ctx, id); ok {
		return created, nil
	}
	encounter.Id = &id
	return &encounter, nil
}

func newPeriod(start time.Time, end *time.Time) *fhir.Period {
	period := &fhir.Period{Start: utils.Ptr(utils.FormatFHIRDateTime(start))}
	if end != nil {
		period.End = utils.Ptr(utils.FormatFHIRDateTime(*end))
	}
	return period
}

func buildEncounter(patient models.ResolvedReference, performer *models.ResolvedReference, start time.Time, end *time.Time) fhir.Encounter {
	encounter := fhir.Encounter{
		Status: fhir.EncounterStatusFinished,
		Class: utils.NewCoding(
			constvars.CodeSystemActCode,
			constvars.EncounterClassAmbulatory,
			constvars.EncounterClassAmbulatoryDisplay,
		),
		Type: []fhir.CodeableConcept{
			utils.NewCodeableConcept(
				constvars.CodeSystemSnomedCT,
				constvars.EncounterTypeCheckUp,
				constvars.EncounterTypeCheckUpDisplay,
			),
		},
		Subject: utils.NewReference(patient.Reference()),
		Period:  newPeriod(start, end),
	}

	if performer != nil {
		encounter.Participant = []fhir.EncounterParticipant{
			{
				Type: []fhir.CodeableConcept{
					utils.NewCodeableConcept(
						constvars.CodeSystemParticipationType,
						constvars.ParticipationPrimaryPerformer,
						constvars.ParticipationPrimaryPerformerDisplay,
					),
				},
				Individual: utils.NewReference(performer.Reference()),
				Period:     newPeriod(start, end),
			},
		}
	}
	return encounter
}
