package observations

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
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

type observationUsecase struct {
	Gateway  contracts.FhirGateway
	Resolver contracts.IdentifierResolver
	Log      *zap.Logger
	Now      func() time.Time
}

func NewObservationUsecase(
	gateway contracts.FhirGateway,
	resolver contracts.IdentifierResolver,
	logger *zap.Logger,
) contracts.ObservationUsecase {
	return &observationUsecase{
		Gateway:  gateway,
		Resolver: resolver,
		Log:      logger,
		Now:      time.Now,
	}
}

func (uc *observationUsecase) FindAll(ctx context.Context) ([]fhir.Observation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("observationUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bundle, err := uc.Gateway.Search(ctx, constvars.ResourceObservation, nil)
	if err != nil {
		uc.Log.Error("observationUsecase.FindAll error searching observations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	observations, err := utils.DecodeBundleEntries(bundle, constvars.ResourceObservation, fhir.UnmarshalObservation)
	if err != nil {
		uc.Log.Error("observationUsecase.FindAll error decoding bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("observationUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(observations)),
	)
	return observations, nil
}

func (uc *observationUsecase) FindForPatient(ctx context.Context, personnummer string) []fhir.Observation {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("observationUsecase.FindForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patient, err := uc.Resolver.Resolve(ctx, models.KindPatient, personnummer)
	if err != nil {
		uc.Log.Warn("observationUsecase.FindForPatient could not resolve patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return []fhir.Observation{}
	}

	params := url.Values{}
	params.Set(constvars.FhirSearchParamPatient, patient.ID)
	bundle, err := uc.Gateway.Search(ctx, constvars.ResourceObservation, params)
	if err != nil {
		uc.Log.Warn("observationUsecase.FindForPatient could not fetch observations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return []fhir.Observation{}
	}

	observations, err := utils.DecodeBundleEntries(bundle, constvars.ResourceObservation, fhir.UnmarshalObservation)
	if err != nil {
		uc.Log.Warn("observationUsecase.FindForPatient could not decode observations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return []fhir.Observation{}
	}

	uc.Log.Info("observationUsecase.FindForPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.Int(constvars.LoggingResponseCountKey, len(observations)),
	)
	return observations
}

func (uc *observationUsecase) FindByID(ctx context.Context, id string) (*fhir.Observation, bool) {
	requestID := utils.GetRequestID(ctx)

	body, err := uc.Gateway.Read(ctx, constvars.ResourceObservation, id)
	if err != nil {
		uc.Log.Warn("observationUsecase.FindByID could not find observation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, id),
			zap.Error(err),
		)
		return nil, false
	}

	observation, err := fhir.UnmarshalObservation(body)
	if err != nil {
		uc.Log.Warn("observationUsecase.FindByID could not decode observation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, id),
			zap.Error(err),
		)
		return nil, false
	}
	return &observation, true
}

func (uc *observationUsecase) Create(ctx context.Context, request *requests.CreateObservation) (*fhir.Observation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("observationUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

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

	effective := uc.Now()
	if request.EffectiveDateTime != nil {
		effective = *request.EffectiveDateTime
	}

	observation := buildObservation(patient, performer, request.Description, effective)
	setValue(&observation, request.Value, request.Unit)

	id, err := uc.Gateway.Create(ctx, constvars.ResourceObservation, observation)
	if err != nil {
		uc.Log.Error("observationUsecase.Create error creating observation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("observationUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, id),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)

	if created, ok := uc.FindByID(ctx, id); ok {
		return created, nil
	}
	observation.Id = &id
	return &observation, nil
}

func buildObservation(patient models.ResolvedReference, performer *models.ResolvedReference, description string, effective time.Time) fhir.Observation {
	observation := fhir.Observation{
		Status: fhir.ObservationStatusFinal,
		Category: []fhir.CodeableConcept{
			utils.NewCodeableConcept(
				constvars.CodeSystemObservationCategory,
				constvars.ObservationCategoryVitalSigns,
				constvars.ObservationCategoryVitalSignsDisplay,
			),
		},
		Code: utils.NewTextCodeableConcept(
			constvars.CodeSystemLoinc,
			constvars.ObservationCodeBodyTemperature,
			description,
		),
		Subject:           utils.NewReference(patient.Reference()),
		EffectiveDateTime: utils.Ptr(utils.FormatFHIRDateTime(effective)),
		Issued:            utils.Ptr(utils.FormatFHIRInstant(effective)),
	}

	if performer != nil {
		observation.Performer = []fhir.Reference{*utils.NewReference(performer.Reference())}
	}
	return observation
}

// setValue stores a finite number as a quantity and anything else as text.
// An empty value leaves value[x] unset.
func setValue(observation *fhir.Observation, value, unit string) {
	if value == "" {
		return
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		observation.ValueString = utils.Ptr(value)
		return
	}

	if unit == "" {
		unit = constvars.QuantityUnitScore
	}
	observation.ValueQuantity = &fhir.Quantity{
		Value:  utils.Ptr(json.Number(strconv.FormatFloat(number, 'f', -1, 64))),
		Unit:   utils.Ptr(unit),
		System: utils.Ptr(constvars.CodeSystemUnitsOfMeasure),
		Code:   utils.Ptr(unit),
	}
}
