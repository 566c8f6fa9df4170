package constvars

// Code systems used by the clinical resources created by this service.
const (
	CodeSystemConditionClinical   = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	CodeSystemConditionVerStatus  = "http://terminology.hl7.org/CodeSystem/condition-ver-status"
	CodeSystemActCode             = "http://terminology.hl7.org/CodeSystem/v3-ActCode"
	CodeSystemParticipationType   = "http://terminology.hl7.org/CodeSystem/v3-ParticipationType"
	CodeSystemObservationCategory = "http://terminology.hl7.org/CodeSystem/observation-category"
	CodeSystemSnomedCT            = "http://snomed.info/sct"
	CodeSystemLoinc               = "http://loinc.org"
	CodeSystemUnitsOfMeasure      = "http://unitsofmeasure.org"
	QuantityUnitScore             = "{score}"
)

const (
	ConditionCodeClinicalFinding = "404684003"

	EncounterClassAmbulatory             = "AMB"
	EncounterClassAmbulatoryDisplay      = "ambulatory"
	EncounterTypeCheckUp                 = "185349003"
	EncounterTypeCheckUpDisplay          = "Encounter for check up (procedure)"
	ParticipationPrimaryPerformer        = "PPRF"
	ParticipationPrimaryPerformerDisplay = "primary performer"

	ObservationCategoryVitalSigns        = "vital-signs"
	ObservationCategoryVitalSignsDisplay = "Vital signs"
	ObservationCodeBodyTemperature       = "8310-5"
)
