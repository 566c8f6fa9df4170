package constvars

const (
	ResourcePatient      = "Patient"
	ResourcePractitioner = "Practitioner"
	ResourceCondition    = "Condition"
	ResourceEncounter    = "Encounter"
	ResourceObservation  = "Observation"
	ResourceBundle       = "Bundle"
)

const (
	FhirSearchParamIdentifier = "identifier"
	FhirSearchParamPatient    = "patient"
	FhirSearchParamCount      = "_count"
)

const (
	RedactedValue = "REDACTED"
)

const (
	FhirConditionClinicalStatusActive        = "active"
	FhirConditionVerificationStatusConfirmed = "confirmed"
)

const (
	ResolutionStrategyIdentifierSearch = "identifier-search"
	ResolutionStrategyDirectID         = "direct-id"
)
