package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	FindConditionsSuccessMessage    = "conditions retrieved successfully"
	FindConditionSuccessMessage     = "condition retrieved successfully"
	CreateConditionSuccessMessage   = "condition created successfully"
	FindEncountersSuccessMessage    = "encounters retrieved successfully"
	FindEncounterSuccessMessage     = "encounter retrieved successfully"
	CreateEncounterSuccessMessage   = "encounter created successfully"
	FindObservationsSuccessMessage  = "observations retrieved successfully"
	FindObservationSuccessMessage   = "observation retrieved successfully"
	CreateObservationSuccessMessage = "observation created successfully"
	HealthCheckSuccessMessage       = "service is healthy"
)
