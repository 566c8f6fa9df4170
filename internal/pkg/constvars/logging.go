package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingResourceTypeKey   = "resource_type"
	LoggingResourceIDKey     = "resource_id"
	LoggingIdentifierKey     = "identifier"
	LoggingStrategyKey       = "strategy"
	LoggingFhirIDKey         = "fhir_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingPractitionerIDKey = "practitioner_id"
	LoggingResponseCountKey  = "response_count"
	LoggingURLKey            = "url"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingRolesKey          = "roles"
	LoggingSubjectKey        = "subject"
	LoggingKindKey           = "kind"
)
