package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"min":              "must be at least %s characters long",
	"max":              "maximum at %s characters long",
	"oneof":            "must be one of [%s]",
	"gtefield":         "must not be before %s",
	"required_without": "is required when %s is not present",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":              true,
	"max":              true,
	"oneof":            true,
	"gtefield":         true,
	"required_without": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidIdentifier             = "the given personnummer is empty or invalid"
	ErrClientResourceNotFound              = "the requested %s could not be found"
	ErrClientUpstreamUnavailable           = "the clinical record server could not complete the request"
	ErrClientInvalidPeriod                 = "the encounter end must not be before its start"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON             = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON           = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed            = "request validation failed"
	ErrDevEmptyIdentifier             = "%s identifier cannot be empty"
	ErrDevUnsupportedResourceKind     = "resource kind %q cannot be resolved by identifier"
	ErrDevIdentifierNotResolved       = "%s not found by identifier search or as a resource ID"
	ErrDevFHIRResourceNotFound        = "%s with ID %s not found on FHIR server"
	ErrDevCreateHTTPRequest           = "failed to create HTTP request"
	ErrDevSendHTTPRequest             = "failed to send HTTP request"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevFHIRCreateResource          = "failed to create FHIR resource %s"
	ErrDevFHIRGetResource             = "failed to get FHIR resource %s"
	ErrDevFHIRSearchResource          = "failed to search FHIR resource %s"
	ErrDevFHIRDecodeResource          = "failed to decode FHIR resource %s response"
	ErrDevEncounterPeriodInvalid      = "encounter period end %s is before start %s"
	ErrDevEncounterPeriodStartMissing = "encounter period start is required"
	ErrDevAuthTokenMissing            = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired   = "authorization token is invalid or expired"
	ErrDevAuthRoleNotAllowed          = "role is not allowed to %s %s"
	ErrDevMissingRequestID            = "request ID is missing from context"
	ErrDevServerProcess               = "server failed to process the request"
)
