package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CLNCL_SVC_"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	ResourceConditions   = "conditions"
	ResourceEncounters   = "encounters"
	ResourceObservations = "observations"
)

const (
	CONTEXT_PRINCIPAL_KEY ContextKey = "principal"
)
