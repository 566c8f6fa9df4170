package config

import (
	"strings"

	"clinical-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "clinical-service.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "clinical-service_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                         utils.GetEnvString("APP_ENV", "development"),
			Port:                        utils.GetEnvString("APP_PORT", ":8083"),
			Version:                     utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                    utils.GetEnvString("APP_TIMEZONE", "Europe/Stockholm"),
			EndpointPrefix:              utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1/clinical"),
			CorsAllowedOrigins:          splitCSV(utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:30000")),
			MaxRequests:                 utils.GetEnvInt("APP_MAX_REQUESTS", 50),
			ShutdownTimeoutInSeconds:    utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:     utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 15),
			RequestBodyLimitInMegabytes: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTES", 1),
		},
		FHIR: FHIR{
			BaseUrl:          strings.TrimSuffix(utils.GetEnvString("FHIR_BASE_URL", "http://localhost:8080/fhir"), "/"),
			TimeoutInSeconds: utils.GetEnvInt("FHIR_TIMEOUT_IN_SECONDS", 10),
			SearchPageSize:   utils.GetEnvInt("FHIR_SEARCH_PAGE_SIZE", 0),
		},
		JWT: JWT{
			Enabled:               utils.GetEnvBool("AUTH_ENABLED", true),
			Secret:                utils.GetEnvString("JWT_SECRET", ""),
			PublicKey:             utils.GetEnvString("JWT_PUBLIC_KEY", ""),
			JWKSUrl:               utils.GetEnvString("JWT_JWKS_URL", ""),
			JWKSCacheTTLInSeconds: utils.GetEnvInt("JWT_JWKS_CACHE_TTL_IN_SECONDS", 300),
		},
		Tracing: Tracing{
			Enabled:     utils.GetEnvBool("TRACING_ENABLED", false),
			Endpoint:    utils.GetEnvString("TRACING_ENDPOINT", "localhost:4318"),
			ServiceName: utils.GetEnvString("TRACING_SERVICE_NAME", "clinical-service"),
			SampleRate:  utils.GetEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Metrics: Metrics{
			Namespace: utils.GetEnvString("METRICS_NAMESPACE", "clinical_service"),
		},
	}
}

func splitCSV(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
