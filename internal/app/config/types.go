package config

type (
	InternalConfig struct {
		App     App
		FHIR    FHIR
		JWT     JWT
		Tracing Tracing
		Metrics Metrics
	}

	DriverConfig struct {
		Logger Logger
	}

	App struct {
		Env                         string
		Port                        string
		Version                     string
		Timezone                    string
		EndpointPrefix              string
		CorsAllowedOrigins          []string
		MaxRequests                 int
		ShutdownTimeoutInSeconds    int
		RequestTimeoutInSeconds     int
		RequestBodyLimitInMegabytes int
	}

	FHIR struct {
		BaseUrl          string
		TimeoutInSeconds int
		SearchPageSize   int
	}

	JWT struct {
		Enabled               bool
		Secret                string
		PublicKey             string
		JWKSUrl               string
		JWKSCacheTTLInSeconds int
	}

	Tracing struct {
		Enabled     bool
		Endpoint    string
		ServiceName string
		SampleRate  float64
	}

	Metrics struct {
		Namespace string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
