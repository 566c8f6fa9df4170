package contracts

import (
	"net/http"
	"time"
)

type MetricsRecorder interface {
	RecordResolution(kind, strategy, outcome string)
	RecordGatewayCall(resourceType, operation string, statusCode int, duration time.Duration)
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
	Handler() http.Handler
}
