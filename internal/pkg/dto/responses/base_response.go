package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ResolvedIdentifier struct {
	ResourceType string `json:"resource_type"`
	ID           string `json:"id"`
	Reference    string `json:"reference"`
}
