package dto

type HealthResponse struct {
	ModelTrained bool              `json:"model_trained"`
	Dependencies map[string]string `json:"dependencies"`
	ServerTime   string            `json:"server_time"`
}
