package models

// Health mirrors GET /health. Served straight from the backend with no
// fallback: a failing health check has to surface as a failure.
type Health struct {
	Status       string   `json:"status"`
	Timestamp    string   `json:"timestamp"`
	LoadedModels []string `json:"loaded_models"`
}

// OK reports whether the backend considers itself healthy.
func (h Health) OK() bool { return h.Status == "healthy" }
