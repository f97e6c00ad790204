package dto

const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// ComponentStatus état d'une dépendance
type ComponentStatus struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Required bool   `json:"required"`
	Latency  string `json:"latency,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HealthReport réponse de /health et /ready
type HealthReport struct {
	Status      string            `json:"status"`
	Environment string            `json:"environment"`
	Uptime      string            `json:"uptime"`
	Components  []ComponentStatus `json:"components"`
}
