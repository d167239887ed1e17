package datasource

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// Health is the result of a datasource health check.
type Health struct {
	Status  string         `json:"status,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
