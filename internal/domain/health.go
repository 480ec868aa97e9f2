package domain

import "time"

const (
	HealthUp   = "up"
	HealthDown = "down"
)

// ServiceStatus — состояние одной зависимости.
type ServiceStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthReport — сводное состояние сервиса.
type HealthReport struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Uptime    int64                    `json:"uptime"`
	Services  map[string]ServiceStatus `json:"services"`
}

// Healthy — все зависимости доступны.
func (r HealthReport) Healthy() bool { return r.Status == "healthy" }
