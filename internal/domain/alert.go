package domain

import "time"

type AlertCategory string

const (
	AlertCategoryBudget      AlertCategory = "budget"
	AlertCategoryPerformance AlertCategory = "performance"
)

type AlertSeverity string

const (
	AlertSeverityLow    AlertSeverity = "low"
	AlertSeverityMedium AlertSeverity = "medium"
	AlertSeverityHigh   AlertSeverity = "high"
)

// Alert é derivado das métricas recentes a cada consulta
type Alert struct {
	ID        string        `json:"id"`
	ClientID  string        `json:"client_id"`
	Category  AlertCategory `json:"category"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
	Read      bool          `json:"read"`
}
