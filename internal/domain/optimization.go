package domain

import (
	"slices"
	"sort"
	"strings"
	"time"
)

type OptimizationStatus string

const (
	OptimizationStatusPlanned   OptimizationStatus = "Planned"
	OptimizationStatusInTest    OptimizationStatus = "InTest"
	OptimizationStatusCompleted OptimizationStatus = "Completed"
	OptimizationStatusAborted   OptimizationStatus = "Aborted"
)

// Vocabulário usado pelo backend remoto
const (
	BackendStatusPlanned   = "planejada"
	BackendStatusInTest    = "em_teste"
	BackendStatusCompleted = "concluida"
	BackendStatusAborted   = "abortada"
)

var statusToBackend = map[OptimizationStatus]string{
	OptimizationStatusPlanned:   BackendStatusPlanned,
	OptimizationStatusInTest:    BackendStatusInTest,
	OptimizationStatusCompleted: BackendStatusCompleted,
	OptimizationStatusAborted:   BackendStatusAborted,
}

var statusFromBackend = map[string]OptimizationStatus{
	BackendStatusPlanned:   OptimizationStatusPlanned,
	BackendStatusInTest:    OptimizationStatusInTest,
	BackendStatusCompleted: OptimizationStatusCompleted,
	BackendStatusAborted:   OptimizationStatusAborted,
}

// ToBackend converte para o vocabulário do backend. Valores desconhecidos viram "planejada".
func (s OptimizationStatus) ToBackend() string {
	if v, ok := statusToBackend[ParseOptimizationStatus(string(s))]; ok {
		return v
	}
	return BackendStatusPlanned
}

// OptimizationStatusFromBackend converte do vocabulário do backend. Valores desconhecidos viram Planned.
func OptimizationStatusFromBackend(value string) OptimizationStatus {
	if s, ok := statusFromBackend[strings.ToLower(strings.TrimSpace(value))]; ok {
		return s
	}
	return OptimizationStatusPlanned
}

// ParseOptimizationStatus aceita tanto o vocabulário interno quanto o do backend
func ParseOptimizationStatus(value string) OptimizationStatus {
	trimmed := strings.TrimSpace(value)
	for s := range statusToBackend {
		if strings.EqualFold(string(s), trimmed) {
			return s
		}
	}
	return OptimizationStatusFromBackend(trimmed)
}

// Optimization registra um experimento de otimização de campanha
type Optimization struct {
	ID             string             `json:"id"`
	ClientID       string             `json:"client_id"`
	Title          string             `json:"title"`
	Type           string             `json:"type"`
	Objective      string             `json:"objective"`
	TargetMetric   string             `json:"target_metric"`
	Hypothesis     string             `json:"hypothesis"`
	Campaigns      []string           `json:"campaigns"`
	Status         OptimizationStatus `json:"status"`
	StartDate      time.Time          `json:"start_date"`
	ReviewDate     *time.Time         `json:"review_date,omitempty"`
	ExpectedImpact string             `json:"expected_impact"`
	ResultSummary  *string            `json:"result_summary,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func (o Optimization) Clone() Optimization {
	o.Campaigns = slices.Clone(o.Campaigns)
	if o.ReviewDate != nil {
		reviewDate := *o.ReviewDate
		o.ReviewDate = &reviewDate
	}
	if o.ResultSummary != nil {
		summary := *o.ResultSummary
		o.ResultSummary = &summary
	}
	return o
}

// SortOptimizationsNewestFirst ordena pela data de criação, mais recentes primeiro
func SortOptimizationsNewestFirst(items []Optimization) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// MergeOptimizations junta as listas remota e local; em colisão de id a versão remota vence
func MergeOptimizations(remote, local []Optimization) []Optimization {
	seen := make(map[string]struct{}, len(remote))
	merged := make([]Optimization, 0, len(remote)+len(local))

	for _, o := range remote {
		seen[o.ID] = struct{}{}
		merged = append(merged, o.Clone())
	}

	for _, o := range local {
		if _, ok := seen[o.ID]; ok {
			continue
		}
		seen[o.ID] = struct{}{}
		merged = append(merged, o.Clone())
	}

	SortOptimizationsNewestFirst(merged)
	return merged
}
