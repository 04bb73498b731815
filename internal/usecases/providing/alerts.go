package providing

import (
	"fmt"
	"time"

	"github.com/vfg2006/agency-data-api/internal/domain"
)

const (
	// AlertWindowDays é a janela de métricas usada para derivar alertas
	AlertWindowDays = 7

	budgetHighRatio   = 0.90
	budgetMediumRatio = 0.75
	cpaThreshold      = 100.0
)

// AlertWindow retorna o intervalo inclusivo [hoje-6, hoje]
func AlertWindow(now time.Time) (time.Time, time.Time) {
	to := domain.DateOnly(now)
	return to.AddDate(0, 0, -(AlertWindowDays - 1)), to
}

// AlertQuery monta a consulta de métricas da janela de alertas do cliente
func AlertQuery(clientID string, now time.Time) domain.MetricQuery {
	from, to := AlertWindow(now)
	return domain.MetricQuery{ClientID: clientID, From: &from, To: &to}
}

func BudgetAlertID(clientID string) string {
	return clientID + ":budget"
}

func PerformanceAlertID(clientID string) string {
	return clientID + ":performance"
}

// ClientIDFromAlertID extrai o cliente de um id determinístico de alerta
func ClientIDFromAlertID(id string) (string, bool) {
	for _, suffix := range []string{":budget", ":performance"} {
		if len(id) > len(suffix) && id[len(id)-len(suffix):] == suffix {
			return id[:len(id)-len(suffix)], true
		}
	}
	return "", false
}

// DeriveAlerts calcula os alertas de orçamento e desempenho do cliente a
// partir das métricas da janela. Linhas fora da janela ou de outros clientes
// são ignoradas.
func DeriveAlerts(client domain.Client, metrics []domain.MetricRow, now time.Time) []domain.Alert {
	from, to := AlertWindow(now)
	window := domain.MetricQuery{ClientID: client.ID, From: &from, To: &to}

	var spend float64
	var leads int64
	for _, row := range metrics {
		if !window.Matches(row) {
			continue
		}
		spend += row.Spend
		leads += row.Leads
	}

	alerts := make([]domain.Alert, 0, 2)

	if client.MonthlyBudget > 0 {
		ratio := spend / client.MonthlyBudget

		var severity domain.AlertSeverity
		switch {
		case ratio > budgetHighRatio:
			severity = domain.AlertSeverityHigh
		case ratio > budgetMediumRatio:
			severity = domain.AlertSeverityMedium
		}

		if severity != "" {
			alerts = append(alerts, domain.Alert{
				ID:       BudgetAlertID(client.ID),
				ClientID: client.ID,
				Category: domain.AlertCategoryBudget,
				Severity: severity,
				Message: fmt.Sprintf("Investimento dos últimos %d dias (%.2f) atingiu %.0f%% do orçamento mensal (%.2f)",
					AlertWindowDays, spend, ratio*100, client.MonthlyBudget),
				CreatedAt: now,
			})
		}
	}

	if leads > 0 {
		cpa := spend / float64(leads)
		if cpa > cpaThreshold {
			alerts = append(alerts, domain.Alert{
				ID:       PerformanceAlertID(client.ID),
				ClientID: client.ID,
				Category: domain.AlertCategoryPerformance,
				Severity: domain.AlertSeverityMedium,
				Message: fmt.Sprintf("CPA médio dos últimos %d dias (%.2f) acima do limite de %.2f",
					AlertWindowDays, cpa, cpaThreshold),
				CreatedAt: now,
			})
		}
	}

	return alerts
}

// ApplyReadStates copia o flag de leitura persistido para os alertas derivados
func ApplyReadStates(alerts []domain.Alert, states map[string]bool) []domain.Alert {
	for i := range alerts {
		if read, ok := states[alerts[i].ID]; ok {
			alerts[i].Read = read
		}
	}
	return alerts
}
