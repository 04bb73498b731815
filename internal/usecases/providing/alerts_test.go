package providing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

func TestDeriveAlerts_Budget(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	client := domain.Client{ID: "cli-1", MonthlyBudget: 1000}

	tests := []struct {
		name     string
		spend    float64
		expected domain.AlertSeverity
	}{
		{name: "Gasto de 950 gera alerta alto", spend: 950, expected: domain.AlertSeverityHigh},
		{name: "Gasto de 800 gera alerta médio", spend: 800, expected: domain.AlertSeverityMedium},
		{name: "Gasto de 500 não gera alerta", spend: 500, expected: ""},
		{name: "Exatamente 90% ainda é médio", spend: 900, expected: domain.AlertSeverityMedium},
		{name: "Exatamente 75% não gera alerta", spend: 750, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Gasto distribuído entre dois dias da janela
			metrics := []domain.MetricRow{
				{Date: now.AddDate(0, 0, -6), ClientID: "cli-1", Platform: domain.PlatformMeta, Spend: tt.spend / 2},
				{Date: now, ClientID: "cli-1", Platform: domain.PlatformGoogle, Spend: tt.spend / 2},
				// Fora da janela e de outro cliente
				{Date: now.AddDate(0, 0, -7), ClientID: "cli-1", Platform: domain.PlatformMeta, Spend: 5000},
				{Date: now, ClientID: "cli-2", Platform: domain.PlatformMeta, Spend: 5000},
			}

			alerts := DeriveAlerts(client, metrics, now)

			var budget *domain.Alert
			for i := range alerts {
				if alerts[i].Category == domain.AlertCategoryBudget {
					budget = &alerts[i]
				}
			}

			if tt.expected == "" {
				assert.Nil(t, budget)
				return
			}

			if assert.NotNil(t, budget) {
				assert.Equal(t, tt.expected, budget.Severity)
				assert.Equal(t, "cli-1:budget", budget.ID)
				assert.False(t, budget.Read)
			}
		})
	}
}

func TestDeriveAlerts_Performance(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		client   domain.Client
		metrics  []domain.MetricRow
		expected []domain.AlertCategory
	}{
		{
			name:   "CPA médio acima de 100 gera alerta de desempenho",
			client: domain.Client{ID: "c"},
			metrics: []domain.MetricRow{
				{Date: now, ClientID: "c", Spend: 300, Leads: 2},
				{Date: now.AddDate(0, 0, -1), ClientID: "c", Spend: 100, Leads: 1},
			},
			expected: []domain.AlertCategory{domain.AlertCategoryPerformance},
		},
		{
			name:   "Sem leads não calcula CPA",
			client: domain.Client{ID: "c"},
			metrics: []domain.MetricRow{
				{Date: now, ClientID: "c", Spend: 300},
			},
			expected: nil,
		},
		{
			name:   "Orçamento zerado não gera alerta de orçamento",
			client: domain.Client{ID: "c", MonthlyBudget: 0},
			metrics: []domain.MetricRow{
				{Date: now, ClientID: "c", Spend: 50, Leads: 5},
			},
			expected: nil,
		},
		{
			name:   "Orçamento e desempenho juntos",
			client: domain.Client{ID: "c", MonthlyBudget: 100},
			metrics: []domain.MetricRow{
				{Date: now, ClientID: "c", Spend: 300, Leads: 1},
			},
			expected: []domain.AlertCategory{domain.AlertCategoryBudget, domain.AlertCategoryPerformance},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := DeriveAlerts(tt.client, tt.metrics, now)

			var categories []domain.AlertCategory
			for _, a := range alerts {
				categories = append(categories, a.Category)
			}
			assert.Equal(t, tt.expected, categories)
		})
	}
}

func TestApplyReadStates(t *testing.T) {
	alerts := []domain.Alert{{ID: "c:budget"}, {ID: "c:performance"}}

	result := ApplyReadStates(alerts, map[string]bool{"c:budget": true, "outro": true})

	assert.True(t, result[0].Read)
	assert.False(t, result[1].Read)
}

func TestClientIDFromAlertID(t *testing.T) {
	id, ok := ClientIDFromAlertID("cli:42:performance")
	assert.True(t, ok)
	assert.Equal(t, "cli:42", id)

	_, ok = ClientIDFromAlertID(":budget")
	assert.False(t, ok)
}
