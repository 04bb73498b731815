package spreadsheet

import (
	"fmt"

	"github.com/vfg2006/agency-data-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
)

var (
	clientColumns   = []string{"id", "name", "status", "stage"}
	campaignColumns = []string{"id", "client_id", "platform", "name", "status"}
	metricColumns   = []string{"date", "client_id", "platform"}
)

func requireColumns(table *sheets.Table, tableName string, columns []string) error {
	for _, col := range columns {
		if !table.HasColumn(col) {
			return providing.NewValidationError(tableName, col, "coluna obrigatória ausente")
		}
	}
	return nil
}

// A linha 1 da planilha é o cabeçalho
func rowError(tableName, field string, index int, details string) error {
	return providing.NewValidationError(tableName, field, fmt.Sprintf("linha %d: %s", index+2, details))
}

func requireValue(row sheets.Row, tableName, field string, index int) (string, error) {
	value := row.String(field)
	if value == "" {
		return "", rowError(tableName, field, index, "valor obrigatório vazio")
	}
	return value, nil
}

func parseClients(table *sheets.Table, tableName string) ([]domain.Client, error) {
	if err := requireColumns(table, tableName, clientColumns); err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(table.Rows))
	for i, row := range table.Rows {
		id, err := requireValue(row, tableName, "id", i)
		if err != nil {
			return nil, err
		}

		status, ok := domain.ParseClientStatus(row.String("status"))
		if !ok {
			return nil, rowError(tableName, "status", i, fmt.Sprintf("status desconhecido %q", row.String("status")))
		}

		budget, err := row.Float("budget_month")
		if err != nil {
			return nil, rowError(tableName, "budget_month", i, err.Error())
		}
		spend, err := row.Float("spend_to_date")
		if err != nil {
			return nil, rowError(tableName, "spend_to_date", i, err.Error())
		}

		client := domain.Client{
			ID:            id,
			Name:          row.String("name"),
			Status:        status,
			Stage:         row.String("stage"),
			Owner:         row.String("owner"),
			MonthlyBudget: budget,
			SpendToDate:   spend,
			LogoURL:       row.String("logo_url"),
			Tags:          row.List("tags"),
		}
		if lastUpdate, ok := row.Time("last_update"); ok {
			client.LastUpdate = lastUpdate
		}

		clients = append(clients, client)
	}

	return clients, nil
}

func parseCampaigns(table *sheets.Table, tableName string) ([]domain.Campaign, error) {
	if err := requireColumns(table, tableName, campaignColumns); err != nil {
		return nil, err
	}

	campaigns := make([]domain.Campaign, 0, len(table.Rows))
	for i, row := range table.Rows {
		id, err := requireValue(row, tableName, "id", i)
		if err != nil {
			return nil, err
		}
		clientID, err := requireValue(row, tableName, "client_id", i)
		if err != nil {
			return nil, err
		}

		campaign := domain.Campaign{
			ID:        id,
			ClientID:  clientID,
			Platform:  domain.ParsePlatform(row.String("platform")),
			Name:      row.String("name"),
			Status:    row.String("status"),
			Objective: row.String("objective"),
		}
		if lastSync, ok := row.Time("last_sync"); ok {
			campaign.LastSync = lastSync
		}

		campaigns = append(campaigns, campaign)
	}

	return campaigns, nil
}

func parseMetrics(table *sheets.Table, tableName string) ([]domain.MetricRow, error) {
	if err := requireColumns(table, tableName, metricColumns); err != nil {
		return nil, err
	}

	rows := make([]domain.MetricRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		date, ok := row.Time("date")
		if !ok {
			return nil, rowError(tableName, "date", i, fmt.Sprintf("data inválida %q", row.String("date")))
		}
		clientID, err := requireValue(row, tableName, "client_id", i)
		if err != nil {
			return nil, err
		}
		platform, err := requireValue(row, tableName, "platform", i)
		if err != nil {
			return nil, err
		}

		metric := domain.MetricRow{
			Date:       date,
			ClientID:   clientID,
			Platform:   domain.ParsePlatform(platform),
			CampaignID: row.String("campaign_id"),
		}

		counters := []struct {
			field string
			dest  *int64
		}{
			{"impressions", &metric.Impressions},
			{"clicks", &metric.Clicks},
			{"leads", &metric.Leads},
			{"conversions", &metric.Conversions},
		}
		for _, c := range counters {
			if *c.dest, err = row.Int(c.field); err != nil {
				return nil, rowError(tableName, c.field, i, err.Error())
			}
		}

		amounts := []struct {
			field string
			dest  *float64
		}{
			{"spend", &metric.Spend},
			{"revenue", &metric.Revenue},
			{"cpa", &metric.CPA},
			{"roas", &metric.ROAS},
		}
		for _, a := range amounts {
			if *a.dest, err = row.Float(a.field); err != nil {
				return nil, rowError(tableName, a.field, i, err.Error())
			}
		}

		rows = append(rows, metric.Derive())
	}

	return domain.DedupeMetrics(rows), nil
}
