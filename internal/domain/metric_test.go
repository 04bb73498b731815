package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestMetricRow_Derive(t *testing.T) {
	tests := []struct {
		name     string
		row      MetricRow
		expected MetricRow
	}{
		{
			name: "Calcula razões quando a fonte não informa",
			row: MetricRow{
				Date:        time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC),
				Impressions: 1000,
				Clicks:      50,
				Spend:       200,
				Leads:       10,
				Revenue:     800,
			},
			expected: MetricRow{
				Date:        day(2024, 3, 10),
				CampaignID:  AllCampaigns,
				Impressions: 1000,
				Clicks:      50,
				Spend:       200,
				Leads:       10,
				Revenue:     800,
				CPA:         20,
				ROAS:        4,
				CTR:         5,
				ConvRate:    20,
			},
		},
		{
			name: "Mantém CPA e ROAS informados pela fonte",
			row: MetricRow{
				Date:       day(2024, 3, 10),
				CampaignID: "c-1",
				Spend:      100,
				Leads:      4,
				CPA:        30,
				ROAS:       2.5,
			},
			expected: MetricRow{
				Date:       day(2024, 3, 10),
				CampaignID: "c-1",
				Spend:      100,
				Leads:      4,
				CPA:        30,
				ROAS:       2.5,
			},
		},
		{
			name: "Divisões por zero resultam em zero",
			row:  MetricRow{Date: day(2024, 3, 10), Spend: 100},
			expected: MetricRow{
				Date:       day(2024, 3, 10),
				CampaignID: AllCampaigns,
				Spend:      100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.row.Derive())
		})
	}
}

func TestMetricQuery_Matches(t *testing.T) {
	rows := []MetricRow{
		{Date: day(2024, 1, 1), ClientID: "cli-1", Platform: PlatformMeta, CampaignID: "c-1"},
		{Date: day(2024, 1, 5), ClientID: "cli-1", Platform: PlatformGoogle, CampaignID: AllCampaigns},
		{Date: day(2024, 1, 10), ClientID: "cli-2", Platform: PlatformMeta, CampaignID: "c-2"},
		{Date: day(2024, 1, 10), ClientID: "cli-1", Platform: PlatformMeta, CampaignID: ""},
	}

	tests := []struct {
		name     string
		query    MetricQuery
		expected []int
	}{
		{name: "Sem predicados retorna tudo", query: MetricQuery{}, expected: []int{0, 1, 2, 3}},
		{name: "Filtra por cliente", query: MetricQuery{ClientID: "cli-1"}, expected: []int{0, 1, 3}},
		{name: "Filtra por plataforma", query: MetricQuery{Platform: PlatformMeta}, expected: []int{0, 2, 3}},
		{
			name:     "Datas inclusivas",
			query:    MetricQuery{From: timePtr(day(2024, 1, 5)), To: timePtr(day(2024, 1, 10))},
			expected: []int{1, 2, 3},
		},
		{
			name:     "Limite superior com horário no mesmo dia",
			query:    MetricQuery{To: timePtr(time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC))},
			expected: []int{0, 1},
		},
		{name: "Campanha vazia equivale a all", query: MetricQuery{CampaignID: AllCampaigns}, expected: []int{1, 3}},
		{
			name:     "Todos os predicados combinados",
			query:    MetricQuery{ClientID: "cli-1", Platform: PlatformMeta, CampaignID: "c-1", From: timePtr(day(2024, 1, 1))},
			expected: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var expected []MetricRow
			for _, i := range tt.expected {
				expected = append(expected, rows[i])
			}

			result := FilterMetrics(rows, tt.query)

			assert.ElementsMatch(t, expected, result)
			for _, row := range result {
				assert.True(t, tt.query.Matches(row))
			}
		})
	}
}

func TestDedupeMetrics(t *testing.T) {
	rows := []MetricRow{
		{Date: day(2024, 1, 1), ClientID: "cli-1", Platform: PlatformMeta, Spend: 10},
		{Date: day(2024, 1, 2), ClientID: "cli-1", Platform: PlatformMeta, Spend: 20},
		{Date: day(2024, 1, 1), ClientID: "cli-1", Platform: PlatformMeta, CampaignID: AllCampaigns, Spend: 30},
	}

	result := DedupeMetrics(rows)

	assert.Len(t, result, 2)
	assert.Equal(t, 30.0, result[0].Spend)
	assert.Equal(t, 20.0, result[1].Spend)
}
