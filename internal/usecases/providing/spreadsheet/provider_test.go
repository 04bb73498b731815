package spreadsheet

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agency-data-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/agency-data-api/infrastructure/integrator/sheets/mocks"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"go.uber.org/mock/gomock"
)

// memoryKV serializa os valores como o armazenamento real faz
type memoryKV struct {
	values map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string][]byte{}}
}

func (m *memoryKV) GetValue(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, jsoniter.Unmarshal(raw, dest)
}

func (m *memoryKV) SetValue(_ context.Context, key string, value any) error {
	raw, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTable(columns []string, rows ...[]any) *sheets.Table {
	table := &sheets.Table{Columns: columns}
	for _, values := range rows {
		row := sheets.Row{}
		for i, v := range values {
			if v != nil {
				row[columns[i]] = &sheets.Cell{V: v}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

var testConfig = Config{
	FeedID:          "feed-1",
	ClientsTable:    "clients",
	CampaignsTable:  "campaigns",
	MetricsTable:    "metrics",
	RefreshInterval: 5 * time.Minute,
}

func clientsTable() *sheets.Table {
	return newTable(
		[]string{"id", "name", "status", "stage", "budget_month"},
		[]any{"c2", "Beta", "active", "recorrente", float64(1000)},
		[]any{"c1", "Alfa", "onboarding", "proposta", nil},
	)
}

func TestProvider_MissingRequiredColumn(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "clients").Return(newTable(
		[]string{"id", "name", "stage"},
		[]any{"c1", "Alfa", "proposta"},
	), nil)

	provider := New(client, newMemoryKV(), testConfig, nil)

	_, err := provider.GetClients(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, providing.ErrValidation)
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "clients")
}

func TestProvider_MissingFeedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	cfg := testConfig
	cfg.FeedID = ""
	provider := New(client, newMemoryKV(), cfg, nil)

	_, err := provider.GetDailyMetrics(context.Background(), domain.MetricQuery{})
	assert.ErrorIs(t, err, providing.ErrConfiguration)
	assert.Contains(t, err.Error(), "feed_id")
}

func TestProvider_CacheAndStaleFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	client := mocks.NewMockClient(ctrl)
	clock := &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}

	provider := New(client, newMemoryKV(), testConfig, clock.Now)

	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "clients").Return(clientsTable(), nil).Times(1)

	first, err := provider.GetClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, providing.OriginFeed, first.Origin)
	require.Len(t, first.Data, 2)
	assert.Equal(t, "Alfa", first.Data[0].Name, "ordenado por nome")

	clock.now = clock.now.Add(4 * time.Minute)
	second, err := provider.GetClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, providing.OriginCache, second.Origin)
	assert.Equal(t, first.Data, second.Data)

	// TTL expirado e a planilha fora do ar: serve o cache antigo
	clock.now = clock.now.Add(2 * time.Minute)
	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "clients").Return(nil, errors.New("timeout"))

	third, err := provider.GetClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, providing.OriginStale, third.Origin)
	assert.True(t, third.Degraded())
	assert.EqualError(t, third.Err, "timeout")
	assert.Len(t, third.Data, 2)
}

func TestProvider_FetchFailureWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "campaigns").Return(nil, errors.New("dns"))

	provider := New(client, newMemoryKV(), testConfig, nil)

	_, err := provider.GetCampaigns(context.Background(), "c1", domain.CampaignQuery{})
	assert.ErrorIs(t, err, providing.ErrRemote)
}

func TestProvider_AddClientOverlay(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "clients").Return(clientsTable(), nil)

	provider := New(client, newMemoryKV(), testConfig, nil)

	_, err := provider.AddClient(ctx, domain.Client{ID: "c1", Name: "Alfa local"})
	require.NoError(t, err)
	_, err = provider.AddClient(ctx, domain.Client{ID: "c3", Name: "Gama"})
	require.NoError(t, err)

	result, err := provider.GetClients(ctx)
	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	names := []string{result.Data[0].Name, result.Data[1].Name, result.Data[2].Name}
	assert.Equal(t, []string{"Alfa", "Beta", "Gama"}, names, "a planilha vence no id repetido")
}

func TestProvider_Optimizations(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	kv := newMemoryKV()
	clock := &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}

	provider := New(mocks.NewMockClient(ctrl), kv, testConfig, clock.Now)

	older, err := provider.UpsertOptimization(ctx, domain.Optimization{ID: "opt-1", ClientID: "c1", Title: "Primeiro"})
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour)
	_, err = provider.UpsertOptimization(ctx, domain.Optimization{ClientID: "c1", Title: "Segundo", Status: "concluida"})
	require.NoError(t, err)

	_, err = provider.UpsertOptimization(ctx, domain.Optimization{ID: "opt-1", ClientID: "c1", Title: "Primeiro revisado"})
	require.NoError(t, err)

	result, err := provider.ListOptimizations(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, result.Data, 2)

	assert.Equal(t, "Segundo", result.Data[0].Title, "mais recente primeiro")
	assert.Equal(t, domain.OptimizationStatusCompleted, result.Data[0].Status)
	assert.Equal(t, "opt-1", result.Data[1].ID)
	assert.Equal(t, "Primeiro revisado", result.Data[1].Title)
	assert.True(t, older.Data.CreatedAt.Equal(result.Data[1].CreatedAt))

	other, err := provider.ListOptimizations(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, other.Data)
	assert.Contains(t, kv.values, "optimizations:c1")
}

func TestProvider_GetAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	client := mocks.NewMockClient(ctrl)
	clock := &fakeClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}

	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "clients").Return(clientsTable(), nil)
	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "metrics").Return(newTable(
		[]string{"date", "client_id", "platform", "campaign_id", "spend", "leads"},
		[]any{"Date(2024,5,14)", "c2", "meta", "camp-1", float64(500), float64(20)},
		[]any{"Date(2024,5,15)", "c2", "google", nil, float64(450), float64(20)},
		// Fora da janela de 7 dias
		[]any{"Date(2024,5,1)", "c2", "meta", "camp-1", float64(9000), float64(1)},
	), nil)

	provider := New(client, newMemoryKV(), testConfig, clock.Now)

	result, err := provider.GetAlerts(ctx, "c2")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, domain.AlertCategoryBudget, result.Data[0].Category)
	assert.Equal(t, domain.AlertSeverityHigh, result.Data[0].Severity)

	missing, err := provider.GetAlerts(ctx, "nao-existe")
	require.NoError(t, err)
	assert.Empty(t, missing.Data)
}

func TestProvider_SaveConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	client := mocks.NewMockClient(ctrl)
	kv := newMemoryKV()

	provider := New(client, kv, testConfig, nil)

	client.EXPECT().FetchTable(gomock.Any(), "feed-1", "clients").Return(clientsTable(), nil)
	_, err := provider.GetClients(ctx)
	require.NoError(t, err)

	require.NoError(t, provider.SaveConfig(ctx, Config{FeedID: "feed-2"}))

	cfg := provider.Config(ctx)
	assert.Equal(t, "feed-2", cfg.FeedID)
	assert.Equal(t, "clients", cfg.ClientsTable, "campos vazios usam o ambiente")

	client.EXPECT().FetchTable(gomock.Any(), "feed-2", "clients").Return(clientsTable(), nil)
	result, err := provider.GetClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, providing.OriginFeed, result.Origin)
}

func TestParseMetrics(t *testing.T) {
	table := newTable(
		[]string{"date", "client_id", "platform", "campaign_id", "impressions", "clicks", "spend", "leads", "cpa"},
		[]any{"Date(2024,5,1)", "c1", "Facebook", "camp-1", float64(1000), float64(50), float64(100), float64(4), nil},
		[]any{"Date(2024,5,1)", "c1", "Facebook", "camp-1", float64(2000), float64(80), float64(120), float64(6), float64(99)},
		[]any{"2024-06-02", "c1", "google", nil, float64(10), float64(0), float64(0), float64(0), nil},
	)

	rows, err := parseMetrics(table, "metrics")
	require.NoError(t, err)
	require.Len(t, rows, 2, "linha repetida na mesma chave: a última vence")

	assert.Equal(t, domain.PlatformMeta, rows[0].Platform)
	assert.Equal(t, int64(2000), rows[0].Impressions)
	assert.Equal(t, 99.0, rows[0].CPA, "CPA informado pela planilha é mantido")
	assert.InDelta(t, 4.0, rows[0].CTR, 0.0001)

	assert.Equal(t, domain.AllCampaigns, rows[1].CampaignID)
	assert.Equal(t, 0.0, rows[1].CPA)

	_, err = parseMetrics(newTable(
		[]string{"date", "client_id", "platform"},
		[]any{"amanhã", "c1", "meta"},
	), "metrics")
	assert.ErrorIs(t, err, providing.ErrValidation)
	assert.Contains(t, err.Error(), `"date"`)
}
