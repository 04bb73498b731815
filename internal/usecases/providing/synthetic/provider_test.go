package synthetic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
)

var referenceNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return referenceNow
}

func TestProvider_Deterministic(t *testing.T) {
	ctx := context.Background()
	first := New(WithClock(fixedClock))
	second := New(WithClock(fixedClock))

	a, err := first.GetClients(ctx)
	require.NoError(t, err)
	b, err := second.GetClients(ctx)
	require.NoError(t, err)

	assert.Equal(t, providing.OriginSynthetic, a.Origin)
	assert.Len(t, a.Data, len(clientNames))
	assert.Equal(t, a.Data, b.Data, "mesma semente gera os mesmos dados")

	for i := 1; i < len(a.Data); i++ {
		assert.LessOrEqual(t, a.Data[i-1].Name, a.Data[i].Name)
	}
}

func TestProvider_GetDailyMetrics(t *testing.T) {
	ctx := context.Background()
	provider := New(WithClock(fixedClock), WithDays(10))

	from := referenceNow.AddDate(0, 0, -2)
	result, err := provider.GetDailyMetrics(ctx, domain.MetricQuery{
		ClientID: "cli-001",
		From:     &from,
		Platform: domain.PlatformMeta,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Data)

	for _, row := range result.Data {
		assert.Equal(t, "cli-001", row.ClientID)
		assert.Equal(t, domain.PlatformMeta, row.Platform)
		assert.False(t, row.Date.Before(domain.DateOnly(from)))
		assert.False(t, row.Date.After(domain.DateOnly(referenceNow)))
		if row.Clicks > 0 {
			assert.InDelta(t, float64(row.Clicks)/float64(row.Impressions)*100, row.CTR, 0.0001)
		}
	}
}

func TestProvider_GetCampaignsAndClient(t *testing.T) {
	ctx := context.Background()
	provider := New(WithClock(fixedClock))

	campaigns, err := provider.GetCampaigns(ctx, "cli-002", domain.CampaignQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, campaigns.Data)
	for _, c := range campaigns.Data {
		assert.Equal(t, "cli-002", c.ClientID)
	}

	client, err := provider.GetClient(ctx, "cli-002")
	require.NoError(t, err)
	require.NotNil(t, client.Data)
	assert.Equal(t, "Clínica Sorriso", client.Data.Name)

	missing, err := provider.GetClient(ctx, "inexistente")
	require.NoError(t, err)
	assert.Nil(t, missing.Data)

	alerts, err := provider.GetAlerts(ctx, "inexistente")
	require.NoError(t, err)
	assert.Empty(t, alerts.Data)
}

func TestProvider_Writes(t *testing.T) {
	ctx := context.Background()
	provider := New(WithClock(fixedClock))

	created, err := provider.UpsertOptimization(ctx, domain.Optimization{
		ClientID: "cli-001",
		Title:    "Novo criativo",
		Status:   "em_teste",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Data.ID)
	assert.Equal(t, domain.OptimizationStatusInTest, created.Data.Status)
	assert.Equal(t, referenceNow, created.Data.CreatedAt)

	updated := created.Data
	updated.Title = "Novo criativo v2"
	updated.Status = domain.OptimizationStatusCompleted
	_, err = provider.UpsertOptimization(ctx, updated)
	require.NoError(t, err)

	list, err := provider.ListOptimizations(ctx, "cli-001")
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Novo criativo v2", list.Data[0].Title)

	added, err := provider.AddClient(ctx, domain.Client{ID: "novo", Name: "Zeta Modas"})
	require.NoError(t, err)
	_, err = provider.AddClient(ctx, domain.Client{ID: "novo", Name: "Outro nome"})
	require.NoError(t, err)

	clients, err := provider.GetClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients.Data, len(clientNames)+1)
	assert.Equal(t, "Zeta Modas", added.Data.Name)
}
