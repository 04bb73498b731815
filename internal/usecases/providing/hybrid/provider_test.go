package hybrid

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agency-data-api/infrastructure/database/sqlite"
	"github.com/vfg2006/agency-data-api/infrastructure/localstore"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/mocks"
	"github.com/vfg2006/agency-data-api/pkg/connectivity"
	"go.uber.org/mock/gomock"
)

var referenceNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time {
	return referenceNow
}

type fixture struct {
	provider *Provider
	remote   *mocks.MockRemoteProvider
	store    *localstore.Store
	probe    *connectivity.Probe
	online   bool
}

// setOnline troca a conectividade e força uma nova verificação
func (f *fixture) setOnline(online bool) {
	f.online = online
	f.probe.Invalidate()
}

func newFixture(t *testing.T, online bool) *fixture {
	t.Helper()

	conn, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "hybrid.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f := &fixture{
		remote: mocks.NewMockRemoteProvider(gomock.NewController(t)),
		store:  localstore.New(conn).WithClock(clock),
		online: online,
	}
	f.probe = connectivity.NewProbe(nil,
		connectivity.WithClock(clock),
		connectivity.WithReachability(func() bool { return f.online }),
	)
	f.provider = New(f.remote, f.store, WithClock(clock), WithProbe(f.probe))

	return f
}

func TestProvider_GetClientsFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	cached := make([]domain.Client, 10)
	for i := range cached {
		cached[i] = domain.Client{ID: fmt.Sprintf("c%02d", i), Name: fmt.Sprintf("Cliente %02d", i), Status: domain.ClientStatusActive}
	}
	require.NoError(t, f.store.ReplaceClients(ctx, cached))

	remoteErr := providing.NewRemoteError("list_clients", errors.New("connection reset"))
	f.remote.EXPECT().GetClients(gomock.Any()).Return(providing.Result[[]domain.Client]{}, remoteErr)

	result, err := f.provider.GetClients(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Data, 10)
	assert.Equal(t, providing.OriginStale, result.Origin)
	assert.ErrorIs(t, result.Err, providing.ErrRemote)

	// Offline não chama o remoto
	f.setOnline(false)
	result, err = f.provider.GetClients(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Data, 10)
	assert.Equal(t, providing.OriginLocal, result.Origin)
	assert.NoError(t, result.Err)
}

func TestProvider_ReadPathMirrorsRemote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	f.remote.EXPECT().GetCampaigns(gomock.Any(), "c1", domain.CampaignQuery{}).Return(
		providing.Served([]domain.Campaign{
			{ID: "k1", ClientID: "c1", Platform: domain.PlatformMeta, Name: "Leads", Status: "active"},
			{ID: "k2", ClientID: "c1", Platform: domain.PlatformGoogle, Name: "Busca", Status: "paused"},
		}, providing.OriginRemote), nil)

	online, err := f.provider.GetCampaigns(ctx, "c1", domain.CampaignQuery{})
	require.NoError(t, err)
	assert.Equal(t, providing.OriginRemote, online.Origin)

	f.setOnline(false)
	offline, err := f.provider.GetCampaigns(ctx, "c1", domain.CampaignQuery{Platform: domain.PlatformGoogle})
	require.NoError(t, err)
	assert.Equal(t, providing.OriginLocal, offline.Origin)
	require.Len(t, offline.Data, 1)
	assert.Equal(t, "k2", offline.Data[0].ID)

	empty, err := f.provider.GetCampaigns(ctx, "outro", domain.CampaignQuery{})
	require.NoError(t, err)
	assert.Equal(t, providing.OriginEmpty, empty.Origin)
	assert.Empty(t, empty.Data)
}

func TestProvider_FatalErrorsAreNotMasked(t *testing.T) {
	f := newFixture(t, true)

	f.remote.EXPECT().GetDailyMetrics(gomock.Any(), gomock.Any()).Return(
		providing.Result[[]domain.MetricRow]{}, providing.NewValidationError("metrics", "date", "coluna obrigatória ausente"))

	_, err := f.provider.GetDailyMetrics(context.Background(), domain.MetricQuery{})
	assert.ErrorIs(t, err, providing.ErrValidation)
}

func TestProvider_MetricsRetention(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	old := referenceNow.AddDate(0, 0, -100)
	recent := referenceNow.AddDate(0, 0, -3)

	f.remote.EXPECT().GetDailyMetrics(gomock.Any(), gomock.Any()).Return(providing.Served([]domain.MetricRow{
		{Date: domain.DateOnly(old), ClientID: "c1", Platform: domain.PlatformMeta, CampaignID: "k1", Spend: 10},
		{Date: domain.DateOnly(recent), ClientID: "c1", Platform: domain.PlatformMeta, CampaignID: "k1", Spend: 20},
	}, providing.OriginRemote), nil)

	_, err := f.provider.GetDailyMetrics(ctx, domain.MetricQuery{ClientID: "c1"})
	require.NoError(t, err)

	f.setOnline(false)
	result, err := f.provider.GetDailyMetrics(ctx, domain.MetricQuery{})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)

	cutoff := domain.DateOnly(referenceNow).AddDate(0, 0, -DefaultRetentionDays)
	for _, row := range result.Data {
		assert.False(t, row.Date.Before(cutoff), "nenhuma linha com mais de 90 dias")
	}
}

func TestProvider_AddClientOfflineThenSync(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	queued, err := f.provider.AddClient(ctx, domain.Client{ID: "novo", Name: "Cliente Novo", Status: domain.ClientStatusOnboarding})
	require.NoError(t, err)
	assert.Equal(t, providing.OriginQueued, queued.Origin)
	assert.Equal(t, "novo", queued.Data.ID)

	// Repetir o mesmo id não duplica a fila
	_, err = f.provider.AddClient(ctx, domain.Client{ID: "novo", Name: "Outro Nome"})
	require.NoError(t, err)

	status, err := f.provider.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.PendingClients)
	assert.False(t, status.Online)

	// Offline o sync não faz nada
	report, err := f.provider.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, report.Skipped)

	f.setOnline(true)
	f.remote.EXPECT().AddClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c domain.Client) (providing.Result[domain.Client], error) {
			assert.Equal(t, "novo", c.ID)
			assert.Equal(t, "Cliente Novo", c.Name)
			return providing.Served(c, providing.OriginRemote), nil
		}).Times(1)

	report, err = f.provider.Sync(ctx)
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 1, report.Pushed)
	assert.Equal(t, 0, report.Failed)

	pending, err := f.store.ListOfflineClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "nenhuma cópia offline após o sync")

	// Segunda execução não reenvia
	report, err = f.provider.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Pushed)

	status, err = f.provider.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.PendingClients)
	require.NotNil(t, status.LastSync)
}

func TestProvider_SyncClientWithReassignedID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.provider.AddClient(ctx, domain.Client{ID: "local-1", Name: "Padaria Central"})
	require.NoError(t, err)

	f.setOnline(true)
	f.remote.EXPECT().AddClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c domain.Client) (providing.Result[domain.Client], error) {
			c.ID = "srv-42"
			return providing.Served(c, providing.OriginRemote), nil
		})

	report, err := f.provider.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pushed)

	pending, err := f.store.ListOfflineClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "cópia com o id antigo não fica na fila")

	clients, err := f.store.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "srv-42", clients[0].ID)
	assert.Equal(t, "Padaria Central", clients[0].Name)
}

func TestProvider_SyncContinuesAfterItemFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.provider.AddClient(ctx, domain.Client{ID: "a", Name: "A"})
	require.NoError(t, err)
	_, err = f.provider.AddClient(ctx, domain.Client{ID: "b", Name: "B"})
	require.NoError(t, err)

	queued, err := f.provider.UpsertOptimization(ctx, domain.Optimization{ClientID: "a", Title: "Lance manual"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(queued.Data.ID, OfflineIDPrefix))

	f.setOnline(true)
	f.remote.EXPECT().AddClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c domain.Client) (providing.Result[domain.Client], error) {
			if c.ID == "a" {
				return providing.Result[domain.Client]{}, errors.New("timeout")
			}
			return providing.Served(c, providing.OriginRemote), nil
		}).Times(2)
	f.remote.EXPECT().UpsertOptimization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o domain.Optimization) (providing.Result[domain.Optimization], error) {
			assert.Empty(t, o.ID, "id offline não é enviado")
			o.ID = "srv-1"
			return providing.Served(o, providing.OriginRemote), nil
		})

	report, err := f.provider.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pushed)
	assert.Equal(t, 1, report.Failed)

	pending, err := f.store.ListOfflineClients(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].ID)

	local, err := f.store.ListOptimizations(ctx, "a")
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "srv-1", local[0].ID)
}

func TestProvider_SyncIsNotReentrant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.provider.AddClient(ctx, domain.Client{ID: "a", Name: "A"})
	require.NoError(t, err)

	f.setOnline(true)
	f.remote.EXPECT().AddClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, c domain.Client) (providing.Result[domain.Client], error) {
			nested, err := f.provider.Sync(ctx)
			assert.NoError(t, err)
			assert.True(t, nested.Skipped)
			assert.Equal(t, skippedRunning, nested.SkippedReason)

			status, err := f.provider.Status(ctx)
			assert.NoError(t, err)
			assert.True(t, status.SyncRunning)

			return providing.Served(c, providing.OriginRemote), nil
		})

	report, err := f.provider.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pushed)
}

func TestProvider_ListOptimizationsMerge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	created := referenceNow.Add(-time.Hour)
	require.NoError(t, f.store.UpsertOptimization(ctx, domain.Optimization{
		ID: "opt-1", ClientID: "c1", Title: "Versão local", Status: domain.OptimizationStatusPlanned, CreatedAt: created,
	}, localstore.OriginOffline))
	require.NoError(t, f.store.UpsertOptimization(ctx, domain.Optimization{
		ID: "offline_abc123", ClientID: "c1", Title: "Só local", Status: domain.OptimizationStatusPlanned, CreatedAt: referenceNow,
	}, localstore.OriginOffline))

	f.remote.EXPECT().ListOptimizations(gomock.Any(), "c1").Return(providing.Served([]domain.Optimization{
		{ID: "opt-1", ClientID: "c1", Title: "Versão remota", Status: domain.OptimizationStatusInTest, CreatedAt: created},
		{ID: "opt-2", ClientID: "c1", Title: "Antiga", CreatedAt: created.Add(-time.Hour)},
	}, providing.OriginRemote), nil)

	result, err := f.provider.ListOptimizations(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	ids := []string{result.Data[0].ID, result.Data[1].ID, result.Data[2].ID}
	assert.Equal(t, []string{"offline_abc123", "opt-1", "opt-2"}, ids)
	assert.Equal(t, "Versão remota", result.Data[1].Title, "em id repetido vence a remota")
}

func TestProvider_UpsertOptimizationIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	first, err := f.provider.UpsertOptimization(ctx, domain.Optimization{ID: "opt-9", ClientID: "c1", Title: "Primeiro", Status: "em_teste"})
	require.NoError(t, err)
	assert.Equal(t, providing.OriginQueued, first.Origin)
	assert.Equal(t, domain.OptimizationStatusInTest, first.Data.Status)

	_, err = f.provider.UpsertOptimization(ctx, domain.Optimization{ID: "opt-9", ClientID: "c1", Title: "Segundo"})
	require.NoError(t, err)

	result, err := f.provider.ListOptimizations(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Segundo", result.Data[0].Title)
	assert.Equal(t, providing.OriginLocal, result.Origin)
}

func TestProvider_UpsertOptimizationOnline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	input := domain.Optimization{ClientID: "c1", Title: "Público semelhante"}
	f.remote.EXPECT().UpsertOptimization(gomock.Any(), input).Return(providing.Served(domain.Optimization{
		ID: "srv-7", ClientID: "c1", Title: "Público semelhante", Status: domain.OptimizationStatusPlanned, CreatedAt: referenceNow,
	}, providing.OriginRemote), nil)

	saved, err := f.provider.UpsertOptimization(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, providing.OriginRemote, saved.Origin)

	f.setOnline(false)
	result, err := f.provider.ListOptimizations(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "srv-7", result.Data[0].ID)

	status, err := f.provider.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.PendingOptimizations, "cópia confirmada não entra na fila")
}

func TestProvider_UpsertOptimizationWithoutClient(t *testing.T) {
	ctx := context.Background()

	for _, online := range []bool{false, true} {
		t.Run(fmt.Sprintf("online=%v", online), func(t *testing.T) {
			f := newFixture(t, online)

			_, err := f.provider.UpsertOptimization(ctx, domain.Optimization{ClientID: "  ", Title: "Sem cliente"})
			require.Error(t, err)
			assert.ErrorIs(t, err, providing.ErrValidation)

			status, err := f.provider.Status(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, status.PendingOptimizations, "item inválido não entra na fila")
		})
	}
}

func TestProvider_UpsertOptimizationOnlineReplacesOfflineCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	queued, err := f.provider.UpsertOptimization(ctx, domain.Optimization{ClientID: "c1", Title: "Ajuste de lance"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(queued.Data.ID, OfflineIDPrefix))

	f.setOnline(true)
	edited := queued.Data
	edited.Title = "Ajuste de lance revisado"

	f.remote.EXPECT().UpsertOptimization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o domain.Optimization) (providing.Result[domain.Optimization], error) {
			assert.Empty(t, o.ID, "id offline não vai para o backend")
			o.ID = "srv-11"
			return providing.Served(o, providing.OriginRemote), nil
		})

	saved, err := f.provider.UpsertOptimization(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, "srv-11", saved.Data.ID)

	offline, err := f.store.ListOfflineOptimizations(ctx)
	require.NoError(t, err)
	assert.Empty(t, offline)

	local, err := f.store.ListOptimizations(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "srv-11", local[0].ID)
	assert.Equal(t, "Ajuste de lance revisado", local[0].Title)

	status, err := f.provider.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.PendingOptimizations)
}

func TestProvider_RefreshCacheKeepsQueue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	require.NoError(t, f.store.ReplaceClients(ctx, []domain.Client{{ID: "synced", Name: "Sincronizado"}}))
	_, err := f.provider.AddClient(ctx, domain.Client{ID: "queued", Name: "Na fila"})
	require.NoError(t, err)

	f.remote.EXPECT().ClearCache().Times(1)
	require.NoError(t, f.provider.RefreshCache(ctx))

	result, err := f.provider.GetClients(ctx)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "queued", result.Data[0].ID)
}

func TestProvider_GetAlertsOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	require.NoError(t, f.store.ReplaceClients(ctx, []domain.Client{{ID: "c1", Name: "Alfa", MonthlyBudget: 1000}}))
	require.NoError(t, f.store.UpsertMetrics(ctx, []domain.MetricRow{
		{Date: domain.DateOnly(referenceNow), ClientID: "c1", Platform: domain.PlatformMeta, CampaignID: "k1", Spend: 800, Leads: 40},
	}))
	require.NoError(t, f.store.ReplaceAlerts(ctx, "c1", []domain.Alert{
		{ID: providing.BudgetAlertID("c1"), ClientID: "c1", Category: domain.AlertCategoryBudget, Severity: domain.AlertSeverityMedium, Read: true},
	}))

	result, err := f.provider.GetAlerts(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, domain.AlertSeverityMedium, result.Data[0].Severity)
	assert.True(t, result.Data[0].Read, "flag de leitura preservado do cache")

	marked, err := f.provider.MarkAlertRead(ctx, "c1:performance")
	require.NoError(t, err)
	assert.False(t, marked)
}
