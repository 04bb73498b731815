package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agency-data-api/internal/config"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/mocks"
	"go.uber.org/mock/gomock"
)

type sourceFunc func(ctx context.Context, explicit providing.ProviderType) (providing.DataProvider, error)

func (f sourceFunc) Provider(ctx context.Context, explicit providing.ProviderType) (providing.DataProvider, error) {
	return f(ctx, explicit)
}

// syncingProvider é um provedor com fila offline
type syncingProvider struct {
	*mocks.MockDataProvider
	*mocks.MockSyncer
}

func newService(source ProviderSource) *OfflineSyncService {
	service := NewOfflineSyncService(source, &config.Config{
		OfflineSync: config.OfflineSync{CronSchedule: "*/10 * * * *", Enabled: true},
	})
	service.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return service
}

func TestOfflineSyncService_syncOfflineQueue(t *testing.T) {
	tests := []struct {
		name     string
		source   func(ctrl *gomock.Controller) ProviderSource
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "Provedor com fila - deve guardar o relatório",
			source: func(ctrl *gomock.Controller) ProviderSource {
				provider := syncingProvider{mocks.NewMockDataProvider(ctrl), mocks.NewMockSyncer(ctrl)}
				provider.MockDataProvider.EXPECT().Type().Return(providing.TypeHybrid).AnyTimes()
				provider.MockSyncer.EXPECT().Sync(gomock.Any()).Return(providing.SyncReport{Pushed: 3, Failed: 1}, nil)

				return sourceFunc(func(_ context.Context, explicit providing.ProviderType) (providing.DataProvider, error) {
					assert.Empty(t, explicit)
					return provider, nil
				})
			},
			validate: func(t *testing.T, status map[string]any) {
				require.Contains(t, status, "last_report")
				report := status["last_report"].(providing.SyncReport)
				assert.Equal(t, 3, report.Pushed)
				assert.Equal(t, 1, report.Failed)
				assert.NotContains(t, status, "last_error")
			},
		},
		{
			name: "Provedor sem fila - não deve sincronizar",
			source: func(ctrl *gomock.Controller) ProviderSource {
				provider := mocks.NewMockDataProvider(ctrl)
				provider.EXPECT().Type().Return(providing.TypeSpreadsheet).AnyTimes()

				return sourceFunc(func(context.Context, providing.ProviderType) (providing.DataProvider, error) {
					return provider, nil
				})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.NotContains(t, status, "last_report")
				assert.NotContains(t, status, "last_error")
			},
		},
		{
			name: "Erro ao obter o provedor - deve registrar o erro",
			source: func(*gomock.Controller) ProviderSource {
				return sourceFunc(func(context.Context, providing.ProviderType) (providing.DataProvider, error) {
					return nil, errors.New("banco local indisponível")
				})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Contains(t, status["last_error"], "banco local indisponível")
			},
		},
		{
			name: "Erro na sincronização - deve registrar o erro",
			source: func(ctrl *gomock.Controller) ProviderSource {
				provider := syncingProvider{mocks.NewMockDataProvider(ctrl), mocks.NewMockSyncer(ctrl)}
				provider.MockSyncer.EXPECT().Sync(gomock.Any()).Return(providing.SyncReport{}, providing.NewLocalStoreError("sync_clients", errors.New("disco cheio")))

				return sourceFunc(func(context.Context, providing.ProviderType) (providing.DataProvider, error) {
					return provider, nil
				})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Contains(t, status["last_error"], "disco cheio")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := newService(tt.source(ctrl))

			service.syncOfflineQueue(context.Background())

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
			tt.validate(t, status)
		})
	}
}

func TestOfflineSyncService_IgnoresWhileRunning(t *testing.T) {
	service := newService(sourceFunc(func(context.Context, providing.ProviderType) (providing.DataProvider, error) {
		t.Fatal("não deve buscar o provedor durante outra execução")
		return nil, nil
	}))
	service.syncRunning = true

	service.syncOfflineQueue(context.Background())
	assert.False(t, service.TriggerManualSync())

	status := service.GetStatus()
	assert.Equal(t, true, status["sync_running"])
	assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestOfflineSyncService_StartDisabled(t *testing.T) {
	service := NewOfflineSyncService(nil, &config.Config{})

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}
