package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/internal/config"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
)

// ProviderSource entrega o provedor de dados ativo
type ProviderSource interface {
	Provider(ctx context.Context, explicit providing.ProviderType) (providing.DataProvider, error)
}

// OfflineSyncConfig representa a configuração do agendador da fila offline
type OfflineSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// OfflineSyncService agenda o envio da fila offline do provedor ativo
type OfflineSyncService struct {
	scheduler           *gocron.Scheduler
	config              OfflineSyncConfig
	source              ProviderSource
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *providing.SyncReport
	lastError           string
}

func NewOfflineSyncService(source ProviderSource, appConfig *config.Config) *OfflineSyncService {
	syncConfig := OfflineSyncConfig{
		CronSchedule: appConfig.OfflineSync.CronSchedule,
		SyncEnabled:  appConfig.OfflineSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador da fila offline carregada")

	return &OfflineSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		source:    source,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *OfflineSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização da fila offline desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da fila offline")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncOfflineQueue(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização da fila offline: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da fila offline")
		s.scheduler.Stop()
	}()

	return nil
}

// syncOfflineQueue envia a fila do provedor ativo quando ele possui uma
func (s *OfflineSyncService) syncOfflineQueue(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização da fila offline já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	report, err := s.run(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.lastSyncCompletedAt = s.now()
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro na sincronização da fila offline")
		return
	}
	if report != nil {
		s.lastReport = report
	}
}

func (s *OfflineSyncService) run(ctx context.Context) (*providing.SyncReport, error) {
	provider, err := s.source.Provider(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao obter provedor ativo: %w", err)
	}

	syncer, ok := provider.(providing.Syncer)
	if !ok {
		logrus.WithField("provider", provider.Type()).Debug("Provedor ativo sem fila offline, nada a sincronizar")
		return nil, nil
	}

	started := s.now()
	report, err := syncer.Sync(ctx)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"provider": provider.Type(),
		"pushed":   report.Pushed,
		"failed":   report.Failed,
		"skipped":  report.SkippedReason,
		"duration": s.now().Sub(started).String(),
	}).Info("Sincronização da fila offline concluída")

	return &report, nil
}

// TriggerManualSync inicia manualmente uma sincronização da fila offline
func (s *OfflineSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização da fila offline já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual da fila offline")
	go s.syncOfflineQueue(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *OfflineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastReport != nil {
		status["last_report"] = *s.lastReport
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	return status
}
