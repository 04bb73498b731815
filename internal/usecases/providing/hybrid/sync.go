package hybrid

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/infrastructure/localstore"
	"github.com/vfg2006/agency-data-api/internal/telemetry"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
)

const (
	skippedRunning = "sincronização já em andamento"
	skippedOffline = "sem conexão com o backend remoto"
)

// Sync envia ao backend os registros gravados offline. Uma chamada enquanto
// outra está em andamento retorna imediatamente com Skipped.
// Falhas de um item não interrompem os demais; o item fica para a próxima execução.
func (p *Provider) Sync(ctx context.Context) (providing.SyncReport, error) {
	p.syncMu.Lock()
	if p.syncRunning {
		p.syncMu.Unlock()
		logrus.WithFields(logFields("sync")).Debug("Sincronização já em andamento, ignorando")
		telemetry.SyncRun("skipped")
		return providing.SyncReport{StartedAt: p.now(), FinishedAt: p.now(), Skipped: true, SkippedReason: skippedRunning}, nil
	}
	p.syncRunning = true
	p.syncMu.Unlock()

	report := providing.SyncReport{StartedAt: p.now()}

	defer func() {
		p.syncMu.Lock()
		p.syncRunning = false
		p.syncMu.Unlock()
	}()

	if !p.probe.Online(ctx) {
		report.Skipped = true
		report.SkippedReason = skippedOffline
		return p.finishSync(ctx, report, "skipped"), nil
	}

	if err := p.syncClients(ctx, &report); err != nil {
		return p.finishSync(ctx, report, "error"), err
	}

	if err := p.syncOptimizations(ctx, &report); err != nil {
		return p.finishSync(ctx, report, "error"), err
	}

	result := "ok"
	if report.Failed > 0 {
		result = "partial"
	}

	logrus.WithFields(logFields("sync")).WithFields(logrus.Fields{
		"pushed": report.Pushed,
		"failed": report.Failed,
	}).Info("Sincronização offline concluída")

	return p.finishSync(ctx, report, result), nil
}

func (p *Provider) finishSync(ctx context.Context, report providing.SyncReport, result string) providing.SyncReport {
	report.FinishedAt = p.now()
	telemetry.SyncRun(result)
	p.refreshPending(ctx)

	p.syncMu.Lock()
	last := report
	p.lastSync = &last
	p.syncMu.Unlock()

	return report
}

func (p *Provider) syncClients(ctx context.Context, report *providing.SyncReport) error {
	clients, err := p.store.ListOfflineClients(ctx)
	if err != nil {
		return providing.NewLocalStoreError("sync_clients", err)
	}

	for _, client := range clients {
		result, err := p.remote.AddClient(ctx, client)
		if err != nil {
			report.Failed++
			telemetry.SyncItem("clients", false)
			logrus.WithError(providing.NewSyncItemError("clients", client.ID, err)).
				WithFields(logFields("sync")).WithField("client_id", client.ID).
				Warn("Falha ao sincronizar cliente, tentando na próxima execução")
			continue
		}

		// Mesmo id: a cópia local deixa de ser offline. Id trocado pelo backend
		// deixaria a cópia antiga na fila para sempre
		if result.Data.ID != client.ID {
			if err := p.store.DeleteClient(ctx, client.ID); err != nil {
				return providing.NewLocalStoreError("sync_clients", err)
			}
		}
		if err := p.store.UpsertClient(ctx, result.Data, localstore.OriginSynced); err != nil {
			return providing.NewLocalStoreError("sync_clients", err)
		}

		report.Pushed++
		telemetry.SyncItem("clients", true)
	}

	return nil
}

func (p *Provider) syncOptimizations(ctx context.Context, report *providing.SyncReport) error {
	items, err := p.store.ListOfflineOptimizations(ctx)
	if err != nil {
		return providing.NewLocalStoreError("sync_optimizations", err)
	}

	for _, item := range items {
		localID := item.ID

		// Ids gerados offline não vão para o backend, que atribui o definitivo
		if strings.HasPrefix(item.ID, OfflineIDPrefix) {
			item.ID = ""
		}

		result, err := p.remote.UpsertOptimization(ctx, item)
		if err != nil {
			report.Failed++
			telemetry.SyncItem("optimizations", false)
			logrus.WithError(providing.NewSyncItemError("optimizations", localID, err)).
				WithFields(logFields("sync")).WithField("client_id", item.ClientID).
				Warn("Falha ao sincronizar otimização, tentando na próxima execução")
			continue
		}

		if err := p.store.DeleteOptimization(ctx, localID); err != nil {
			return providing.NewLocalStoreError("sync_optimizations", err)
		}
		if err := p.store.UpsertOptimization(ctx, result.Data, localstore.OriginSynced); err != nil {
			return providing.NewLocalStoreError("sync_optimizations", err)
		}

		report.Pushed++
		telemetry.SyncItem("optimizations", true)
	}

	return nil
}

// Status informa a conectividade conhecida e o tamanho da fila sem forçar uma verificação
func (p *Provider) Status(ctx context.Context) (providing.SyncStatus, error) {
	probe := p.probe.Status()

	counts, err := p.store.Pending(ctx)
	if err != nil {
		return providing.SyncStatus{}, providing.NewLocalStoreError("sync_status", err)
	}

	p.syncMu.Lock()
	defer p.syncMu.Unlock()

	status := providing.SyncStatus{
		Online:               probe.Online,
		LastCheckedAt:        probe.LastCheckedAt,
		SyncRunning:          p.syncRunning,
		PendingClients:       counts.Clients,
		PendingOptimizations: counts.Optimizations,
	}
	if p.lastSync != nil {
		last := *p.lastSync
		status.LastSync = &last
	}

	return status, nil
}
