package hybrid

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/infrastructure/localstore"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/telemetry"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/pkg/connectivity"
	"github.com/vfg2006/agency-data-api/pkg/utils"
)

const (
	DefaultRetentionDays = 90
	// OfflineIDPrefix marca ids gerados localmente sem conexão
	OfflineIDPrefix = "offline_"
)

var (
	_ providing.DataProvider   = (*Provider)(nil)
	_ providing.AlertMarker    = (*Provider)(nil)
	_ providing.Syncer         = (*Provider)(nil)
	_ providing.CacheRefresher = (*Provider)(nil)
)

// LocalStore é o armazenamento estruturado que espelha o backend e guarda a fila offline
type LocalStore interface {
	ReplaceClients(ctx context.Context, clients []domain.Client) error
	UpsertClient(ctx context.Context, client domain.Client, origin localstore.Origin) error
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListOfflineClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, localstore.Origin, error)
	DeleteClient(ctx context.Context, id string) error

	UpsertCampaigns(ctx context.Context, campaigns []domain.Campaign) error
	ListCampaigns(ctx context.Context, clientID string, query domain.CampaignQuery) ([]domain.Campaign, error)

	UpsertMetrics(ctx context.Context, rows []domain.MetricRow) error
	ListMetrics(ctx context.Context, query domain.MetricQuery) ([]domain.MetricRow, error)
	PruneMetrics(ctx context.Context, cutoff time.Time) (int64, error)

	ReplaceAlerts(ctx context.Context, clientID string, alerts []domain.Alert) error
	ListAlerts(ctx context.Context, clientID string) ([]domain.Alert, error)
	MarkAlertRead(ctx context.Context, id string) (bool, error)

	UpsertOptimization(ctx context.Context, o domain.Optimization, origin localstore.Origin) error
	ListOptimizations(ctx context.Context, clientID string) ([]domain.Optimization, error)
	ListOfflineOptimizations(ctx context.Context) ([]domain.Optimization, error)
	DeleteOptimization(ctx context.Context, id string) error

	ClearCache(ctx context.Context) error
	Pending(ctx context.Context) (localstore.PendingCounts, error)
}

// Provider combina o provedor remoto com o armazenamento local: lê do remoto
// quando online, cai para o cache local em falhas e enfileira escritas offline
type Provider struct {
	remote    providing.RemoteProvider
	store     LocalStore
	probe     *connectivity.Probe
	now       func() time.Time
	retention int

	syncMu      sync.Mutex
	syncRunning bool
	lastSync    *providing.SyncReport
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// WithProbe substitui a verificação de conectividade padrão
func WithProbe(probe *connectivity.Probe) Option {
	return func(p *Provider) {
		if probe != nil {
			p.probe = probe
		}
	}
}

func WithRetentionDays(days int) Option {
	return func(p *Provider) {
		if days > 0 {
			p.retention = days
		}
	}
}

func New(remote providing.RemoteProvider, store LocalStore, opts ...Option) *Provider {
	p := &Provider{
		remote:    remote,
		store:     store,
		now:       time.Now,
		retention: DefaultRetentionDays,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.probe == nil {
		p.probe = connectivity.NewProbe(remote.Ping,
			connectivity.WithClock(p.now),
			connectivity.WithOnChange(telemetry.SetOnline),
		)
	}

	return p
}

func (p *Provider) Type() providing.ProviderType {
	return providing.TypeHybrid
}

func logFields(operation string) logrus.Fields {
	return logrus.Fields{"provider": providing.TypeHybrid, "operation": operation}
}

func served[T any](operation string, result providing.Result[T]) providing.Result[T] {
	telemetry.Served(string(providing.TypeHybrid), operation, string(result.Origin))
	return result
}

// readThrough implementa o caminho de leitura: remoto quando online, espelhando
// o resultado no cache local; cache local quando offline ou em falha remota
func readThrough[T any](
	ctx context.Context,
	p *Provider,
	operation string,
	remote func(ctx context.Context) (providing.Result[T], error),
	mirror func(ctx context.Context, data T) error,
	local func(ctx context.Context) (T, error),
	empty func(data T) bool,
) (providing.Result[T], error) {
	var cause error

	if p.probe.Online(ctx) {
		result, err := remote(ctx)
		if err == nil {
			if mirror != nil {
				if err := mirror(ctx, result.Data); err != nil {
					logrus.WithError(err).WithFields(logFields(operation)).Warn("Erro ao atualizar cache local")
				}
			}
			return served(operation, result), nil
		}

		if providing.IsFatal(err) {
			return providing.Result[T]{}, err
		}

		cause = err
		logrus.WithError(err).WithFields(logFields(operation)).Warn("Falha no backend remoto, servindo cache local")
	}

	data, err := local(ctx)
	if err != nil {
		return providing.Result[T]{}, providing.NewLocalStoreError(operation, err)
	}

	origin := providing.OriginLocal
	if cause != nil {
		origin = providing.OriginStale
	}
	if empty(data) {
		origin = providing.OriginEmpty
	}

	return served(operation, providing.Fallback(data, origin, cause)), nil
}

func emptySlice[T any](data []T) bool {
	return len(data) == 0
}

func (p *Provider) GetClients(ctx context.Context) (providing.Result[[]domain.Client], error) {
	result, err := readThrough(ctx, p, "get_clients",
		p.remote.GetClients,
		p.store.ReplaceClients,
		p.store.ListClients,
		emptySlice[domain.Client],
	)
	if err != nil || result.Degraded() {
		return result, err
	}

	// Clientes ainda na fila continuam visíveis até serem sincronizados
	pending, err := p.store.ListOfflineClients(ctx)
	if err != nil {
		logrus.WithError(err).WithFields(logFields("get_clients")).Warn("Erro ao ler clientes offline")
		return result, nil
	}

	result.Data = mergeClients(result.Data, pending)
	return result, nil
}

// mergeClients acrescenta os clientes locais cujo id não existe no remoto
func mergeClients(remote, local []domain.Client) []domain.Client {
	if len(local) == 0 {
		return remote
	}

	seen := make(map[string]struct{}, len(remote))
	merged := domain.CloneClients(remote)
	for _, c := range merged {
		seen[c.ID] = struct{}{}
	}
	for _, c := range local {
		if _, ok := seen[c.ID]; !ok {
			merged = append(merged, c.Clone())
		}
	}

	domain.SortClientsByName(merged)
	return merged
}

func (p *Provider) GetClient(ctx context.Context, id string) (providing.Result[*domain.Client], error) {
	result, err := readThrough(ctx, p, "get_client",
		func(ctx context.Context) (providing.Result[*domain.Client], error) {
			return p.remote.GetClient(ctx, id)
		},
		func(ctx context.Context, client *domain.Client) error {
			if client == nil {
				return nil
			}
			return p.store.UpsertClient(ctx, *client, localstore.OriginSynced)
		},
		func(ctx context.Context) (*domain.Client, error) {
			client, _, err := p.store.GetClient(ctx, id)
			return client, err
		},
		func(client *domain.Client) bool { return client == nil },
	)
	if err != nil || result.Data != nil || result.Degraded() {
		return result, err
	}

	// Ainda não sincronizado: o remoto não conhece o cliente
	local, origin, err := p.store.GetClient(ctx, id)
	if err != nil || local == nil || origin != localstore.OriginOffline {
		return result, nil
	}
	return providing.Served(local, providing.OriginQueued), nil
}

func (p *Provider) GetDailyMetrics(ctx context.Context, query domain.MetricQuery) (providing.Result[[]domain.MetricRow], error) {
	return readThrough(ctx, p, "get_daily_metrics",
		func(ctx context.Context) (providing.Result[[]domain.MetricRow], error) {
			return p.remote.GetDailyMetrics(ctx, query)
		},
		p.cacheMetrics,
		func(ctx context.Context) ([]domain.MetricRow, error) {
			return p.store.ListMetrics(ctx, query)
		},
		emptySlice[domain.MetricRow],
	)
}

// cacheMetrics grava as métricas e aplica a retenção do cache local
func (p *Provider) cacheMetrics(ctx context.Context, rows []domain.MetricRow) error {
	if err := p.store.UpsertMetrics(ctx, rows); err != nil {
		return err
	}

	cutoff := domain.DateOnly(p.now()).AddDate(0, 0, -p.retention)
	pruned, err := p.store.PruneMetrics(ctx, cutoff)
	if err != nil {
		return err
	}

	if pruned > 0 {
		telemetry.MetricsPruned(pruned)
		logrus.WithFields(logFields("get_daily_metrics")).WithField("pruned", pruned).Debug("Métricas antigas removidas do cache")
	}
	return nil
}

func (p *Provider) GetCampaigns(ctx context.Context, clientID string, query domain.CampaignQuery) (providing.Result[[]domain.Campaign], error) {
	return readThrough(ctx, p, "get_campaigns",
		func(ctx context.Context) (providing.Result[[]domain.Campaign], error) {
			return p.remote.GetCampaigns(ctx, clientID, query)
		},
		p.store.UpsertCampaigns,
		func(ctx context.Context) ([]domain.Campaign, error) {
			return p.store.ListCampaigns(ctx, clientID, query)
		},
		emptySlice[domain.Campaign],
	)
}

func (p *Provider) GetAlerts(ctx context.Context, clientID string) (providing.Result[[]domain.Alert], error) {
	return readThrough(ctx, p, "get_alerts",
		func(ctx context.Context) (providing.Result[[]domain.Alert], error) {
			return p.remote.GetAlerts(ctx, clientID)
		},
		func(ctx context.Context, alerts []domain.Alert) error {
			return p.store.ReplaceAlerts(ctx, clientID, alerts)
		},
		func(ctx context.Context) ([]domain.Alert, error) {
			return p.localAlerts(ctx, clientID)
		},
		emptySlice[domain.Alert],
	)
}

// localAlerts recalcula os alertas com o cliente e as métricas em cache,
// preservando o flag de leitura dos alertas guardados
func (p *Provider) localAlerts(ctx context.Context, clientID string) ([]domain.Alert, error) {
	stored, err := p.store.ListAlerts(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client, _, err := p.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return stored, nil
	}

	now := p.now()
	metrics, err := p.store.ListMetrics(ctx, providing.AlertQuery(clientID, now))
	if err != nil {
		return nil, err
	}

	states := make(map[string]bool, len(stored))
	for _, a := range stored {
		states[a.ID] = a.Read
	}

	return providing.ApplyReadStates(providing.DeriveAlerts(*client, metrics, now), states), nil
}

// MarkAlertRead marca no remoto quando possível e sempre no cache local.
// Offline o flag fica apenas local.
func (p *Provider) MarkAlertRead(ctx context.Context, id string) (bool, error) {
	remoteMarked := false

	if p.probe.Online(ctx) {
		marked, err := p.remote.MarkAlertRead(ctx, id)
		if err != nil {
			logrus.WithError(err).WithFields(logFields("mark_alert_read")).Warn("Falha ao marcar alerta no backend remoto")
		}
		remoteMarked = marked
	}

	localMarked, err := p.store.MarkAlertRead(ctx, id)
	if err != nil {
		return remoteMarked, providing.NewLocalStoreError("mark_alert_read", err)
	}

	return remoteMarked || localMarked, nil
}

// ListOptimizations junta a lista remota com a local; em id repetido vence a remota
func (p *Provider) ListOptimizations(ctx context.Context, clientID string) (providing.Result[[]domain.Optimization], error) {
	local, err := p.store.ListOptimizations(ctx, clientID)
	if err != nil {
		return providing.Result[[]domain.Optimization]{}, providing.NewLocalStoreError("list_optimizations", err)
	}

	var cause error
	if p.probe.Online(ctx) {
		remote, err := p.remote.ListOptimizations(ctx, clientID)
		if err == nil {
			return served("list_optimizations", providing.Served(domain.MergeOptimizations(remote.Data, local), remote.Origin)), nil
		}
		if providing.IsFatal(err) {
			return providing.Result[[]domain.Optimization]{}, err
		}

		cause = err
		logrus.WithError(err).WithFields(logFields("list_optimizations")).WithField("client_id", clientID).
			Warn("Falha ao listar otimizações remotas, servindo apenas as locais")
	}

	origin := providing.OriginLocal
	if cause != nil {
		origin = providing.OriginStale
	}
	if len(local) == 0 {
		origin = providing.OriginEmpty
	}

	return served("list_optimizations", providing.Fallback(domain.MergeOptimizations(nil, local), origin, cause)), nil
}

// UpsertOptimization grava no remoto quando online; em falha grava localmente
// marcada como offline e retorna a cópia local sem esperar a sincronização
func (p *Provider) UpsertOptimization(ctx context.Context, input domain.Optimization) (providing.Result[domain.Optimization], error) {
	if err := providing.ValidateOptimization(input); err != nil {
		return providing.Result[domain.Optimization]{}, err
	}

	var cause error

	if p.probe.Online(ctx) {
		outgoing := input
		// Id offline nunca vai para o backend; a cópia da fila é trocada pela definitiva
		if strings.HasPrefix(input.ID, OfflineIDPrefix) {
			outgoing.ID = ""
		}

		result, err := p.remote.UpsertOptimization(ctx, outgoing)
		if err == nil {
			if outgoing.ID != input.ID {
				if err := p.store.DeleteOptimization(ctx, input.ID); err != nil {
					logrus.WithError(err).WithFields(logFields("upsert_optimization")).Warn("Erro ao remover cópia offline")
				}
			}
			if err := p.store.UpsertOptimization(ctx, result.Data, localstore.OriginSynced); err != nil {
				logrus.WithError(err).WithFields(logFields("upsert_optimization")).Warn("Erro ao atualizar cache local")
			}
			if outgoing.ID != input.ID {
				p.refreshPending(ctx)
			}
			return served("upsert_optimization", result), nil
		}
		if providing.IsFatal(err) {
			return providing.Result[domain.Optimization]{}, err
		}
		cause = err
	}

	item, err := p.prepareOffline(ctx, input)
	if err != nil {
		return providing.Result[domain.Optimization]{}, err
	}

	if err := p.store.UpsertOptimization(ctx, item, localstore.OriginOffline); err != nil {
		return providing.Result[domain.Optimization]{}, providing.NewLocalStoreError("upsert_optimization", err)
	}

	logrus.WithFields(logFields("upsert_optimization")).WithFields(logrus.Fields{
		"client_id": item.ClientID,
		"origin":    providing.OriginQueued,
	}).Info("Otimização gravada offline para sincronização")
	p.refreshPending(ctx)

	return served("upsert_optimization", providing.Fallback(item, providing.OriginQueued, cause)), nil
}

// prepareOffline gera o id offline quando ausente e mantém a data de criação
// de uma versão local anterior
func (p *Provider) prepareOffline(ctx context.Context, input domain.Optimization) (domain.Optimization, error) {
	now := p.now()
	item := input.Clone()
	item.Status = domain.ParseOptimizationStatus(string(item.Status))
	item.UpdatedAt = now

	if item.ID == "" {
		id, err := newOfflineID()
		if err != nil {
			return item, err
		}
		item.ID = id
	} else {
		existing, err := p.store.ListOptimizations(ctx, item.ClientID)
		if err != nil {
			return item, providing.NewLocalStoreError("upsert_optimization", err)
		}
		for _, o := range existing {
			if o.ID == item.ID {
				item.CreatedAt = o.CreatedAt
				break
			}
		}
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}

	return item, nil
}

func newOfflineID() (string, error) {
	suffix, err := utils.GenerateID()
	if err != nil {
		return "", err
	}
	return OfflineIDPrefix + suffix, nil
}

// AddClient é idempotente pelo id: offline, um cliente já presente no cache é devolvido como está
func (p *Provider) AddClient(ctx context.Context, client domain.Client) (providing.Result[domain.Client], error) {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	if client.LastUpdate.IsZero() {
		client.LastUpdate = p.now()
	}

	var cause error
	if p.probe.Online(ctx) {
		result, err := p.remote.AddClient(ctx, client)
		if err == nil {
			if err := p.store.UpsertClient(ctx, result.Data, localstore.OriginSynced); err != nil {
				logrus.WithError(err).WithFields(logFields("add_client")).Warn("Erro ao atualizar cache local")
			}
			return served("add_client", result), nil
		}
		if providing.IsFatal(err) {
			return providing.Result[domain.Client]{}, err
		}
		cause = err
	}

	existing, origin, err := p.store.GetClient(ctx, client.ID)
	if err != nil {
		return providing.Result[domain.Client]{}, providing.NewLocalStoreError("add_client", err)
	}
	if existing != nil {
		resultOrigin := providing.OriginLocal
		if origin == localstore.OriginOffline {
			resultOrigin = providing.OriginQueued
		}
		return served("add_client", providing.Fallback(*existing, resultOrigin, cause)), nil
	}

	if err := p.store.UpsertClient(ctx, client, localstore.OriginOffline); err != nil {
		return providing.Result[domain.Client]{}, providing.NewLocalStoreError("add_client", err)
	}

	logrus.WithFields(logFields("add_client")).WithFields(logrus.Fields{
		"client_id": client.ID,
		"origin":    providing.OriginQueued,
	}).Info("Cliente gravado offline para sincronização")
	p.refreshPending(ctx)

	return served("add_client", providing.Fallback(client, providing.OriginQueued, cause)), nil
}

// RefreshCache limpa as tabelas de cache, preservando a fila offline, e o cache do remoto
func (p *Provider) RefreshCache(ctx context.Context) error {
	if err := p.store.ClearCache(ctx); err != nil {
		return providing.NewLocalStoreError("refresh_cache", err)
	}
	p.remote.ClearCache()

	logrus.WithFields(logFields("refresh_cache")).Info("Cache local limpo")
	return nil
}

func (p *Provider) refreshPending(ctx context.Context) {
	counts, err := p.store.Pending(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao contar pendências offline")
		return
	}

	telemetry.SetPending("clients", counts.Clients)
	telemetry.SetPending("optimizations", counts.Optimizations)
}
