package remote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/infrastructure/repository"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/telemetry"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/pkg/cache"
)

const (
	DefaultClientsTTL = 5 * time.Minute
	clientsCacheKey   = "clients"
)

var (
	_ providing.RemoteProvider = (*Provider)(nil)
	_ providing.CacheRefresher = (*Provider)(nil)
)

// Repositories agrupa as coleções do backend remoto
type Repositories struct {
	Clients       repository.ClientRepository
	Campaigns     repository.CampaignRepository
	Metrics       repository.MetricRepository
	Alerts        repository.AlertRepository
	Optimizations repository.OptimizationRepository
}

// Provider consulta o backend relacional. Apenas a lista de clientes fica em cache.
type Provider struct {
	repos   Repositories
	clients *cache.Cache[[]domain.Client]
	now     cache.Clock
}

func New(repos Repositories, clientsTTL time.Duration, clock cache.Clock) *Provider {
	if clock == nil {
		clock = time.Now
	}
	if clientsTTL <= 0 {
		clientsTTL = DefaultClientsTTL
	}

	return &Provider{
		repos:   repos,
		clients: cache.New[[]domain.Client](clientsTTL, clock),
		now:     clock,
	}
}

func (p *Provider) Type() providing.ProviderType {
	return providing.TypeRemote
}

func remoteError(operation string, err error) error {
	telemetry.RemoteError(string(providing.TypeRemote), operation)
	return providing.NewRemoteError(operation, err)
}

func (p *Provider) GetClients(ctx context.Context) (providing.Result[[]domain.Client], error) {
	if clients, ok := p.clients.Get(clientsCacheKey); ok {
		telemetry.CacheLookup(string(providing.TypeRemote), clientsCacheKey, telemetry.CacheHit)
		return providing.Served(domain.CloneClients(clients), providing.OriginCache), nil
	}

	clients, err := p.repos.Clients.ListClients(ctx)
	if err != nil {
		return providing.Result[[]domain.Client]{}, remoteError("list_clients", err)
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	domain.SortClientsByName(clients)

	p.clients.Set(clientsCacheKey, domain.CloneClients(clients))
	telemetry.CacheLookup(string(providing.TypeRemote), clientsCacheKey, telemetry.CacheMiss)

	return providing.Served(clients, providing.OriginRemote), nil
}

func (p *Provider) GetClient(ctx context.Context, id string) (providing.Result[*domain.Client], error) {
	client, err := p.repos.Clients.GetClient(ctx, id)
	if err != nil {
		return providing.Result[*domain.Client]{}, remoteError("get_client", err)
	}

	return providing.Served(client, providing.OriginRemote), nil
}

func (p *Provider) GetDailyMetrics(ctx context.Context, query domain.MetricQuery) (providing.Result[[]domain.MetricRow], error) {
	rows, err := p.repos.Metrics.ListMetrics(ctx, query)
	if err != nil {
		return providing.Result[[]domain.MetricRow]{}, remoteError("list_metrics", err)
	}
	if rows == nil {
		rows = []domain.MetricRow{}
	}

	return providing.Served(rows, providing.OriginRemote), nil
}

func (p *Provider) GetCampaigns(ctx context.Context, clientID string, query domain.CampaignQuery) (providing.Result[[]domain.Campaign], error) {
	campaigns, err := p.repos.Campaigns.ListCampaigns(ctx, clientID, query)
	if err != nil {
		return providing.Result[[]domain.Campaign]{}, remoteError("list_campaigns", err)
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}

	return providing.Served(campaigns, providing.OriginRemote), nil
}

// GetAlerts recalcula os alertas e aplica o flag de leitura persistido
func (p *Provider) GetAlerts(ctx context.Context, clientID string) (providing.Result[[]domain.Alert], error) {
	alerts, err := p.deriveAlerts(ctx, clientID)
	if err != nil {
		return providing.Result[[]domain.Alert]{}, err
	}
	if len(alerts) == 0 {
		return providing.Served(alerts, providing.OriginRemote), nil
	}

	states, err := p.repos.Alerts.ReadStates(ctx, clientID)
	if err != nil {
		logrus.WithError(err).WithField("client_id", clientID).Warn("Erro ao buscar estado de leitura dos alertas")
		return providing.Served(alerts, providing.OriginRemote), nil
	}

	return providing.Served(providing.ApplyReadStates(alerts, states), providing.OriginRemote), nil
}

func (p *Provider) deriveAlerts(ctx context.Context, clientID string) ([]domain.Alert, error) {
	client, err := p.repos.Clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, remoteError("get_client", err)
	}
	if client == nil {
		return []domain.Alert{}, nil
	}

	now := p.now()
	metrics, err := p.repos.Metrics.ListMetrics(ctx, providing.AlertQuery(clientID, now))
	if err != nil {
		return nil, remoteError("list_metrics", err)
	}

	return providing.DeriveAlerts(*client, metrics, now), nil
}

// MarkAlertRead persiste o flag de leitura; false quando o alerta não está mais ativo
func (p *Provider) MarkAlertRead(ctx context.Context, id string) (bool, error) {
	clientID, ok := providing.ClientIDFromAlertID(id)
	if !ok {
		return false, nil
	}

	alerts, err := p.deriveAlerts(ctx, clientID)
	if err != nil {
		return false, err
	}

	for _, alert := range alerts {
		if alert.ID != id {
			continue
		}

		alert.Read = true
		if err := p.repos.Alerts.SaveAlert(ctx, alert); err != nil {
			return false, remoteError("save_alert", err)
		}
		return true, nil
	}

	return false, nil
}

func (p *Provider) ListOptimizations(ctx context.Context, clientID string) (providing.Result[[]domain.Optimization], error) {
	items, err := p.repos.Optimizations.ListOptimizations(ctx, clientID)
	if err != nil {
		return providing.Result[[]domain.Optimization]{}, remoteError("list_optimizations", err)
	}
	if items == nil {
		items = []domain.Optimization{}
	}
	domain.SortOptimizationsNewestFirst(items)

	return providing.Served(items, providing.OriginRemote), nil
}

func (p *Provider) UpsertOptimization(ctx context.Context, input domain.Optimization) (providing.Result[domain.Optimization], error) {
	if err := providing.ValidateOptimization(input); err != nil {
		return providing.Result[domain.Optimization]{}, err
	}

	saved, err := p.repos.Optimizations.UpsertOptimization(ctx, input)
	if err != nil {
		return providing.Result[domain.Optimization]{}, remoteError("upsert_optimization", err)
	}

	return providing.Served(*saved, providing.OriginRemote), nil
}

// AddClient insere o cliente (sem sobrescrever um id existente) e devolve o registro salvo
func (p *Provider) AddClient(ctx context.Context, client domain.Client) (providing.Result[domain.Client], error) {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	if client.LastUpdate.IsZero() {
		client.LastUpdate = p.now()
	}

	if err := p.repos.Clients.InsertClient(ctx, client); err != nil {
		return providing.Result[domain.Client]{}, remoteError("insert_client", err)
	}
	p.clients.Evict(clientsCacheKey)

	saved, err := p.repos.Clients.GetClient(ctx, client.ID)
	if err != nil {
		return providing.Result[domain.Client]{}, remoteError("get_client", err)
	}
	if saved == nil {
		return providing.Served(client, providing.OriginRemote), nil
	}

	return providing.Served(*saved, providing.OriginRemote), nil
}

// Ping faz uma leitura mínima para confirmar que o backend responde
func (p *Provider) Ping(ctx context.Context) error {
	if err := p.repos.Clients.Probe(ctx); err != nil {
		return remoteError("ping", err)
	}
	return nil
}

func (p *Provider) ClearCache() {
	p.clients.Clear()
}

func (p *Provider) RefreshCache(ctx context.Context) error {
	p.ClearCache()
	return nil
}
