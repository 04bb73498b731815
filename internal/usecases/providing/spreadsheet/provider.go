package spreadsheet

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/telemetry"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/pkg/cache"
)

const (
	// ConfigKey guarda a configuração da planilha escolhida pelo usuário
	ConfigKey              = "dataProvider:spreadsheet:config"
	localClientsKey        = "spreadsheet:clients:local"
	optimizationsKeyPrefix = "optimizations:"
)

var (
	_ providing.DataProvider   = (*Provider)(nil)
	_ providing.CacheRefresher = (*Provider)(nil)
)

// KeyValueStore é o armazenamento local usado para configuração, clientes e otimizações
type KeyValueStore interface {
	GetValue(ctx context.Context, key string, dest any) (bool, error)
	SetValue(ctx context.Context, key string, value any) error
}

// Config identifica a planilha publicada e suas abas
type Config struct {
	FeedID          string        `json:"feed_id"`
	ClientsTable    string        `json:"clients_table"`
	CampaignsTable  string        `json:"campaigns_table"`
	MetricsTable    string        `json:"metrics_table"`
	RefreshInterval time.Duration `json:"refresh_interval"`
}

// merge preenche os campos vazios com os valores de fallback
func (c Config) merge(fallback Config) Config {
	if c.FeedID == "" {
		c.FeedID = fallback.FeedID
	}
	if c.ClientsTable == "" {
		c.ClientsTable = fallback.ClientsTable
	}
	if c.CampaignsTable == "" {
		c.CampaignsTable = fallback.CampaignsTable
	}
	if c.MetricsTable == "" {
		c.MetricsTable = fallback.MetricsTable
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = fallback.RefreshInterval
	}
	return c
}

// Provider lê clientes, campanhas e métricas de uma planilha publicada.
// Otimizações e clientes adicionados ficam apenas no armazenamento local.
type Provider struct {
	client   sheets.Client
	kv       KeyValueStore
	defaults Config
	now      cache.Clock

	mu        sync.Mutex
	clients   *cache.Cache[[]domain.Client]
	campaigns *cache.Cache[[]domain.Campaign]
	metrics   *cache.Cache[[]domain.MetricRow]
}

func New(client sheets.Client, kv KeyValueStore, defaults Config, clock cache.Clock) *Provider {
	if clock == nil {
		clock = time.Now
	}

	p := &Provider{
		client:   client,
		kv:       kv,
		defaults: defaults,
		now:      clock,
	}
	p.resetCaches(defaults.RefreshInterval)

	return p
}

func (p *Provider) resetCaches(ttl time.Duration) {
	p.clients = cache.New[[]domain.Client](ttl, p.now)
	p.campaigns = cache.New[[]domain.Campaign](ttl, p.now)
	p.metrics = cache.New[[]domain.MetricRow](ttl, p.now)
}

func (p *Provider) Type() providing.ProviderType {
	return providing.TypeSpreadsheet
}

// Config retorna a configuração efetiva: a salva localmente sobre a do ambiente
func (p *Provider) Config(ctx context.Context) Config {
	var stored Config
	found, err := p.kv.GetValue(ctx, ConfigKey, &stored)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao ler configuração da planilha, usando a do ambiente")
		return p.defaults
	}
	if !found {
		return p.defaults
	}

	return stored.merge(p.defaults)
}

// SaveConfig persiste a configuração e descarta os caches das abas
func (p *Provider) SaveConfig(ctx context.Context, cfg Config) error {
	if err := p.kv.SetValue(ctx, ConfigKey, cfg); err != nil {
		return providing.NewLocalStoreError("salvar configuração da planilha", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetCaches(cfg.merge(p.defaults).RefreshInterval)

	return nil
}

// RefreshCache descarta as abas em cache; a próxima leitura busca a planilha
func (p *Provider) RefreshCache(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clients.Clear()
	p.campaigns.Clear()
	p.metrics.Clear()
	return nil
}

func (p *Provider) caches() (*cache.Cache[[]domain.Client], *cache.Cache[[]domain.Campaign], *cache.Cache[[]domain.MetricRow]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.clients, p.campaigns, p.metrics
}

// loadTable devolve a aba do cache quando fresca; senão busca, valida e grava.
// Em falha de rede serve o cache expirado, se houver.
func loadTable[T any](ctx context.Context, client sheets.Client, c *cache.Cache[[]T], cfg Config, tableName string,
	parse func(*sheets.Table, string) ([]T, error)) (providing.Result[[]T], error) {
	if cfg.FeedID == "" {
		return providing.Result[[]T]{}, providing.NewConfigurationError("feed_id", "id da planilha não configurado")
	}

	// A chave inclui a planilha para que a troca de feed não sirva dados de outra
	key := cfg.FeedID + "/" + tableName
	fields := logrus.Fields{"provider": providing.TypeSpreadsheet, "table": tableName}

	if rows, ok := c.Get(key); ok {
		logrus.WithFields(fields).Debug("Aba servida do cache")
		telemetry.CacheLookup(string(providing.TypeSpreadsheet), tableName, telemetry.CacheHit)
		return providing.Served(rows, providing.OriginCache), nil
	}

	table, err := client.FetchTable(ctx, cfg.FeedID, tableName)
	if err != nil {
		telemetry.RemoteError(string(providing.TypeSpreadsheet), "fetch_"+tableName)
		if rows, storedAt, ok := c.Peek(key); ok {
			telemetry.CacheLookup(string(providing.TypeSpreadsheet), tableName, telemetry.CacheStale)
			logrus.WithError(err).WithFields(fields).WithField("cached_at", storedAt).
				Warn("Falha ao buscar aba, servindo cache expirado")
			return providing.Fallback(rows, providing.OriginStale, err), nil
		}
		return providing.Result[[]T]{}, providing.NewRemoteError("buscar aba "+tableName, err)
	}

	rows, err := parse(table, tableName)
	if err != nil {
		return providing.Result[[]T]{}, err
	}

	c.Set(key, rows)
	telemetry.CacheLookup(string(providing.TypeSpreadsheet), tableName, telemetry.CacheMiss)
	return providing.Served(rows, providing.OriginFeed), nil
}

func (p *Provider) GetClients(ctx context.Context) (providing.Result[[]domain.Client], error) {
	cfg := p.Config(ctx)
	clients, _, _ := p.caches()

	result, err := loadTable(ctx, p.client, clients, cfg, cfg.ClientsTable, parseClients)
	if err != nil {
		return result, err
	}

	local, err := p.localClients(ctx)
	if err != nil {
		return providing.Result[[]domain.Client]{}, err
	}

	// A planilha vence em caso de id repetido
	merged := domain.CloneClients(result.Data)
	seen := make(map[string]struct{}, len(merged))
	for _, c := range merged {
		seen[c.ID] = struct{}{}
	}
	for _, c := range local {
		if _, ok := seen[c.ID]; !ok {
			merged = append(merged, c)
		}
	}
	domain.SortClientsByName(merged)

	result.Data = merged
	return result, nil
}

func (p *Provider) GetClient(ctx context.Context, id string) (providing.Result[*domain.Client], error) {
	all, err := p.GetClients(ctx)
	if err != nil {
		return providing.Result[*domain.Client]{}, err
	}

	for _, c := range all.Data {
		if c.ID == id {
			client := c
			return providing.Result[*domain.Client]{Data: &client, Origin: all.Origin, Err: all.Err}, nil
		}
	}

	return providing.Result[*domain.Client]{Origin: all.Origin, Err: all.Err}, nil
}

func (p *Provider) GetCampaigns(ctx context.Context, clientID string, query domain.CampaignQuery) (providing.Result[[]domain.Campaign], error) {
	cfg := p.Config(ctx)
	_, campaigns, _ := p.caches()

	result, err := loadTable(ctx, p.client, campaigns, cfg, cfg.CampaignsTable, parseCampaigns)
	if err != nil {
		return result, err
	}

	result.Data = domain.FilterCampaigns(result.Data, clientID, query)
	return result, nil
}

func (p *Provider) GetDailyMetrics(ctx context.Context, query domain.MetricQuery) (providing.Result[[]domain.MetricRow], error) {
	cfg := p.Config(ctx)
	_, _, metrics := p.caches()

	result, err := loadTable(ctx, p.client, metrics, cfg, cfg.MetricsTable, parseMetrics)
	if err != nil {
		return result, err
	}

	result.Data = domain.FilterMetrics(result.Data, query)
	return result, nil
}

func (p *Provider) GetAlerts(ctx context.Context, clientID string) (providing.Result[[]domain.Alert], error) {
	client, err := p.GetClient(ctx, clientID)
	if err != nil {
		return providing.Result[[]domain.Alert]{}, err
	}
	if client.Data == nil {
		return providing.Served([]domain.Alert{}, client.Origin), nil
	}

	now := p.now()
	metrics, err := p.GetDailyMetrics(ctx, providing.AlertQuery(clientID, now))
	if err != nil {
		return providing.Result[[]domain.Alert]{}, err
	}

	result := providing.Served(providing.DeriveAlerts(*client.Data, metrics.Data, now), metrics.Origin)
	result.Err = metrics.Err
	return result, nil
}

func optimizationsKey(clientID string) string {
	return optimizationsKeyPrefix + clientID
}

func (p *Provider) loadOptimizations(ctx context.Context, clientID string) ([]domain.Optimization, error) {
	var items []domain.Optimization
	if _, err := p.kv.GetValue(ctx, optimizationsKey(clientID), &items); err != nil {
		return nil, providing.NewLocalStoreError("ler otimizações", err)
	}
	return items, nil
}

func (p *Provider) ListOptimizations(ctx context.Context, clientID string) (providing.Result[[]domain.Optimization], error) {
	items, err := p.loadOptimizations(ctx, clientID)
	if err != nil {
		return providing.Result[[]domain.Optimization]{}, err
	}
	if items == nil {
		items = []domain.Optimization{}
	}

	domain.SortOptimizationsNewestFirst(items)
	return providing.Served(items, providing.OriginLocal), nil
}

func (p *Provider) UpsertOptimization(ctx context.Context, input domain.Optimization) (providing.Result[domain.Optimization], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items, err := p.loadOptimizations(ctx, input.ClientID)
	if err != nil {
		return providing.Result[domain.Optimization]{}, err
	}

	now := p.now()
	item := input.Clone()
	item.Status = domain.ParseOptimizationStatus(string(item.Status))
	item.UpdatedAt = now

	replaced := false
	for i, existing := range items {
		if item.ID != "" && existing.ID == item.ID {
			item.CreatedAt = existing.CreatedAt
			items[i] = item
			replaced = true
			break
		}
	}

	if !replaced {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		items = append(items, item)
	}

	if err := p.kv.SetValue(ctx, optimizationsKey(item.ClientID), items); err != nil {
		return providing.Result[domain.Optimization]{}, providing.NewLocalStoreError("salvar otimização", err)
	}

	return providing.Served(item, providing.OriginLocal), nil
}

func (p *Provider) localClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if _, err := p.kv.GetValue(ctx, localClientsKey, &clients); err != nil {
		return nil, providing.NewLocalStoreError("ler clientes locais", err)
	}
	return clients, nil
}

// AddClient grava o cliente na lista local; a planilha em si é somente leitura
func (p *Provider) AddClient(ctx context.Context, client domain.Client) (providing.Result[domain.Client], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	local, err := p.localClients(ctx)
	if err != nil {
		return providing.Result[domain.Client]{}, err
	}

	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	for _, c := range local {
		if c.ID == client.ID {
			return providing.Served(c, providing.OriginLocal), nil
		}
	}

	if client.LastUpdate.IsZero() {
		client.LastUpdate = p.now()
	}
	local = append(local, client.Clone())

	if err := p.kv.SetValue(ctx, localClientsKey, local); err != nil {
		return providing.Result[domain.Client]{}, providing.NewLocalStoreError("salvar cliente local", err)
	}

	return providing.Served(client, providing.OriginLocal), nil
}
