package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/pkg/utils"
)

const (
	defaultSeed = 20240101
	defaultDays = 30
)

var clientNames = []string{
	"Academia Movimento",
	"Clínica Sorriso",
	"Construtora Horizonte",
	"Doceria Bem Casado",
	"Escola Saber Mais",
	"Imobiliária Porto Seguro",
	"Ótica Visão Clara",
	"Pet Shop Amigo Fiel",
}

var (
	stages   = []string{"prospecção", "proposta", "onboarding", "recorrente"}
	owners   = []string{"Ana", "Bruno", "Carla", "Diego"}
	statuses = []domain.ClientStatus{
		domain.ClientStatusActive,
		domain.ClientStatusActive,
		domain.ClientStatusOnboarding,
		domain.ClientStatusAtRisk,
		domain.ClientStatusPaused,
	}
	platforms  = []domain.Platform{domain.PlatformMeta, domain.PlatformGoogle, domain.PlatformTikTok, domain.PlatformLinkedIn}
	objectives = []string{"leads", "vendas", "tráfego", "reconhecimento"}
)

var _ providing.DataProvider = (*Provider)(nil)

// Provider gera dados de exemplo determinísticos, sem cache e sem rede.
// Escritas ficam apenas em memória.
type Provider struct {
	mu            sync.RWMutex
	now           func() time.Time
	seed          int64
	days          int
	clients       []domain.Client
	campaigns     []domain.Campaign
	metrics       []domain.MetricRow
	optimizations map[string][]domain.Optimization
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

func WithSeed(seed int64) Option {
	return func(p *Provider) {
		p.seed = seed
	}
}

// WithDays define quantos dias de métricas são gerados até hoje
func WithDays(days int) Option {
	return func(p *Provider) {
		if days > 0 {
			p.days = days
		}
	}
}

func New(opts ...Option) *Provider {
	p := &Provider{
		now:           time.Now,
		seed:          defaultSeed,
		days:          defaultDays,
		optimizations: make(map[string][]domain.Optimization),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.generate()
	return p
}

func (p *Provider) generate() {
	rng := rand.New(rand.NewSource(p.seed))
	today := domain.DateOnly(p.now())

	for i, name := range clientNames {
		clientID := fmt.Sprintf("cli-%03d", i+1)
		budget := float64(2000 + rng.Intn(18)*500)

		client := domain.Client{
			ID:            clientID,
			Name:          name,
			Status:        statuses[rng.Intn(len(statuses))],
			Stage:         stages[rng.Intn(len(stages))],
			Owner:         owners[rng.Intn(len(owners))],
			MonthlyBudget: budget,
			LastUpdate:    today,
			Tags:          []string{string(platforms[i%len(platforms)])},
		}

		campaignCount := 1 + rng.Intn(3)
		for c := 0; c < campaignCount; c++ {
			platform := platforms[(i+c)%len(platforms)]
			campaign := domain.Campaign{
				ID:        fmt.Sprintf("%s-camp-%d", clientID, c+1),
				ClientID:  clientID,
				Platform:  platform,
				Name:      fmt.Sprintf("%s | %s", name, objectives[(i+c)%len(objectives)]),
				Status:    "active",
				Objective: objectives[(i+c)%len(objectives)],
				LastSync:  today,
			}
			p.campaigns = append(p.campaigns, campaign)

			// Investimento diário proporcional ao orçamento, com variação
			dailyBase := budget / 30 / float64(campaignCount)
			for d := p.days - 1; d >= 0; d-- {
				impressions := int64(2000 + rng.Intn(8000))
				clicks := impressions * int64(1+rng.Intn(4)) / 100
				leads := clicks * int64(5+rng.Intn(15)) / 100
				spend := dailyBase * (0.7 + rng.Float64()*0.6)

				row := domain.MetricRow{
					Date:        today.AddDate(0, 0, -d),
					ClientID:    clientID,
					Platform:    platform,
					CampaignID:  campaign.ID,
					Impressions: impressions,
					Clicks:      clicks,
					Spend:       utils.RoundWithTwoDecimalPlace(spend),
					Leads:       leads,
					Revenue:     utils.RoundWithTwoDecimalPlace(spend * (1 + rng.Float64()*4)),
					Conversions: leads / 2,
				}
				p.metrics = append(p.metrics, row.Derive())
				client.SpendToDate += row.Spend
			}
		}

		client.SpendToDate = utils.RoundWithTwoDecimalPlace(client.SpendToDate)
		p.clients = append(p.clients, client)
	}

	domain.SortClientsByName(p.clients)
}

func (p *Provider) Type() providing.ProviderType {
	return providing.TypeSynthetic
}

func (p *Provider) GetClients(ctx context.Context) (providing.Result[[]domain.Client], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return providing.Served(domain.CloneClients(p.clients), providing.OriginSynthetic), nil
}

func (p *Provider) GetClient(ctx context.Context, id string) (providing.Result[*domain.Client], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, c := range p.clients {
		if c.ID == id {
			client := c.Clone()
			return providing.Served(&client, providing.OriginSynthetic), nil
		}
	}

	return providing.Served[*domain.Client](nil, providing.OriginSynthetic), nil
}

func (p *Provider) GetDailyMetrics(ctx context.Context, query domain.MetricQuery) (providing.Result[[]domain.MetricRow], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return providing.Served(domain.FilterMetrics(p.metrics, query), providing.OriginSynthetic), nil
}

func (p *Provider) GetCampaigns(ctx context.Context, clientID string, query domain.CampaignQuery) (providing.Result[[]domain.Campaign], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return providing.Served(domain.FilterCampaigns(p.campaigns, clientID, query), providing.OriginSynthetic), nil
}

func (p *Provider) GetAlerts(ctx context.Context, clientID string) (providing.Result[[]domain.Alert], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, c := range p.clients {
		if c.ID == clientID {
			return providing.Served(providing.DeriveAlerts(c, p.metrics, p.now()), providing.OriginSynthetic), nil
		}
	}

	return providing.Served([]domain.Alert{}, providing.OriginSynthetic), nil
}

func (p *Provider) ListOptimizations(ctx context.Context, clientID string) (providing.Result[[]domain.Optimization], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	items := make([]domain.Optimization, 0, len(p.optimizations[clientID]))
	for _, o := range p.optimizations[clientID] {
		items = append(items, o.Clone())
	}
	domain.SortOptimizationsNewestFirst(items)

	return providing.Served(items, providing.OriginSynthetic), nil
}

func (p *Provider) UpsertOptimization(ctx context.Context, input domain.Optimization) (providing.Result[domain.Optimization], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	item := input.Clone()
	item.UpdatedAt = now
	item.Status = domain.ParseOptimizationStatus(string(item.Status))

	items := p.optimizations[item.ClientID]
	for i, existing := range items {
		if item.ID != "" && existing.ID == item.ID {
			item.CreatedAt = existing.CreatedAt
			items[i] = item
			return providing.Served(item.Clone(), providing.OriginSynthetic), nil
		}
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	p.optimizations[item.ClientID] = append(items, item)

	return providing.Served(item.Clone(), providing.OriginSynthetic), nil
}

func (p *Provider) AddClient(ctx context.Context, client domain.Client) (providing.Result[domain.Client], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client.ID == "" {
		client.ID = uuid.NewString()
	}

	for _, c := range p.clients {
		if c.ID == client.ID {
			return providing.Served(c.Clone(), providing.OriginSynthetic), nil
		}
	}

	if client.LastUpdate.IsZero() {
		client.LastUpdate = p.now()
	}
	p.clients = append(p.clients, client.Clone())
	domain.SortClientsByName(p.clients)

	return providing.Served(client.Clone(), providing.OriginSynthetic), nil
}
