package providing

import (
	"context"
	"time"

	"github.com/vfg2006/agency-data-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

type ProviderType string

const (
	TypeSynthetic   ProviderType = "synthetic"
	TypeSpreadsheet ProviderType = "spreadsheet"
	TypeRemote      ProviderType = "remote"
	TypeHybrid      ProviderType = "hybrid"
)

// ParseProviderType valida o nome do provedor
func ParseProviderType(value string) (ProviderType, bool) {
	switch t := ProviderType(value); t {
	case TypeSynthetic, TypeSpreadsheet, TypeRemote, TypeHybrid:
		return t, true
	}
	return "", false
}

// DataProvider é o contrato comum a todos os provedores de dados
type DataProvider interface {
	Type() ProviderType

	// GetClients retorna todos os clientes ordenados por nome, nunca parcial
	GetClients(ctx context.Context) (Result[[]domain.Client], error)

	// GetClient retorna Data nil quando o cliente não existe
	GetClient(ctx context.Context, id string) (Result[*domain.Client], error)

	// GetDailyMetrics aplica todos os predicados informados; datas são inclusivas
	GetDailyMetrics(ctx context.Context, query domain.MetricQuery) (Result[[]domain.MetricRow], error)

	// GetCampaigns retorna apenas as campanhas do cliente informado
	GetCampaigns(ctx context.Context, clientID string, query domain.CampaignQuery) (Result[[]domain.Campaign], error)

	// GetAlerts recalcula os alertas a partir dos últimos 7 dias de métricas
	GetAlerts(ctx context.Context, clientID string) (Result[[]domain.Alert], error)

	// ListOptimizations retorna as otimizações mais recentes primeiro
	ListOptimizations(ctx context.Context, clientID string) (Result[[]domain.Optimization], error)

	// UpsertOptimization cria quando o id está ausente ou é desconhecido, senão substitui
	UpsertOptimization(ctx context.Context, input domain.Optimization) (Result[domain.Optimization], error)

	// AddClient é idempotente pelo id
	AddClient(ctx context.Context, client domain.Client) (Result[domain.Client], error)
}

// RemoteProvider é o provedor remoto usado pelo híbrido
type RemoteProvider interface {
	DataProvider
	AlertMarker

	// Ping faz uma leitura leve para confirmar que o backend responde
	Ping(ctx context.Context) error

	// ClearCache descarta o cache interno do provedor
	ClearCache()
}

// AlertMarker é implementado pelos provedores que persistem o flag de leitura
type AlertMarker interface {
	MarkAlertRead(ctx context.Context, id string) (bool, error)
}

// Syncer é implementado pelos provedores com fila offline
type Syncer interface {
	Sync(ctx context.Context) (SyncReport, error)
	Status(ctx context.Context) (SyncStatus, error)
}

// CacheRefresher é implementado pelos provedores com cache explícito
type CacheRefresher interface {
	RefreshCache(ctx context.Context) error
}

// SyncReport resume uma execução de sincronização
type SyncReport struct {
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Pushed        int       `json:"pushed"`
	Failed        int       `json:"failed"`
	Skipped       bool      `json:"skipped"`
	SkippedReason string    `json:"skipped_reason,omitempty"`
}

// SyncStatus descreve o estado atual da fila offline
type SyncStatus struct {
	Online               bool        `json:"online"`
	LastCheckedAt        time.Time   `json:"last_checked_at"`
	SyncRunning          bool        `json:"sync_running"`
	PendingClients       int         `json:"pending_clients"`
	PendingOptimizations int         `json:"pending_optimizations"`
	LastSync             *SyncReport `json:"last_sync,omitempty"`
}
