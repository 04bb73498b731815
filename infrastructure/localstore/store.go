package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/agency-data-api/infrastructure/database/sqlite"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Origin marca a procedência de uma linha local
type Origin string

const (
	// OriginSynced é uma cópia confirmada pelo backend remoto
	OriginSynced Origin = "synced"
	// OriginOffline foi gravada sem conexão e aguarda sincronização
	OriginOffline Origin = "offline"
)

const (
	clientsTable       = "clients"
	campaignsTable     = "campaigns"
	metricsTable       = "metrics"
	alertsTable        = "alerts"
	optimizationsTable = "optimizations"
	kvTable            = "kv_store"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store é o armazenamento estruturado local: tabelas de cache espelhando as
// entidades remotas, a fila offline e um key-value simples
type Store struct {
	conn *sqlite.Connection
	now  func() time.Time
}

func New(conn *sqlite.Connection) *Store {
	return &Store{conn: conn, now: time.Now}
}

// WithClock troca o relógio usado em cached_at e updated_at
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Store) exec(ctx context.Context, runner execer, builder squirrel.Sqlizer) (sql.Result, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := runner.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	return result, nil
}

func (s *Store) query(ctx context.Context, builder squirrel.SelectBuilder) (*sql.Rows, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	return rows, nil
}

// ClearCache apaga as tabelas de cache preservando as linhas que ainda
// aguardam sincronização
func (s *Store) ClearCache(ctx context.Context) error {
	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		statements := []squirrel.Sqlizer{
			squirrel.Delete(clientsTable).Where(squirrel.NotEq{"origin": string(OriginOffline)}),
			squirrel.Delete(campaignsTable),
			squirrel.Delete(metricsTable),
			squirrel.Delete(alertsTable),
		}

		for _, stmt := range statements {
			if _, err := s.exec(ctx, tx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

type PendingCounts struct {
	Clients       int `json:"clients"`
	Optimizations int `json:"optimizations"`
}

// Pending conta as linhas marcadas como offline
func (s *Store) Pending(ctx context.Context) (PendingCounts, error) {
	var counts PendingCounts

	for table, dest := range map[string]*int{
		clientsTable:       &counts.Clients,
		optimizationsTable: &counts.Optimizations,
	} {
		query, args, err := squirrel.Select("COUNT(*)").
			From(table).
			Where(squirrel.Eq{"origin": string(OriginOffline)}).
			ToSql()
		if err != nil {
			return counts, fmt.Errorf("erro ao construir a query: %w", err)
		}

		if err := s.conn.QueryRowContext(ctx, query, args...).Scan(dest); err != nil {
			return counts, fmt.Errorf("erro ao contar pendências em %s: %w", table, err)
		}
	}

	return counts, nil
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	values := []string{}
	if raw == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}
