package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

var clientColumns = []string{
	"id", "name", "status", "stage", "owner", "monthly_budget", "spend_to_date",
	"last_update", "logo_url", "tags", "origin",
}

const clientUpsertSuffix = `ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	status = excluded.status,
	stage = excluded.stage,
	owner = excluded.owner,
	monthly_budget = excluded.monthly_budget,
	spend_to_date = excluded.spend_to_date,
	last_update = excluded.last_update,
	logo_url = excluded.logo_url,
	tags = excluded.tags,
	origin = excluded.origin,
	cached_at = excluded.cached_at`

// ReplaceClients sobrescreve o cache de clientes com a lista completa do
// backend, mantendo apenas os clientes offline ainda não sincronizados
func (s *Store) ReplaceClients(ctx context.Context, clients []domain.Client) error {
	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, squirrel.Delete(clientsTable).
			Where(squirrel.NotEq{"origin": string(OriginOffline)})); err != nil {
			return err
		}

		for _, c := range clients {
			if err := s.upsertClient(ctx, tx, c, OriginSynced); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertClient grava um cliente com a procedência informada
func (s *Store) UpsertClient(ctx context.Context, client domain.Client, origin Origin) error {
	return s.upsertClient(ctx, s.conn, client, origin)
}

func (s *Store) upsertClient(ctx context.Context, runner execer, c domain.Client, origin Origin) error {
	tags, err := encodeList(c.Tags)
	if err != nil {
		return fmt.Errorf("erro ao serializar tags do cliente %s: %w", c.ID, err)
	}

	builder := squirrel.Insert(clientsTable).
		Columns(append(clientColumns, "cached_at")...).
		Values(
			c.ID, c.Name, string(c.Status), c.Stage, c.Owner, c.MonthlyBudget, c.SpendToDate,
			toMillis(c.LastUpdate), c.LogoURL, tags, string(origin), toMillis(s.now()),
		).
		Suffix(clientUpsertSuffix)

	_, err = s.exec(ctx, runner, builder)
	return err
}

func (s *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, _, err := s.listClients(ctx, nil)
	if err != nil {
		return nil, err
	}

	domain.SortClientsByName(clients)
	return clients, nil
}

// ListOfflineClients retorna os clientes que aguardam envio ao backend
func (s *Store) ListOfflineClients(ctx context.Context) ([]domain.Client, error) {
	clients, _, err := s.listClients(ctx, squirrel.Eq{"origin": string(OriginOffline)})
	return clients, err
}

// GetClient retorna nil quando o cliente não está no cache
func (s *Store) GetClient(ctx context.Context, id string) (*domain.Client, Origin, error) {
	clients, origins, err := s.listClients(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return nil, "", err
	}
	if len(clients) == 0 {
		return nil, "", nil
	}
	return &clients[0], origins[0], nil
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	_, err := s.exec(ctx, s.conn, squirrel.Delete(clientsTable).Where(squirrel.Eq{"id": id}))
	return err
}

func (s *Store) listClients(ctx context.Context, where squirrel.Sqlizer) ([]domain.Client, []Origin, error) {
	builder := squirrel.Select(clientColumns...).From(clientsTable)
	if where != nil {
		builder = builder.Where(where)
	}

	rows, err := s.query(ctx, builder)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	clients := []domain.Client{}
	origins := []Origin{}

	for rows.Next() {
		var (
			c          domain.Client
			status     string
			lastUpdate int64
			tags       string
			origin     string
		)

		if err := rows.Scan(
			&c.ID, &c.Name, &status, &c.Stage, &c.Owner, &c.MonthlyBudget, &c.SpendToDate,
			&lastUpdate, &c.LogoURL, &tags, &origin,
		); err != nil {
			return nil, nil, fmt.Errorf("erro ao ler cliente do cache: %w", err)
		}

		c.Status = domain.ClientStatus(status)
		c.LastUpdate = fromMillis(lastUpdate)
		if c.Tags, err = decodeList(tags); err != nil {
			return nil, nil, fmt.Errorf("erro ao ler tags do cliente %s: %w", c.ID, err)
		}

		clients = append(clients, c)
		origins = append(origins, Origin(origin))
	}

	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}

	return clients, origins, nil
}
