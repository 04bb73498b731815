package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/agency-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

const (
	clientsTable = "clients c"
	clientFields = "c.id, c.name, c.status, COALESCE(c.stage, ''), COALESCE(c.owner, ''), " +
		"COALESCE(c.monthly_budget, 0), COALESCE(c.spend_to_date, 0), c.last_update, " +
		"COALESCE(c.logo_url, ''), COALESCE(c.tags, '{}')"
)

type ClientRepository interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	InsertClient(ctx context.Context, client domain.Client) error
	Probe(ctx context.Context) error
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query, args, err := squirrel.
		Select(clientFields).
		From(clientsTable).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar clientes")
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		clients = append(clients, *client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	query, args, err := squirrel.
		Select(clientFields).
		From(clientsTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	client, err := r.scanClient(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar cliente")
	}

	return client, nil
}

// InsertClient insere o cliente apenas se o id ainda não existir
func (r *clientRepository) InsertClient(ctx context.Context, c domain.Client) error {
	lastUpdate := c.LastUpdate
	if lastUpdate.IsZero() {
		lastUpdate = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert("clients").
		Columns("id", "name", "status", "stage", "owner", "monthly_budget", "spend_to_date", "last_update", "logo_url", "tags").
		Values(c.ID, c.Name, string(c.Status), c.Stage, c.Owner, c.MonthlyBudget, c.SpendToDate, lastUpdate, c.LogoURL, pq.Array(c.Tags)).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDatabaseError(err, "erro ao inserir cliente")
	}

	return nil
}

// Probe faz a leitura mais leve possível para confirmar que o backend responde
func (r *clientRepository) Probe(ctx context.Context) error {
	var id string
	err := r.conn.QueryRowContext(ctx, "SELECT id FROM clients LIMIT 1").Scan(&id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, "backend remoto não respondeu")
	}
	return nil
}

func (r *clientRepository) scanClient(row scanner) (*domain.Client, error) {
	var (
		client     domain.Client
		status     string
		lastUpdate sql.NullTime
		tags       pq.StringArray
	)

	if err := row.Scan(
		&client.ID,
		&client.Name,
		&status,
		&client.Stage,
		&client.Owner,
		&client.MonthlyBudget,
		&client.SpendToDate,
		&lastUpdate,
		&client.LogoURL,
		&tags,
	); err != nil {
		return nil, err
	}

	client.Status = domain.ClientStatus(status)
	if lastUpdate.Valid {
		client.LastUpdate = lastUpdate.Time.UTC()
	}
	client.Tags = []string(tags)
	if client.Tags == nil {
		client.Tags = []string{}
	}

	return &client, nil
}
