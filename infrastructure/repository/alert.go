package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/agency-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

type AlertRepository interface {
	// ReadStates retorna o flag de leitura persistido por id de alerta
	ReadStates(ctx context.Context, clientID string) (map[string]bool, error)
	SaveAlert(ctx context.Context, alert domain.Alert) error
}

type alertRepository struct {
	conn *postgres.Connection
}

func NewAlertRepository(conn *postgres.Connection) AlertRepository {
	return &alertRepository{
		conn: conn,
	}
}

func (r *alertRepository) ReadStates(ctx context.Context, clientID string) (map[string]bool, error) {
	query, args, err := squirrel.
		Select("al.id, al.read").
		From("alerts al").
		Where(squirrel.Eq{"al.client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar alertas")
	}
	defer rows.Close()

	states := make(map[string]bool)
	for rows.Next() {
		var (
			id   string
			read bool
		)
		if err := rows.Scan(&id, &read); err != nil {
			return nil, fmt.Errorf("erro ao escanear alerta: %w", err)
		}
		states[id] = read
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return states, nil
}

func (r *alertRepository) SaveAlert(ctx context.Context, alert domain.Alert) error {
	query, args, err := squirrel.
		Insert("alerts").
		Columns("id", "client_id", "category", "severity", "message", "created_at", "read").
		Values(alert.ID, alert.ClientID, string(alert.Category), string(alert.Severity), alert.Message, alert.CreatedAt, alert.Read).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				severity = EXCLUDED.severity,
				message = EXCLUDED.message,
				read = EXCLUDED.read
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDatabaseError(err, "erro ao salvar alerta")
	}

	return nil
}
