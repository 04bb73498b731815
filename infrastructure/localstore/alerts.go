package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

// ReplaceAlerts substitui os alertas de um cliente pelos recém-derivados
func (s *Store) ReplaceAlerts(ctx context.Context, clientID string, alerts []domain.Alert) error {
	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, squirrel.Delete(alertsTable).Where(squirrel.Eq{"client_id": clientID})); err != nil {
			return err
		}

		if len(alerts) == 0 {
			return nil
		}

		cachedAt := toMillis(s.now())
		builder := squirrel.Insert(alertsTable).
			Columns("id", "client_id", "category", "severity", "message", "created_at", "read", "cached_at")

		for _, a := range alerts {
			builder = builder.Values(a.ID, a.ClientID, string(a.Category), string(a.Severity), a.Message, toMillis(a.CreatedAt), a.Read, cachedAt)
		}

		builder = builder.Suffix(`ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id,
			category = excluded.category,
			severity = excluded.severity,
			message = excluded.message,
			created_at = excluded.created_at,
			read = excluded.read,
			cached_at = excluded.cached_at`)

		_, err := s.exec(ctx, tx, builder)
		return err
	})
}

func (s *Store) ListAlerts(ctx context.Context, clientID string) ([]domain.Alert, error) {
	rows, err := s.query(ctx, squirrel.
		Select("id", "client_id", "category", "severity", "message", "created_at", "read").
		From(alertsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC", "id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []domain.Alert{}
	for rows.Next() {
		var (
			a                  domain.Alert
			category, severity string
			createdAt          int64
		)

		if err := rows.Scan(&a.ID, &a.ClientID, &category, &severity, &a.Message, &createdAt, &a.Read); err != nil {
			return nil, fmt.Errorf("erro ao ler alerta do cache: %w", err)
		}

		a.Category = domain.AlertCategory(category)
		a.Severity = domain.AlertSeverity(severity)
		a.CreatedAt = fromMillis(createdAt)
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// MarkAlertRead marca o alerta em cache como lido; retorna false se não existir
func (s *Store) MarkAlertRead(ctx context.Context, id string) (bool, error) {
	result, err := s.exec(ctx, s.conn, squirrel.Update(alertsTable).
		Set("read", true).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}
