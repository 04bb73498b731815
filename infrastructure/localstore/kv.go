package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// GetValue decodifica em dest o valor guardado na chave; false quando a chave não existe
func (s *Store) GetValue(ctx context.Context, key string, dest any) (bool, error) {
	query, args, err := squirrel.Select("value").From(kvTable).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var raw string
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("erro ao ler chave %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("valor inválido na chave %s: %w", key, err)
	}

	return true, nil
}

// SetValue serializa value em JSON e grava na chave
func (s *Store) SetValue(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("erro ao serializar valor da chave %s: %w", key, err)
	}

	_, err = s.exec(ctx, s.conn, squirrel.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(data), toMillis(s.now())).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"))
	return err
}

func (s *Store) DeleteValue(ctx context.Context, key string) error {
	_, err := s.exec(ctx, s.conn, squirrel.Delete(kvTable).Where(squirrel.Eq{"key": key}))
	return err
}
