package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

// Oito colunas por linha: o lote fica abaixo do limite de variáveis do SQLite
const campaignsBatchSize = 100

// UpsertCampaigns grava as campanhas recebidas sem apagar as demais
func (s *Store) UpsertCampaigns(ctx context.Context, campaigns []domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	cachedAt := toMillis(s.now())

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(campaigns); start += campaignsBatchSize {
			end := min(start+campaignsBatchSize, len(campaigns))

			builder := squirrel.Insert(campaignsTable).
				Columns("id", "client_id", "platform", "name", "status", "objective", "last_sync", "cached_at")

			for _, c := range campaigns[start:end] {
				builder = builder.Values(c.ID, c.ClientID, string(c.Platform), c.Name, c.Status, c.Objective, toMillis(c.LastSync), cachedAt)
			}

			builder = builder.Suffix(`ON CONFLICT(id) DO UPDATE SET
				client_id = excluded.client_id,
				platform = excluded.platform,
				name = excluded.name,
				status = excluded.status,
				objective = excluded.objective,
				last_sync = excluded.last_sync,
				cached_at = excluded.cached_at`)

			if _, err := s.exec(ctx, tx, builder); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) ListCampaigns(ctx context.Context, clientID string, query domain.CampaignQuery) ([]domain.Campaign, error) {
	rows, err := s.query(ctx, squirrel.
		Select("id", "client_id", "platform", "name", "status", "objective", "last_sync").
		From(campaignsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("name"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []domain.Campaign{}
	for rows.Next() {
		var (
			c        domain.Campaign
			platform string
			lastSync int64
		)

		if err := rows.Scan(&c.ID, &c.ClientID, &platform, &c.Name, &c.Status, &c.Objective, &lastSync); err != nil {
			return nil, fmt.Errorf("erro ao ler campanha do cache: %w", err)
		}

		c.Platform = domain.Platform(platform)
		c.LastSync = fromMillis(lastSync)
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.FilterCampaigns(campaigns, clientID, query), nil
}
