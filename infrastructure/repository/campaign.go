package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/agency-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

const campaignsTable = "campaigns ca"

type CampaignRepository interface {
	ListCampaigns(ctx context.Context, clientID string, filter domain.CampaignQuery) ([]domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) ListCampaigns(ctx context.Context, clientID string, filter domain.CampaignQuery) ([]domain.Campaign, error) {
	builder := squirrel.
		Select("ca.id, ca.client_id, ca.platform, ca.name, COALESCE(ca.status, ''), COALESCE(ca.objective, ''), ca.last_sync").
		From(campaignsTable).
		Where(squirrel.Eq{"ca.client_id": clientID}).
		OrderBy("ca.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Platform != "" {
		builder = builder.Where(squirrel.Eq{"ca.platform": string(filter.Platform)})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.ILike{"ca.status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar campanhas")
	}
	defer rows.Close()

	campaigns := make([]domain.Campaign, 0)
	for rows.Next() {
		var (
			campaign domain.Campaign
			platform string
			lastSync sql.NullTime
		)

		if err := rows.Scan(
			&campaign.ID,
			&campaign.ClientID,
			&platform,
			&campaign.Name,
			&campaign.Status,
			&campaign.Objective,
			&lastSync,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}

		campaign.Platform = domain.ParsePlatform(platform)
		if lastSync.Valid {
			campaign.LastSync = lastSync.Time.UTC()
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}
