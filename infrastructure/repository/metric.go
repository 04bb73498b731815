package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/agency-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

const metricsTable = "metrics m"

type MetricRepository interface {
	ListMetrics(ctx context.Context, filter domain.MetricQuery) ([]domain.MetricRow, error)
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

func (r *metricRepository) ListMetrics(ctx context.Context, filter domain.MetricQuery) ([]domain.MetricRow, error) {
	builder := squirrel.
		Select("m.date, m.client_id, m.platform, COALESCE(m.campaign_id, 'all'), " +
			"COALESCE(m.impressions, 0), COALESCE(m.clicks, 0), COALESCE(m.spend, 0), COALESCE(m.leads, 0), " +
			"COALESCE(m.revenue, 0), COALESCE(m.conversions, 0), COALESCE(m.cpa, 0), COALESCE(m.roas, 0)").
		From(metricsTable).
		OrderBy("m.date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ClientID != "" {
		builder = builder.Where(squirrel.Eq{"m.client_id": filter.ClientID})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"m.date": filter.From.Format(domain.DateLayout)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"m.date": filter.To.Format(domain.DateLayout)})
	}
	if filter.Platform != "" {
		builder = builder.Where(squirrel.Eq{"m.platform": string(filter.Platform)})
	}
	if filter.CampaignID != "" {
		builder = builder.Where(squirrel.Eq{"COALESCE(m.campaign_id, 'all')": filter.CampaignID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar métricas")
	}
	defer rows.Close()

	metrics := make([]domain.MetricRow, 0)
	for rows.Next() {
		var (
			row      domain.MetricRow
			date     time.Time
			platform string
		)

		if err := rows.Scan(
			&date,
			&row.ClientID,
			&platform,
			&row.CampaignID,
			&row.Impressions,
			&row.Clicks,
			&row.Spend,
			&row.Leads,
			&row.Revenue,
			&row.Conversions,
			&row.CPA,
			&row.ROAS,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica: %w", err)
		}

		row.Date = date
		row.Platform = domain.ParsePlatform(platform)
		metrics = append(metrics, row.Derive())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return domain.DedupeMetrics(metrics), nil
}
