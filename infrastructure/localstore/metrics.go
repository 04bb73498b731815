package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

// Lotes pequenos para não estourar o limite de variáveis por statement do SQLite
const metricsBatchSize = 200

// UpsertMetrics grava as linhas pela chave composta (data, cliente, plataforma, campanha)
func (s *Store) UpsertMetrics(ctx context.Context, rows []domain.MetricRow) error {
	if len(rows) == 0 {
		return nil
	}

	rows = domain.DedupeMetrics(rows)
	cachedAt := toMillis(s.now())

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(rows); start += metricsBatchSize {
			end := min(start+metricsBatchSize, len(rows))

			builder := squirrel.Insert(metricsTable).Columns(
				"date", "client_id", "platform", "campaign_id", "impressions", "clicks", "spend",
				"leads", "revenue", "conversions", "cpa", "roas", "ctr", "conv_rate", "cached_at",
			)

			for _, row := range rows[start:end] {
				key := row.Key()
				builder = builder.Values(
					key.Date, key.ClientID, string(key.Platform), key.CampaignID,
					row.Impressions, row.Clicks, row.Spend, row.Leads, row.Revenue, row.Conversions,
					row.CPA, row.ROAS, row.CTR, row.ConvRate, cachedAt,
				)
			}

			builder = builder.Suffix(`ON CONFLICT(date, client_id, platform, campaign_id) DO UPDATE SET
				impressions = excluded.impressions,
				clicks = excluded.clicks,
				spend = excluded.spend,
				leads = excluded.leads,
				revenue = excluded.revenue,
				conversions = excluded.conversions,
				cpa = excluded.cpa,
				roas = excluded.roas,
				ctr = excluded.ctr,
				conv_rate = excluded.conv_rate,
				cached_at = excluded.cached_at`)

			if _, err := s.exec(ctx, tx, builder); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListMetrics lê o cache e aplica em memória os mesmos predicados da consulta remota
func (s *Store) ListMetrics(ctx context.Context, query domain.MetricQuery) ([]domain.MetricRow, error) {
	builder := squirrel.
		Select("date", "client_id", "platform", "campaign_id", "impressions", "clicks", "spend",
			"leads", "revenue", "conversions", "cpa", "roas", "ctr", "conv_rate").
		From(metricsTable).
		OrderBy("date", "client_id", "platform", "campaign_id")

	if query.ClientID != "" {
		builder = builder.Where(squirrel.Eq{"client_id": query.ClientID})
	}

	rows, err := s.query(ctx, builder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []domain.MetricRow{}
	for rows.Next() {
		var (
			m        domain.MetricRow
			date     string
			platform string
		)

		if err := rows.Scan(
			&date, &m.ClientID, &platform, &m.CampaignID, &m.Impressions, &m.Clicks, &m.Spend,
			&m.Leads, &m.Revenue, &m.Conversions, &m.CPA, &m.ROAS, &m.CTR, &m.ConvRate,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler métrica do cache: %w", err)
		}

		if m.Date, err = time.Parse(domain.DateLayout, date); err != nil {
			return nil, fmt.Errorf("data inválida no cache de métricas: %w", err)
		}
		m.Platform = domain.Platform(platform)

		metrics = append(metrics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.FilterMetrics(metrics, query), nil
}

// PruneMetrics remove as linhas com data anterior a cutoff
func (s *Store) PruneMetrics(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.exec(ctx, s.conn, squirrel.Delete(metricsTable).
		Where(squirrel.Lt{"date": domain.DateOnly(cutoff).Format(domain.DateLayout)}))
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
