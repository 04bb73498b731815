package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

var optimizationColumns = []string{
	"id", "client_id", "title", "type", "objective", "target_metric", "hypothesis", "campaigns",
	"status", "start_date", "review_date", "expected_impact", "result_summary", "created_at",
	"updated_at", "origin",
}

// UpsertOptimization grava a otimização pelo id com a procedência informada
func (s *Store) UpsertOptimization(ctx context.Context, o domain.Optimization, origin Origin) error {
	campaigns, err := encodeList(o.Campaigns)
	if err != nil {
		return fmt.Errorf("erro ao serializar campanhas da otimização %s: %w", o.ID, err)
	}

	var reviewDate sql.NullInt64
	if o.ReviewDate != nil {
		reviewDate = sql.NullInt64{Int64: toMillis(*o.ReviewDate), Valid: true}
	}

	var resultSummary sql.NullString
	if o.ResultSummary != nil {
		resultSummary = sql.NullString{String: *o.ResultSummary, Valid: true}
	}

	builder := squirrel.Insert(optimizationsTable).
		Columns(optimizationColumns...).
		Values(
			o.ID, o.ClientID, o.Title, o.Type, o.Objective, o.TargetMetric, o.Hypothesis, campaigns,
			string(o.Status), toMillis(o.StartDate), reviewDate, o.ExpectedImpact, resultSummary,
			toMillis(o.CreatedAt), toMillis(o.UpdatedAt), string(origin),
		).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id,
			title = excluded.title,
			type = excluded.type,
			objective = excluded.objective,
			target_metric = excluded.target_metric,
			hypothesis = excluded.hypothesis,
			campaigns = excluded.campaigns,
			status = excluded.status,
			start_date = excluded.start_date,
			review_date = excluded.review_date,
			expected_impact = excluded.expected_impact,
			result_summary = excluded.result_summary,
			updated_at = excluded.updated_at,
			origin = excluded.origin`)

	_, err = s.exec(ctx, s.conn, builder)
	return err
}

// ListOptimizations retorna as otimizações do cliente, mais recentes primeiro
func (s *Store) ListOptimizations(ctx context.Context, clientID string) ([]domain.Optimization, error) {
	items, _, err := s.listOptimizations(ctx, squirrel.Eq{"client_id": clientID})
	if err != nil {
		return nil, err
	}

	domain.SortOptimizationsNewestFirst(items)
	return items, nil
}

// ListOfflineOptimizations retorna as otimizações que aguardam envio ao backend
func (s *Store) ListOfflineOptimizations(ctx context.Context) ([]domain.Optimization, error) {
	items, _, err := s.listOptimizations(ctx, squirrel.Eq{"origin": string(OriginOffline)})
	return items, err
}

func (s *Store) DeleteOptimization(ctx context.Context, id string) error {
	_, err := s.exec(ctx, s.conn, squirrel.Delete(optimizationsTable).Where(squirrel.Eq{"id": id}))
	return err
}

func (s *Store) listOptimizations(ctx context.Context, where squirrel.Sqlizer) ([]domain.Optimization, []Origin, error) {
	rows, err := s.query(ctx, squirrel.Select(optimizationColumns...).From(optimizationsTable).Where(where))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	items := []domain.Optimization{}
	origins := []Origin{}

	for rows.Next() {
		var (
			o                    domain.Optimization
			campaigns            string
			status               string
			startDate            int64
			reviewDate           sql.NullInt64
			resultSummary        sql.NullString
			createdAt, updatedAt int64
			origin               string
		)

		if err := rows.Scan(
			&o.ID, &o.ClientID, &o.Title, &o.Type, &o.Objective, &o.TargetMetric, &o.Hypothesis, &campaigns,
			&status, &startDate, &reviewDate, &o.ExpectedImpact, &resultSummary, &createdAt, &updatedAt, &origin,
		); err != nil {
			return nil, nil, fmt.Errorf("erro ao ler otimização do cache: %w", err)
		}

		if o.Campaigns, err = decodeList(campaigns); err != nil {
			return nil, nil, fmt.Errorf("erro ao ler campanhas da otimização %s: %w", o.ID, err)
		}

		o.Status = domain.ParseOptimizationStatus(status)
		o.StartDate = fromMillis(startDate)
		if reviewDate.Valid {
			review := fromMillis(reviewDate.Int64)
			o.ReviewDate = &review
		}
		if resultSummary.Valid {
			summary := resultSummary.String
			o.ResultSummary = &summary
		}
		o.CreatedAt = fromMillis(createdAt)
		o.UpdatedAt = fromMillis(updatedAt)

		items = append(items, o)
		origins = append(origins, Origin(origin))
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return items, origins, nil
}
