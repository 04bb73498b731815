package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/agency-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

const (
	optimizationsTable = "optimizations o"
	optimizationFields = "o.id, o.client_id, o.title, COALESCE(o.type, ''), COALESCE(o.objective, ''), " +
		"COALESCE(o.target_metric, ''), COALESCE(o.hypothesis, ''), COALESCE(o.campaigns, '{}'), o.status, " +
		"o.start_date, o.review_date, COALESCE(o.expected_impact, ''), o.result_summary, o.created_at, o.updated_at"
)

type OptimizationRepository interface {
	ListOptimizations(ctx context.Context, clientID string) ([]domain.Optimization, error)
	// UpsertOptimization cria quando o id está vazio ou é desconhecido, senão substitui o registro
	UpsertOptimization(ctx context.Context, optimization domain.Optimization) (*domain.Optimization, error)
}

type optimizationRepository struct {
	conn *postgres.Connection
}

func NewOptimizationRepository(conn *postgres.Connection) OptimizationRepository {
	return &optimizationRepository{
		conn: conn,
	}
}

func (r *optimizationRepository) ListOptimizations(ctx context.Context, clientID string) ([]domain.Optimization, error) {
	query, args, err := squirrel.
		Select(optimizationFields).
		From(optimizationsTable).
		Where(squirrel.Eq{"o.client_id": clientID}).
		OrderBy("o.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar otimizações")
	}
	defer rows.Close()

	items := make([]domain.Optimization, 0)
	for rows.Next() {
		item, err := r.scanOptimization(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear otimização: %w", err)
		}
		items = append(items, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func (r *optimizationRepository) UpsertOptimization(ctx context.Context, o domain.Optimization) (*domain.Optimization, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	var reviewDate any
	if o.ReviewDate != nil {
		reviewDate = o.ReviewDate.Format(domain.DateLayout)
	}

	query, args, err := squirrel.
		Insert("optimizations").
		Columns("id", "client_id", "title", "type", "objective", "target_metric", "hypothesis", "campaigns",
			"status", "start_date", "review_date", "expected_impact", "result_summary", "created_at", "updated_at").
		Values(
			o.ID,
			o.ClientID,
			o.Title,
			o.Type,
			o.Objective,
			o.TargetMetric,
			o.Hypothesis,
			pq.Array(o.Campaigns),
			o.Status.ToBackend(),
			o.StartDate.Format(domain.DateLayout),
			reviewDate,
			o.ExpectedImpact,
			o.ResultSummary,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				client_id = EXCLUDED.client_id,
				title = EXCLUDED.title,
				type = EXCLUDED.type,
				objective = EXCLUDED.objective,
				target_metric = EXCLUDED.target_metric,
				hypothesis = EXCLUDED.hypothesis,
				campaigns = EXCLUDED.campaigns,
				status = EXCLUDED.status,
				start_date = EXCLUDED.start_date,
				review_date = EXCLUDED.review_date,
				expected_impact = EXCLUDED.expected_impact,
				result_summary = EXCLUDED.result_summary,
				updated_at = EXCLUDED.updated_at
			RETURNING ` + optimizationFields).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	saved, err := r.scanOptimization(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, wrapDatabaseError(err, "erro ao salvar otimização")
	}

	return saved, nil
}

func (r *optimizationRepository) scanOptimization(row scanner) (*domain.Optimization, error) {
	var (
		o             domain.Optimization
		campaigns     pq.StringArray
		status        string
		startDate     sql.NullTime
		reviewDate    sql.NullTime
		resultSummary sql.NullString
	)

	if err := row.Scan(
		&o.ID,
		&o.ClientID,
		&o.Title,
		&o.Type,
		&o.Objective,
		&o.TargetMetric,
		&o.Hypothesis,
		&campaigns,
		&status,
		&startDate,
		&reviewDate,
		&o.ExpectedImpact,
		&resultSummary,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.Campaigns = []string(campaigns)
	if o.Campaigns == nil {
		o.Campaigns = []string{}
	}
	o.Status = domain.OptimizationStatusFromBackend(status)
	if startDate.Valid {
		o.StartDate = startDate.Time.UTC()
	}
	if reviewDate.Valid {
		review := reviewDate.Time.UTC()
		o.ReviewDate = &review
	}
	if resultSummary.Valid {
		summary := resultSummary.String
		o.ResultSummary = &summary
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()

	return &o, nil
}
