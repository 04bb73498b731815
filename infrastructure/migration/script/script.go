package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/agency-data-api/internal/config"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/synthetic"
	"github.com/vfg2006/agency-data-api/pkg/log"
)

// schema do backend remoto, na forma que os repositórios esperam
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		stage TEXT,
		owner TEXT,
		monthly_budget NUMERIC(14,2),
		spend_to_date NUMERIC(14,2),
		last_update TIMESTAMPTZ,
		logo_url TEXT,
		tags TEXT[]
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		platform TEXT NOT NULL,
		name TEXT NOT NULL,
		status TEXT,
		objective TEXT,
		last_sync TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS metrics (
		date DATE NOT NULL,
		client_id TEXT NOT NULL REFERENCES clients(id),
		platform TEXT NOT NULL,
		campaign_id TEXT NOT NULL DEFAULT 'all',
		impressions BIGINT,
		clicks BIGINT,
		spend NUMERIC(14,2),
		leads BIGINT,
		revenue NUMERIC(14,2),
		conversions BIGINT,
		cpa NUMERIC(14,2),
		roas NUMERIC(10,2),
		PRIMARY KEY (date, client_id, platform, campaign_id)
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		category TEXT NOT NULL,
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		read BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS optimizations (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		title TEXT NOT NULL,
		type TEXT,
		objective TEXT,
		target_metric TEXT,
		hypothesis TEXT,
		campaigns TEXT[],
		status TEXT NOT NULL,
		start_date DATE NOT NULL,
		review_date DATE,
		expected_impact TEXT,
		result_summary TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_metrics_client_date ON metrics (client_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_optimizations_client ON optimizations (client_id, created_at DESC)`,
}

// seed grava os dados sintéticos; linhas já existentes são mantidas
type seed struct {
	clients       []domain.Client
	campaigns     []domain.Campaign
	metrics       []domain.MetricRow
	optimizations []domain.Optimization
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar conexão com PostgreSQL")
	}
	defer conn.Close()

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Backend remoto indisponível, abortando carga")
	}

	data, err := loadSeed(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar dados sintéticos")
	}

	startTime := time.Now()
	logrus.Info("Iniciando transação...")

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := createSchema(ctx, tx); err != nil {
			return err
		}
		return insertSeed(ctx, tx, data)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Carga inicial revertida")
	}

	logrus.WithFields(logrus.Fields{
		"clients":       len(data.clients),
		"campaigns":     len(data.campaigns),
		"metrics":       len(data.metrics),
		"optimizations": len(data.optimizations),
		"duration":      time.Since(startTime).String(),
	}).Info("Carga inicial concluída")
}

func loadSeed(ctx context.Context) (*seed, error) {
	provider := synthetic.New()

	clients, err := provider.GetClients(ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := provider.GetDailyMetrics(ctx, domain.MetricQuery{})
	if err != nil {
		return nil, err
	}

	data := &seed{clients: clients.Data, metrics: metrics.Data}
	for _, c := range clients.Data {
		campaigns, err := provider.GetCampaigns(ctx, c.ID, domain.CampaignQuery{})
		if err != nil {
			return nil, err
		}
		data.campaigns = append(data.campaigns, campaigns.Data...)

		optimizations, err := provider.ListOptimizations(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		data.optimizations = append(data.optimizations, optimizations.Data...)
	}

	return data, nil
}

func createSchema(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	logrus.WithField("statements", len(schema)).Info("Schema do backend remoto aplicado")
	return nil
}

func insertSeed(ctx context.Context, tx *sql.Tx, data *seed) error {
	clients := squirrel.Insert("clients").
		Columns("id", "name", "status", "stage", "owner", "monthly_budget", "spend_to_date", "last_update", "logo_url", "tags")
	for _, c := range data.clients {
		clients = clients.Values(c.ID, c.Name, string(c.Status), c.Stage, c.Owner, c.MonthlyBudget, c.SpendToDate, c.LastUpdate, c.LogoURL, pq.Array(c.Tags))
	}
	if err := execInsert(ctx, tx, clients, "clients", len(data.clients)); err != nil {
		return err
	}

	campaigns := squirrel.Insert("campaigns").
		Columns("id", "client_id", "platform", "name", "status", "objective", "last_sync")
	for _, c := range data.campaigns {
		campaigns = campaigns.Values(c.ID, c.ClientID, string(c.Platform), c.Name, c.Status, c.Objective, c.LastSync)
	}
	if err := execInsert(ctx, tx, campaigns, "campaigns", len(data.campaigns)); err != nil {
		return err
	}

	for _, batch := range chunk(data.metrics, 500) {
		metrics := squirrel.Insert("metrics").
			Columns("date", "client_id", "platform", "campaign_id", "impressions", "clicks", "spend", "leads", "revenue", "conversions", "cpa", "roas")
		for _, m := range batch {
			metrics = metrics.Values(m.Date.Format(domain.DateLayout), m.ClientID, string(m.Platform), m.CampaignID,
				m.Impressions, m.Clicks, m.Spend, m.Leads, m.Revenue, m.Conversions, m.CPA, m.ROAS)
		}
		if err := execInsert(ctx, tx, metrics, "metrics", len(batch)); err != nil {
			return err
		}
	}

	optimizations := squirrel.Insert("optimizations").
		Columns("id", "client_id", "title", "type", "objective", "target_metric", "hypothesis", "campaigns",
			"status", "start_date", "review_date", "expected_impact", "result_summary", "created_at", "updated_at")
	for _, o := range data.optimizations {
		var reviewDate any
		if o.ReviewDate != nil {
			reviewDate = o.ReviewDate.Format(domain.DateLayout)
		}
		optimizations = optimizations.Values(o.ID, o.ClientID, o.Title, o.Type, o.Objective, o.TargetMetric, o.Hypothesis,
			pq.Array(o.Campaigns), o.Status.ToBackend(), o.StartDate.Format(domain.DateLayout), reviewDate,
			o.ExpectedImpact, o.ResultSummary, o.CreatedAt, o.UpdatedAt)
	}
	return execInsert(ctx, tx, optimizations, "optimizations", len(data.optimizations))
}

func execInsert(ctx context.Context, tx *sql.Tx, builder squirrel.InsertBuilder, table string, count int) error {
	if count == 0 {
		return nil
	}

	query, args, err := builder.
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	inserted, _ := result.RowsAffected()
	logrus.WithFields(logrus.Fields{
		"table":    table,
		"rows":     count,
		"inserted": inserted,
	}).Info("Tabela carregada")

	return nil
}

func chunk[T any](items []T, size int) [][]T {
	var batches [][]T
	for size < len(items) {
		items, batches = items[size:], append(batches, items[:size])
	}
	if len(items) > 0 {
		batches = append(batches, items)
	}
	return batches
}
