package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/agency-data-api/infrastructure/database/sqlite"
	"github.com/vfg2006/agency-data-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/agency-data-api/infrastructure/localstore"
	"github.com/vfg2006/agency-data-api/infrastructure/repository"
	"github.com/vfg2006/agency-data-api/internal/api"
	"github.com/vfg2006/agency-data-api/internal/config"
	"github.com/vfg2006/agency-data-api/internal/scheduler"
	"github.com/vfg2006/agency-data-api/internal/telemetry"
	"github.com/vfg2006/agency-data-api/internal/usecases/authenticating"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/hybrid"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/remote"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/spreadsheet"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/synthetic"
	"github.com/vfg2006/agency-data-api/pkg/connectivity"
	"github.com/vfg2006/agency-data-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sqliteConn := localConn(ctx, cfg.LocalStore)
	defer sqliteConn.Close()

	store := localstore.New(sqliteConn)

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	repos := remote.Repositories{
		Clients:       repository.NewClientRepository(pgConn),
		Campaigns:     repository.NewCampaignRepository(pgConn),
		Metrics:       repository.NewMetricRepository(pgConn),
		Alerts:        repository.NewAlertRepository(pgConn),
		Optimizations: repository.NewOptimizationRepository(pgConn),
	}

	sheetsClient := sheets.NewClient(cfg.Sheets.BaseURL, cfg.Sheets.HTTPTimeout)
	sheetDefaults := spreadsheet.Config{
		FeedID:          cfg.Sheets.FeedID,
		ClientsTable:    cfg.Sheets.ClientsTable,
		CampaignsTable:  cfg.Sheets.CampaignsTable,
		MetricsTable:    cfg.Sheets.MetricsTable,
		RefreshInterval: cfg.Sheets.RefreshInterval,
	}

	factories := map[providing.ProviderType]providing.Factory{
		providing.TypeSynthetic: func(context.Context) (providing.DataProvider, error) {
			return synthetic.New(), nil
		},
		providing.TypeSpreadsheet: func(context.Context) (providing.DataProvider, error) {
			return spreadsheet.New(sheetsClient, store, sheetDefaults, time.Now), nil
		},
		providing.TypeRemote: func(context.Context) (providing.DataProvider, error) {
			return remote.New(repos, cfg.Remote.ClientsCacheTTL, time.Now), nil
		},
		providing.TypeHybrid: func(context.Context) (providing.DataProvider, error) {
			remoteProvider := remote.New(repos, cfg.Remote.ClientsCacheTTL, time.Now)
			probe := connectivity.NewProbe(
				remoteProvider.Ping,
				connectivity.WithInterval(cfg.Hybrid.ProbeInterval),
				connectivity.WithOnChange(telemetry.SetOnline),
			)

			return hybrid.New(
				remoteProvider,
				store,
				hybrid.WithProbe(probe),
				hybrid.WithRetentionDays(cfg.Hybrid.MetricsRetentionDays),
			), nil
		},
	}

	selector := providing.NewSelector(factories, store, cfg.Provider.Default)
	if _, err := selector.Provider(ctx, ""); err != nil {
		logrus.WithError(err).Error("Erro ao inicializar o provedor de dados")
	}

	authenticator := authenticating.NewService(cfg)
	if !authenticator.Enabled() {
		logrus.Warn("Autenticação desabilitada, todas as requisições usam o perfil local")
	}

	offlineSyncService := scheduler.NewOfflineSyncService(selector, cfg)
	if err := offlineSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização da fila offline")
	} else {
		logrus.Info("Agendador de sincronização da fila offline iniciado com sucesso")
	}

	server, err := api.New(cfg, selector, authenticator, offlineSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource permite encontrar o .env ao rodar com go run
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))
}

// localConn abre o SQLite local; sem ele nenhum provedor funciona
func localConn(ctx context.Context, cfg config.LocalStore) *sqlite.Connection {
	conn, err := sqlite.Open(ctx, cfg.Path)
	if err != nil {
		logrus.WithError(err).WithField("path", cfg.Path).Fatal("Erro ao abrir o armazenamento local")
	}

	logrus.WithField("path", conn.Path()).Info("Armazenamento local pronto")
	return conn
}

// pgconn cria o pool do backend remoto; a indisponibilidade não impede a inicialização
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar conexão com PostgreSQL")
	}

	return conn
}
