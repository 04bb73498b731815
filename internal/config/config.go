package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	LocalStore  LocalStore  `mapstructure:",squash"`
	Provider    Provider    `mapstructure:",squash"`
	Sheets      Sheets      `mapstructure:",squash"`
	Remote      Remote      `mapstructure:",squash"`
	Hybrid      Hybrid      `mapstructure:",squash"`
	OfflineSync OfflineSync `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type LocalStore struct {
	Path string `mapstructure:"local_store_path"`
}

// Provider define o provedor de dados padrão do ambiente
type Provider struct {
	Default string `mapstructure:"data_provider"`
}

type Sheets struct {
	BaseURL         string        `mapstructure:"sheets_base_url"`
	FeedID          string        `mapstructure:"sheets_feed_id"`
	ClientsTable    string        `mapstructure:"sheets_clients_table"`
	CampaignsTable  string        `mapstructure:"sheets_campaigns_table"`
	MetricsTable    string        `mapstructure:"sheets_metrics_table"`
	RefreshInterval time.Duration `mapstructure:"sheets_refresh_interval"`
	HTTPTimeout     time.Duration `mapstructure:"sheets_http_timeout"`
}

type Remote struct {
	ClientsCacheTTL time.Duration `mapstructure:"remote_clients_cache_ttl"`
}

type Hybrid struct {
	ProbeInterval        time.Duration `mapstructure:"hybrid_probe_interval"`
	MetricsRetentionDays int           `mapstructure:"hybrid_metrics_retention_days"`
}

type OfflineSync struct {
	CronSchedule string `mapstructure:"offline_sync_cron"`
	Enabled      bool   `mapstructure:"offline_sync_enabled"`
}

type Auth struct {
	Secret  string `mapstructure:"auth_secret"`
	Enabled bool   `mapstructure:"auth_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/agency")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("LOCAL_STORE_PATH", "data/local_cache.db")
	viper.SetDefault("DATA_PROVIDER", "hybrid")

	viper.SetDefault("SHEETS_BASE_URL", "https://docs.google.com/spreadsheets/d")
	viper.SetDefault("SHEETS_FEED_ID", "")
	viper.SetDefault("SHEETS_CLIENTS_TABLE", "clients")
	viper.SetDefault("SHEETS_CAMPAIGNS_TABLE", "campaigns")
	viper.SetDefault("SHEETS_METRICS_TABLE", "metrics")
	viper.SetDefault("SHEETS_REFRESH_INTERVAL", "5m")
	viper.SetDefault("SHEETS_HTTP_TIMEOUT", "15s")

	viper.SetDefault("REMOTE_CLIENTS_CACHE_TTL", "5m")

	viper.SetDefault("HYBRID_PROBE_INTERVAL", "30s")
	viper.SetDefault("HYBRID_METRICS_RETENTION_DAYS", 90)

	// Sincronização da fila offline
	viper.SetDefault("OFFLINE_SYNC_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("OFFLINE_SYNC_ENABLED", false)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
