package log

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

type contextKey string

// CorrelationIDKey guarda no contexto o id que liga os logs de uma requisição
const CorrelationIDKey contextKey = "correlation_id"

const correlationIDField = "correlation_id"

// IsDevelopment é verdadeiro quando APP_ENV está vazio ou aponta para dev
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// Configure ajusta o logger global: texto com timestamp RFC3339 e o nível
// informado. Um nível inválido cai para info com um aviso.
func Configure(level string) {
	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
	if IsDevelopment() {
		formatter = &relevantFieldsFormatter{next: formatter}
	}
	logrus.SetFormatter(formatter)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("LOG_LEVEL inválido, usando info")
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// SetupTestLogger deixa a saída curta e em nível debug
func SetupTestLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetReportCaller(false)
}

// relevantFields sobrevivem ao filtro de desenvolvimento
var relevantFields = map[string]struct{}{
	correlationIDField: {},
	logrus.ErrorKey:    {},
	"method":           {},
	"path":             {},
	"status_code":      {},
	"duration_ms":      {},
	"provider":         {},
	"operation":        {},
	"origin":           {},
	"client_id":        {},
	"table":            {},
}

func isRelevant(key string) bool {
	if _, ok := relevantFields[key]; ok {
		return true
	}
	return strings.HasPrefix(key, "user_") || strings.HasPrefix(key, "sync_")
}

// relevantFieldsFormatter descarta os campos ruidosos antes de formatar
type relevantFieldsFormatter struct {
	next logrus.Formatter
}

func (f *relevantFieldsFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	filtered := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		if isRelevant(k) {
			filtered[k] = v
		}
	}

	clone := *entry
	clone.Data = filtered
	return f.next.Format(&clone)
}

// WithCorrelationID gera um id novo e o coloca no contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext retorna uma entrada do logger global com o id de correlação, se houver
func ForContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return entry.WithField(correlationIDField, correlationID)
	}
	return entry
}
