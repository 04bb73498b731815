package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agency_data"

// Resultados de consulta ao cache
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStale = "stale"
)

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Consultas ao cache por provedor, tabela e resultado.",
	}, []string{"provider", "table", "result"})

	servedOrigins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "served_total",
		Help:      "Respostas entregues por provedor, operação e origem do dado.",
	}, []string{"provider", "operation", "origin"})

	remoteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_errors_total",
		Help:      "Falhas em chamadas ao backend remoto.",
	}, []string{"provider", "operation"})

	online = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "online",
		Help:      "1 quando a última verificação de conectividade indicou online.",
	})

	syncItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_items_total",
		Help:      "Itens da fila offline enviados ou com falha.",
	}, []string{"table", "result"})

	syncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Execuções de sincronização por resultado.",
	}, []string{"result"})

	pending = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "offline_queue_size",
		Help:      "Registros gravados offline aguardando sincronização.",
	}, []string{"table"})

	prunedMetrics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pruned_metric_rows_total",
		Help:      "Linhas de métricas removidas do cache local pela retenção.",
	})
)

func CacheLookup(provider, table, result string) {
	cacheLookups.WithLabelValues(provider, table, result).Inc()
}

func Served(provider, operation, origin string) {
	servedOrigins.WithLabelValues(provider, operation, origin).Inc()
}

func RemoteError(provider, operation string) {
	remoteErrors.WithLabelValues(provider, operation).Inc()
}

func SetOnline(value bool) {
	if value {
		online.Set(1)
		return
	}
	online.Set(0)
}

func SyncItem(table string, ok bool) {
	result := "pushed"
	if !ok {
		result = "failed"
	}
	syncItems.WithLabelValues(table, result).Inc()
}

func SyncRun(result string) {
	syncRuns.WithLabelValues(result).Inc()
}

func SetPending(table string, count int) {
	pending.WithLabelValues(table).Set(float64(count))
}

func MetricsPruned(count int64) {
	prunedMetrics.Add(float64(count))
}

// Handler expõe as métricas no formato do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
