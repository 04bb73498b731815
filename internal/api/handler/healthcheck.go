package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/agency-data-api/internal/telemetry"
)

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

// MetricsHandler expõe as métricas do processo no formato do Prometheus
func MetricsHandler() http.Handler {
	return telemetry.Handler()
}
