package handler

import (
	"net/http"

	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/pkg/apiErrors"
	"github.com/vfg2006/agency-data-api/pkg/utils"
)

// GetDailyMetrics aceita client_id, platform, campaign_id, from e to (2006-01-02, inclusivos)
func GetDailyMetrics(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		from, err := utils.ParseDate(params.Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use AAAA-MM-DD", nil)
			return
		}

		to, err := utils.ParseDate(params.Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use AAAA-MM-DD", nil)
			return
		}

		query := domain.MetricQuery{
			ClientID:   params.Get("client_id"),
			Platform:   domain.ParsePlatform(params.Get("platform")),
			CampaignID: params.Get("campaign_id"),
			From:       from,
			To:         to,
		}

		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		result, err := provider.GetDailyMetrics(r.Context(), query)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao buscar métricas")
			return
		}

		writeResult(w, http.StatusOK, result)
	})
}
