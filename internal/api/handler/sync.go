package handler

import (
	"net/http"

	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
)

// RunSync envia a fila offline do provedor ativo e devolve o relatório
func RunSync(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		syncer, ok := provider.(providing.Syncer)
		if !ok {
			writeProviderError(w, r, unsupported(provider, "sync"), "Provedor ativo não possui fila offline")
			return
		}

		report, err := syncer.Sync(r.Context())
		if err != nil {
			writeProviderError(w, r, err, "Erro ao sincronizar fila offline")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

func GetSyncStatus(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		syncer, ok := provider.(providing.Syncer)
		if !ok {
			writeProviderError(w, r, unsupported(provider, "sync_status"), "Provedor ativo não possui fila offline")
			return
		}

		status, err := syncer.Status(r.Context())
		if err != nil {
			writeProviderError(w, r, err, "Erro ao consultar fila offline")
			return
		}

		writeJSON(w, http.StatusOK, status)
	})
}

func RefreshCache(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		refresher, ok := provider.(providing.CacheRefresher)
		if !ok {
			writeProviderError(w, r, unsupported(provider, "refresh_cache"), "Provedor ativo não possui cache")
			return
		}

		if err := refresher.RefreshCache(r.Context()); err != nil {
			writeProviderError(w, r, err, "Erro ao limpar cache")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "Cache limpo com sucesso",
			"provider": provider.Type(),
		})
	})
}
