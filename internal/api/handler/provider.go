package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/spreadsheet"
	"github.com/vfg2006/agency-data-api/pkg/apiErrors"
	"github.com/vfg2006/agency-data-api/pkg/log"
)

type SetProviderRequest struct {
	Type string `json:"type"`
}

type ProviderResponse struct {
	Active   providing.ProviderType `json:"active,omitempty"`
	Resolved providing.ProviderType `json:"resolved"`
}

func GetProvider(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ProviderResponse{
			Active:   selector.ActiveType(),
			Resolved: selector.ResolvedType(r.Context()),
		})
	})
}

// SetProvider persiste a escolha e já constrói a nova instância
func SetProvider(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SetProviderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		providerType, ok := providing.ParseProviderType(req.Type)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de provedor inválido. Valores aceitos: synthetic, spreadsheet, remote, hybrid", nil)
			return
		}

		if err := selector.SetType(r.Context(), providerType); err != nil {
			writeProviderError(w, r, err, "Erro ao trocar provedor de dados")
			return
		}

		if _, err := selector.Provider(r.Context(), providerType); err != nil {
			writeProviderError(w, r, err, "Erro ao construir provedor de dados")
			return
		}

		log.ForContext(r.Context()).WithField("provider", providerType).Info("Provedor de dados alterado")

		writeJSON(w, http.StatusOK, ProviderResponse{
			Active:   selector.ActiveType(),
			Resolved: selector.ResolvedType(r.Context()),
		})
	})
}

// spreadsheetConfigurer é implementado pelo provedor de planilha
type spreadsheetConfigurer interface {
	Config(ctx context.Context) spreadsheet.Config
	SaveConfig(ctx context.Context, cfg spreadsheet.Config) error
}

func spreadsheetProvider(w http.ResponseWriter, r *http.Request, selector ProviderSelector) (spreadsheetConfigurer, bool) {
	provider, ok := activeProvider(w, r, selector)
	if !ok {
		return nil, false
	}

	configurer, ok := provider.(spreadsheetConfigurer)
	if !ok {
		writeProviderError(w, r, unsupported(provider, "spreadsheet_config"), "Provedor ativo não usa planilha")
		return nil, false
	}
	return configurer, true
}

func GetSpreadsheetConfig(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configurer, ok := spreadsheetProvider(w, r, selector)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, configurer.Config(r.Context()))
	})
}

// SetSpreadsheetConfig grava a planilha escolhida; campos vazios seguem o ambiente
func SetSpreadsheetConfig(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cfg spreadsheet.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		configurer, ok := spreadsheetProvider(w, r, selector)
		if !ok {
			return
		}

		if err := configurer.SaveConfig(r.Context(), cfg); err != nil {
			writeProviderError(w, r, err, "Erro ao salvar configuração da planilha")
			return
		}

		writeJSON(w, http.StatusOK, configurer.Config(r.Context()))
	})
}
