package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/pkg/apiErrors"
)

func ListClients(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		result, err := provider.GetClients(r.Context())
		if err != nil {
			writeProviderError(w, r, err, "Erro ao listar clientes")
			return
		}

		writeResult(w, http.StatusOK, result)
	})
}

func GetClient(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := provider.GetClient(r.Context(), id)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao buscar cliente")
			return
		}

		if result.Data == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Cliente não encontrado", map[string]string{"id": id})
			return
		}

		writeResult(w, http.StatusOK, result)
	})
}

func AddClient(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var client domain.Client
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		client.Name = strings.TrimSpace(client.Name)
		if client.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O nome do cliente é obrigatório", nil)
			return
		}
		if client.Status == "" {
			client.Status = domain.ClientStatusOnboarding
		}

		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		result, err := provider.AddClient(r.Context(), client)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao adicionar cliente")
			return
		}

		status := http.StatusCreated
		if result.Origin == providing.OriginQueued {
			status = http.StatusAccepted
		}

		writeResult(w, status, result)
	})
}

func GetCampaigns(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		query := domain.CampaignQuery{
			Platform: domain.ParsePlatform(r.URL.Query().Get("platform")),
			Status:   r.URL.Query().Get("status"),
		}

		result, err := provider.GetCampaigns(r.Context(), clientID, query)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao listar campanhas")
			return
		}

		writeResult(w, http.StatusOK, result)
	})
}

func GetAlerts(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := provider.GetAlerts(r.Context(), clientID)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao calcular alertas")
			return
		}

		writeResult(w, http.StatusOK, result)
	})
}

// MarkAlertRead só é suportado pelos provedores que persistem o flag de leitura
func MarkAlertRead(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		marker, ok := provider.(providing.AlertMarker)
		if !ok {
			writeProviderError(w, r, unsupported(provider, "mark_alert_read"), "Provedor ativo não persiste alertas")
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		marked, err := marker.MarkAlertRead(r.Context(), id)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao marcar alerta como lido")
			return
		}

		if !marked {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Alerta não está ativo", map[string]string{"id": id})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"id": id, "read": true})
	})
}

func ListOptimizations(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := provider.ListOptimizations(r.Context(), clientID)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao listar otimizações")
			return
		}

		writeResult(w, http.StatusOK, result)
	})
}

func UpsertOptimization(selector ProviderSelector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input domain.Optimization
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if input.ClientID != "" && input.ClientID != clientID {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "client_id difere do cliente da rota", nil)
			return
		}
		input.ClientID = clientID

		if strings.TrimSpace(input.Title) == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O título da otimização é obrigatório", nil)
			return
		}

		provider, ok := activeProvider(w, r, selector)
		if !ok {
			return
		}

		result, err := provider.UpsertOptimization(r.Context(), input)
		if err != nil {
			writeProviderError(w, r, err, "Erro ao salvar otimização")
			return
		}

		status := http.StatusOK
		if result.Origin == providing.OriginQueued {
			status = http.StatusAccepted
		}

		writeResult(w, status, result)
	})
}
