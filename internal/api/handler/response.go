package handler

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/pkg/apiErrors"
	"github.com/vfg2006/agency-data-api/pkg/log"
	"github.com/vfg2006/agency-data-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WarningHeader carrega a causa quando os dados vieram de um fallback
const WarningHeader = "X-Data-Warning"

// ProviderSelector resolve o provedor de dados ativo
type ProviderSelector interface {
	Provider(ctx context.Context, explicit providing.ProviderType) (providing.DataProvider, error)
	SetType(ctx context.Context, providerType providing.ProviderType) error
	ActiveType() providing.ProviderType
	ResolvedType(ctx context.Context) providing.ProviderType
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeResult responde com os dados e a procedência no cabeçalho
func writeResult[T any](w http.ResponseWriter, status int, result providing.Result[T]) {
	w.Header().Set(middleware.OriginHeader, string(result.Origin))
	if result.Err != nil {
		w.Header().Set(WarningHeader, result.Err.Error())
	}

	writeJSON(w, status, result.Data)
}

// writeProviderError traduz os erros da camada de dados para os códigos da API
func writeProviderError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log.ForContext(r.Context()).WithError(err).Error(message)

	switch {
	case errors.Is(err, providing.ErrConfiguration):
		apiErrors.WriteError(w, apiErrors.ErrMissingConfig, err.Error(), nil)
	case errors.Is(err, providing.ErrValidation):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSourceData, err.Error(), nil)
	case errors.Is(err, providing.ErrRemote):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, message, nil)
	case errors.Is(err, providing.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, message, nil)
	case errors.Is(err, providing.ErrUnknownProvider), errors.Is(err, providing.ErrUnsupported):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, providing.ErrLocalStore):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, message, nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
	}
}

// activeProvider obtém o provedor ativo ou responde com o erro
func activeProvider(w http.ResponseWriter, r *http.Request, selector ProviderSelector) (providing.DataProvider, bool) {
	provider, err := selector.Provider(r.Context(), "")
	if err != nil {
		writeProviderError(w, r, err, "Erro ao obter provedor de dados")
		return nil, false
	}
	return provider, true
}

func unsupported(provider providing.DataProvider, operation string) error {
	return &providing.ProviderError{
		Kind:      providing.ErrUnsupported,
		Operation: operation,
		Details:   string(provider.Type()),
	}
}
