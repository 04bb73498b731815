package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agency-data-api/internal/api/handler"
	"github.com/vfg2006/agency-data-api/internal/config"
	"github.com/vfg2006/agency-data-api/internal/domain"
	"github.com/vfg2006/agency-data-api/internal/usecases/authenticating"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/mocks"
	"github.com/vfg2006/agency-data-api/internal/usecases/providing/synthetic"
	"github.com/vfg2006/agency-data-api/pkg/apiErrors"
	"github.com/vfg2006/agency-data-api/pkg/log"
	"go.uber.org/mock/gomock"
)

const testSecret = "segredo-de-teste"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newSelector(remote providing.DataProvider, envDefault string) *providing.Selector {
	return providing.NewSelector(map[providing.ProviderType]providing.Factory{
		providing.TypeSynthetic: func(context.Context) (providing.DataProvider, error) {
			return synthetic.New(synthetic.WithClock(fixedClock)), nil
		},
		providing.TypeRemote: func(context.Context) (providing.DataProvider, error) {
			return remote, nil
		},
	}, nil, envDefault)
}

func newTestHandler(selector handler.ProviderSelector, authEnabled bool) http.Handler {
	auth := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: testSecret, Enabled: authEnabled}})
	return NewHandler(selector, auth, handler.CronJobServices{})
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestServer_SyntheticRoutes(t *testing.T) {
	h := newTestHandler(newSelector(nil, "synthetic"), false)

	rec := do(t, h, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/clients", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "synthetic", rec.Header().Get("X-Data-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	var clients []domain.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&clients))
	assert.Len(t, clients, 8)

	rec = do(t, h, http.MethodGet, "/v1/clients/cli-002", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var client domain.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&client))
	assert.Equal(t, "Clínica Sorriso", client.Name)

	rec = do(t, h, http.MethodGet, "/v1/clients/inexistente", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrResourceNotFound, decodeError(t, rec).Code)

	rec = do(t, h, http.MethodGet, "/v1/metrics?client_id=cli-001&from=2024-06-10&to=2024-06-15", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []domain.MetricRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.NotEmpty(t, rows)

	rec = do(t, h, http.MethodGet, "/v1/metrics?from=15/06/2024", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)

	// Sintético não tem fila offline
	rec = do(t, h, http.MethodPost, "/v1/sync", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)

	rec = do(t, h, http.MethodGet, "/v1/provider/spreadsheet", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/clients", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/v1/clients/cli-001/optimizations", `{"title":"Novo criativo","status":"em_teste"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var saved domain.Optimization
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&saved))
	assert.Equal(t, "cli-001", saved.ClientID)
	assert.NotEmpty(t, saved.ID)

	rec = do(t, h, http.MethodPut, "/v1/clients/cli-001/optimizations", `{"client_id":"cli-002","title":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "Configuração ausente",
			err:    providing.NewConfigurationError("feed_id", "id da planilha não configurado"),
			status: http.StatusServiceUnavailable,
			code:   apiErrors.ErrMissingConfig,
		},
		{
			name:   "Coluna obrigatória ausente",
			err:    providing.NewValidationError("clients", "status", "coluna obrigatória ausente"),
			status: http.StatusUnprocessableEntity,
			code:   apiErrors.ErrInvalidSourceData,
		},
		{
			name:   "Falha no backend remoto",
			err:    providing.NewRemoteError("list_clients", errors.New("timeout")),
			status: http.StatusBadGateway,
			code:   apiErrors.ErrExternalService,
		},
		{
			name:   "Erro desconhecido",
			err:    errors.New("inesperado"),
			status: http.StatusInternalServerError,
			code:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := mocks.NewMockDataProvider(gomock.NewController(t))
			remote.EXPECT().GetClients(gomock.Any()).Return(providing.Result[[]domain.Client]{}, tt.err)

			h := newTestHandler(newSelector(remote, "remote"), false)
			rec := do(t, h, http.MethodGet, "/v1/clients", "", nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestServer_DegradedResults(t *testing.T) {
	remote := mocks.NewMockDataProvider(gomock.NewController(t))
	h := newTestHandler(newSelector(remote, "remote"), false)

	remote.EXPECT().GetClients(gomock.Any()).Return(providing.Fallback(
		[]domain.Client{{ID: "c1", Name: "Alfa"}}, providing.OriginStale, errors.New("conexão recusada"),
	), nil)

	rec := do(t, h, http.MethodGet, "/v1/clients", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stale", rec.Header().Get("X-Data-Origin"))
	assert.Equal(t, "conexão recusada", rec.Header().Get(handler.WarningHeader))

	remote.EXPECT().AddClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c domain.Client) (providing.Result[domain.Client], error) {
			assert.Equal(t, domain.ClientStatusOnboarding, c.Status)
			return providing.Served(c, providing.OriginQueued), nil
		})

	rec = do(t, h, http.MethodPost, "/v1/clients", `{"id":"novo","name":"Cliente Novo"}`, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "queued", rec.Header().Get("X-Data-Origin"))

	rec = do(t, h, http.MethodPost, "/v1/clients", `{"name":"  "}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
}

func TestServer_Authentication(t *testing.T) {
	h := newTestHandler(newSelector(nil, "synthetic"), true)
	issuer := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: testSecret, Enabled: true}})

	adminToken, err := issuer.GenerateToken(domain.Claims{UserID: "admin", UserRoleID: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	viewerToken, err := issuer.GenerateToken(domain.Claims{UserID: "viewer", UserRoleID: domain.RoleViewer}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		status int
	}{
		{name: "Healthcheck é público", method: http.MethodGet, path: "/healthcheck", status: http.StatusOK},
		{name: "Sem token", method: http.MethodGet, path: "/v1/clients", status: http.StatusUnauthorized},
		{name: "Token inválido", method: http.MethodGet, path: "/v1/clients", token: "abc", status: http.StatusUnauthorized},
		{name: "Leitura com perfil de leitura", method: http.MethodGet, path: "/v1/clients", token: viewerToken, status: http.StatusOK},
		{name: "Troca de provedor sem ser admin", method: http.MethodPut, path: "/v1/provider", body: `{"type":"synthetic"}`, token: viewerToken, status: http.StatusForbidden},
		{name: "Troca de provedor como admin", method: http.MethodPut, path: "/v1/provider", body: `{"type":"synthetic"}`, token: adminToken, status: http.StatusOK},
		{name: "Tipo de provedor inválido", method: http.MethodPut, path: "/v1/provider", body: `{"type":"excel"}`, token: adminToken, status: http.StatusBadRequest},
		{name: "Cron desconhecida", method: http.MethodPost, path: "/v1/cron/desconhecida", token: adminToken, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}

			rec := do(t, h, tt.method, tt.path, tt.body, headers)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
