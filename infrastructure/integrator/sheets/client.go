package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/pkg/utils"
)

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

type Client interface {
	// FetchTable baixa uma aba da planilha publicada pelo endpoint gviz
	FetchTable(ctx context.Context, feedID, table string) (*Table, error)
}

type SheetsClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &SheetsClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *SheetsClient) tableURL(feedID, table string) string {
	params := url.Values{}
	params.Add("tqx", "out:json")
	params.Add("sheet", table)

	return fmt.Sprintf("%s/%s/gviz/tq?%s", c.baseURL, url.PathEscape(feedID), params.Encode())
}

func (c *SheetsClient) FetchTable(ctx context.Context, feedID, table string) (*Table, error) {
	body, err := utils.MakeRequest(ctx, c.httpClient, c.tableURL(feedID, table))
	if err != nil {
		logrus.WithError(err).WithField("table", table).Error("Erro ao buscar aba da planilha")
		return nil, err
	}

	result, err := ParseResponse(body)
	if err != nil {
		logrus.WithError(err).WithField("table", table).Error("Erro ao interpretar resposta da planilha")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"table": table,
		"rows":  len(result.Rows),
	}).Debug("Aba da planilha carregada")

	return result, nil
}
