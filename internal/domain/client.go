package domain

import (
	"slices"
	"sort"
	"strings"
	"time"
)

type ClientStatus string

const (
	ClientStatusActive     ClientStatus = "active"
	ClientStatusOnboarding ClientStatus = "onboarding"
	ClientStatusAtRisk     ClientStatus = "at_risk"
	ClientStatusPaused     ClientStatus = "paused"
)

// ParseClientStatus normaliza o status de ciclo de vida vindo de fontes externas
func ParseClientStatus(value string) (ClientStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	switch ClientStatus(normalized) {
	case ClientStatusActive, ClientStatusOnboarding, ClientStatusAtRisk, ClientStatusPaused:
		return ClientStatus(normalized), true
	}

	return ClientStatus(normalized), false
}

// Client representa um cliente da agência
type Client struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Status        ClientStatus `json:"status"`
	Stage         string       `json:"stage"`
	Owner         string       `json:"owner"`
	MonthlyBudget float64      `json:"monthly_budget"`
	SpendToDate   float64      `json:"spend_to_date"`
	LastUpdate    time.Time    `json:"last_update"`
	LogoURL       string       `json:"logo_url,omitempty"`
	Tags          []string     `json:"tags"`
}

// Clone devolve uma cópia que não compartilha as tags com o original
func (c Client) Clone() Client {
	c.Tags = slices.Clone(c.Tags)
	return c
}

func CloneClients(clients []Client) []Client {
	if clients == nil {
		return nil
	}

	out := make([]Client, len(clients))
	for i, c := range clients {
		out[i] = c.Clone()
	}
	return out
}

// SortClientsByName ordena por nome (sem diferenciar maiúsculas), desempatando pelo id
func SortClientsByName(clients []Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		ni, nj := strings.ToLower(clients[i].Name), strings.ToLower(clients[j].Name)
		if ni != nj {
			return ni < nj
		}
		return clients[i].ID < clients[j].ID
	})
}
