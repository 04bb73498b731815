package domain

import (
	"time"
)

// AllCampaigns identifica a linha agregada do cliente/plataforma sem campanha específica
const AllCampaigns = "all"

const DateLayout = "2006-01-02"

// MetricRow é um fato diário identificado por (data, cliente, plataforma, campanha)
type MetricRow struct {
	Date        time.Time `json:"date"`
	ClientID    string    `json:"client_id"`
	Platform    Platform  `json:"platform"`
	CampaignID  string    `json:"campaign_id"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
	Leads       int64     `json:"leads"`
	Revenue     float64   `json:"revenue"`
	Conversions int64     `json:"conversions"`
	CPA         float64   `json:"cpa"`
	ROAS        float64   `json:"roas"`
	CTR         float64   `json:"ctr"`
	ConvRate    float64   `json:"conv_rate"`
}

type MetricKey struct {
	Date       string
	ClientID   string
	Platform   Platform
	CampaignID string
}

func (m MetricRow) Key() MetricKey {
	campaignID := m.CampaignID
	if campaignID == "" {
		campaignID = AllCampaigns
	}

	return MetricKey{
		Date:       m.Date.Format(DateLayout),
		ClientID:   m.ClientID,
		Platform:   m.Platform,
		CampaignID: campaignID,
	}
}

// Derive normaliza a linha: data sem horário, campanha "all" quando ausente
// e razões calculadas quando a fonte não as informou
func (m MetricRow) Derive() MetricRow {
	m.Date = DateOnly(m.Date)
	if m.CampaignID == "" {
		m.CampaignID = AllCampaigns
	}

	if m.CPA == 0 {
		m.CPA = safeDiv(m.Spend, float64(m.Leads))
	}
	if m.ROAS == 0 {
		m.ROAS = safeDiv(m.Revenue, m.Spend)
	}
	if m.CTR == 0 {
		m.CTR = safeDiv(float64(m.Clicks), float64(m.Impressions)) * 100
	}
	if m.ConvRate == 0 {
		m.ConvRate = safeDiv(float64(m.Leads), float64(m.Clicks)) * 100
	}

	return m
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// DedupeMetrics mantém uma linha por chave composta; a última ocorrência vence
// e a ordem da primeira ocorrência é preservada
func DedupeMetrics(rows []MetricRow) []MetricRow {
	index := make(map[MetricKey]int, len(rows))
	out := make([]MetricRow, 0, len(rows))

	for _, row := range rows {
		key := row.Key()
		if i, ok := index[key]; ok {
			out[i] = row
			continue
		}
		index[key] = len(out)
		out = append(out, row)
	}

	return out
}

// MetricQuery filtra linhas de métricas; predicados vazios não restringem e as datas são inclusivas
type MetricQuery struct {
	ClientID   string     `json:"client_id,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	Platform   Platform   `json:"platform,omitempty"`
	CampaignID string     `json:"campaign_id,omitempty"`
}

func (q MetricQuery) Matches(row MetricRow) bool {
	if q.ClientID != "" && row.ClientID != q.ClientID {
		return false
	}
	if q.Platform != "" && row.Platform != q.Platform {
		return false
	}
	if q.CampaignID != "" && row.Key().CampaignID != q.CampaignID {
		return false
	}

	day := DateOnly(row.Date)
	if q.From != nil && day.Before(DateOnly(*q.From)) {
		return false
	}
	if q.To != nil && day.After(DateOnly(*q.To)) {
		return false
	}

	return true
}

func FilterMetrics(rows []MetricRow, query MetricQuery) []MetricRow {
	out := make([]MetricRow, 0, len(rows))
	for _, row := range rows {
		if query.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// DateOnly descarta o horário mantendo o dia do calendário em que o instante foi registrado
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
