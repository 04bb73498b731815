package domain

import (
	"strings"
	"time"
)

type Platform string

const (
	PlatformMeta     Platform = "meta"
	PlatformGoogle   Platform = "google"
	PlatformTikTok   Platform = "tiktok"
	PlatformLinkedIn Platform = "linkedin"
	PlatformOther    Platform = "other"
)

var platformAliases = map[string]Platform{
	"meta":       PlatformMeta,
	"meta_ads":   PlatformMeta,
	"facebook":   PlatformMeta,
	"instagram":  PlatformMeta,
	"google":     PlatformGoogle,
	"google_ads": PlatformGoogle,
	"youtube":    PlatformGoogle,
	"tiktok":     PlatformTikTok,
	"tiktok_ads": PlatformTikTok,
	"linkedin":   PlatformLinkedIn,
	"other":      PlatformOther,
}

// ParsePlatform converte o nome da plataforma para o enum interno.
// Valores desconhecidos viram PlatformOther.
func ParsePlatform(value string) Platform {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if normalized == "" {
		return ""
	}

	if platform, ok := platformAliases[normalized]; ok {
		return platform
	}
	return PlatformOther
}

// Campaign pertence a exatamente um cliente
type Campaign struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Platform  Platform  `json:"platform"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Objective string    `json:"objective,omitempty"`
	LastSync  time.Time `json:"last_sync"`
}

// CampaignQuery filtra campanhas de um cliente; campos vazios não restringem
type CampaignQuery struct {
	Platform Platform `json:"platform,omitempty"`
	Status   string   `json:"status,omitempty"`
}

func (q CampaignQuery) Matches(c Campaign) bool {
	if q.Platform != "" && c.Platform != q.Platform {
		return false
	}
	if q.Status != "" && !strings.EqualFold(c.Status, q.Status) {
		return false
	}
	return true
}

// FilterCampaigns devolve as campanhas do cliente que atendem à query
func FilterCampaigns(campaigns []Campaign, clientID string, query CampaignQuery) []Campaign {
	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.ClientID != clientID || !query.Matches(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}
