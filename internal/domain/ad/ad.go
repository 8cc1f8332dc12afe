package ad

import (
	"errors"
	"time"

	"github.com/adpilot/admanager/internal/domain/campaign"
)

var (
	ErrNotFound = errors.New("ad not found")
	// ErrForbidden means the ad exists but belongs to another user's
	// campaign. Unlike campaign lookups, ad lookups can distinguish the
	// two because ownership is derived from the parent campaign.
	ErrForbidden = errors.New("not authorized to access this ad")
)

type Content struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Media        []string `json:"media" binding:"required,min=1"`
	CallToAction string   `json:"callToAction" binding:"required,oneof=learn_more shop_now sign_up contact_us download"`
}

type Metrics struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Spend       float64 `json:"spend"`
	Conversions int64   `json:"conversions"`
}

type Ad struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	CampaignID string                  `json:"campaign"`
	Type       string                  `json:"type"`
	Content    Content                 `json:"content"`
	Targeting  campaign.TargetAudience `json:"targeting"`
	Status     string                  `json:"status"`
	Metrics    Metrics                 `json:"metrics"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

type CreateAdRequest struct {
	CampaignID string                   `json:"campaignId" binding:"required,uuid"`
	Name       string                   `json:"name" binding:"required"`
	Type       string                   `json:"type" binding:"required,oneof=image video carousel story"`
	Content    Content                  `json:"content" binding:"required"`
	Targeting  *campaign.TargetAudience `json:"targeting"`
}

// UpdateAdRequest is a partial update: zero/nil fields keep their stored
// value.
type UpdateAdRequest struct {
	Name      string                   `json:"name" binding:"omitempty"`
	Type      string                   `json:"type" binding:"omitempty,oneof=image video carousel story"`
	Status    string                   `json:"status" binding:"omitempty,oneof=draft active paused completed"`
	Content   *Content                 `json:"content"`
	Targeting *campaign.TargetAudience `json:"targeting"`
}

// ApplyTo merges the provided fields onto a.
func (r UpdateAdRequest) ApplyTo(a *Ad) {
	if r.Name != "" {
		a.Name = r.Name
	}
	if r.Type != "" {
		a.Type = r.Type
	}
	if r.Status != "" {
		a.Status = r.Status
	}
	if r.Content != nil {
		a.Content = *r.Content
	}
	if r.Targeting != nil {
		a.Targeting = *r.Targeting
	}
}
