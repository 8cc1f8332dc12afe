package ad

import (
	"time"

	"github.com/google/uuid"

	"github.com/adpilot/admanager/internal/domain/campaign"
)

// NewFromCreateRequest builds a draft ad with zeroed metrics. Targeting
// defaults to the same 18-65/no-filter shape campaigns use when omitted.
func NewFromCreateRequest(req CreateAdRequest) Ad {
	now := time.Now().UTC()

	targeting := campaign.TargetAudience{
		AgeRange:  campaign.AgeRange{Min: 18, Max: 65},
		Locations: []string{},
		Interests: []string{},
	}
	if req.Targeting != nil {
		targeting = *req.Targeting
	}

	return Ad{
		ID:         uuid.NewString(),
		Name:       req.Name,
		CampaignID: req.CampaignID,
		Type:       req.Type,
		Content:    req.Content,
		Targeting:  targeting,
		Status:     campaign.StatusDraft,
		Metrics:    Metrics{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
