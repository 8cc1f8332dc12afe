package campaign

import (
	"time"

	"github.com/google/uuid"
)

// NewFromCreateRequest builds a draft campaign from a create request,
// filling in the documented defaults: status draft, age range 18-65 and
// empty location/interest lists when no audience was supplied.
func NewFromCreateRequest(ownerID string, req CreateCampaignRequest) Campaign {
	now := time.Now().UTC()

	audience := TargetAudience{
		AgeRange:  AgeRange{Min: 18, Max: 65},
		Locations: []string{},
		Interests: []string{},
	}
	if req.TargetAudience != nil {
		if req.TargetAudience.AgeRange != (AgeRange{}) {
			audience.AgeRange = req.TargetAudience.AgeRange
		}
		if req.TargetAudience.Locations != nil {
			audience.Locations = req.TargetAudience.Locations
		}
		if req.TargetAudience.Interests != nil {
			audience.Interests = req.TargetAudience.Interests
		}
	}

	creatives := req.Creatives
	if creatives == nil {
		creatives = []Creative{}
	}
	for i := range creatives {
		if creatives[i].CTA == "" {
			creatives[i].CTA = "Learn More"
		}
	}

	return Campaign{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Status:         StatusDraft,
		Budget:         req.Budget,
		StartDate:      req.StartDate.Time(),
		EndDate:        req.EndDate.Time(),
		Platform:       req.Platform,
		Objective:      req.Objective,
		TargetAudience: audience,
		Creatives:      creatives,
		Ads:            []string{},
		CreatedBy:      ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
