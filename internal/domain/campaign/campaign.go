package campaign

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrNotFound = errors.New("campaign not found")

// Campaign statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type TargetAudience struct {
	AgeRange  AgeRange `json:"ageRange"`
	Locations []string `json:"locations"`
	Interests []string `json:"interests"`
}

type Creative struct {
	Headline    string `json:"headline" binding:"required"`
	Description string `json:"description" binding:"required"`
	CTA         string `json:"cta" binding:"omitempty,oneof='Learn More' 'Sign Up' 'Shop Now' 'Download'"`
	ImageURL    string `json:"imageUrl" binding:"required"`
}

type Campaign struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Status         string         `json:"status"`
	Budget         float64        `json:"budget"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	Platform       string         `json:"platform"`
	Objective      string         `json:"objective"`
	TargetAudience TargetAudience `json:"targetAudience"`
	Creatives      []Creative     `json:"creatives"`
	// Ads is a denormalized back-reference kept in sync on ad create and
	// delete. The ad row's own campaign reference stays authoritative.
	Ads       []string  `json:"ads"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCampaignRequest struct {
	Name           string          `json:"name" binding:"required"`
	Objective      string          `json:"objective" binding:"required,oneof=awareness traffic engagement leads sales app_promotion"`
	Platform       string          `json:"platform" binding:"required,oneof=facebook instagram both"`
	Budget         float64         `json:"budget" binding:"required"`
	StartDate      *Date           `json:"startDate" binding:"required"`
	EndDate        *Date           `json:"endDate" binding:"required"`
	Description    string          `json:"description"`
	TargetAudience *TargetAudience `json:"targetAudience"`
	Creatives      []Creative      `json:"creatives" binding:"omitempty,dive"`
}

// UpdateCampaignRequest is a partial update: nil fields keep their stored
// value. Target-audience sub-fields merge individually.
type UpdateCampaignRequest struct {
	Name           string               `json:"name" binding:"omitempty"`
	Objective      string               `json:"objective" binding:"omitempty,oneof=awareness traffic engagement leads sales app_promotion"`
	Platform       string               `json:"platform" binding:"omitempty,oneof=facebook instagram both"`
	Status         string               `json:"status" binding:"omitempty,oneof=draft active paused completed"`
	Budget         *float64             `json:"budget"`
	StartDate      *Date                `json:"startDate"`
	EndDate        *Date                `json:"endDate"`
	Description    *string              `json:"description"`
	TargetAudience *TargetAudiencePatch `json:"targetAudience"`
	Creatives      *[]Creative          `json:"creatives" binding:"omitempty,dive"`
}

type TargetAudiencePatch struct {
	AgeRange  *AgeRange `json:"ageRange"`
	Locations *[]string `json:"locations"`
	Interests *[]string `json:"interests"`
}

// ApplyTo merges the provided fields onto c.
func (r UpdateCampaignRequest) ApplyTo(c *Campaign) {
	if r.Name != "" {
		c.Name = r.Name
	}
	if r.Objective != "" {
		c.Objective = r.Objective
	}
	if r.Platform != "" {
		c.Platform = r.Platform
	}
	if r.Status != "" {
		c.Status = r.Status
	}
	if r.Budget != nil {
		c.Budget = *r.Budget
	}
	if r.StartDate != nil {
		c.StartDate = r.StartDate.Time()
	}
	if r.EndDate != nil {
		c.EndDate = r.EndDate.Time()
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.TargetAudience != nil {
		if r.TargetAudience.AgeRange != nil {
			c.TargetAudience.AgeRange = *r.TargetAudience.AgeRange
		}
		if r.TargetAudience.Locations != nil {
			c.TargetAudience.Locations = *r.TargetAudience.Locations
		}
		if r.TargetAudience.Interests != nil {
			c.TargetAudience.Interests = *r.TargetAudience.Interests
		}
	}
	if r.Creatives != nil {
		c.Creatives = *r.Creatives
	}
}

// ValidationError reports field-level problems found at persistence time.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate enforces the invariants checked on every write: end date
// strictly after start date, positive budget, and an age range inside the
// allowed 13-65 band.
func (c Campaign) Validate() error {
	fields := map[string]string{}

	if c.Budget <= 0 {
		fields["budget"] = "must be greater than 0"
	}
	if !c.EndDate.After(c.StartDate) {
		fields["endDate"] = "must be after start date"
	}
	ar := c.TargetAudience.AgeRange
	if ar.Min < 13 || ar.Min > 65 || ar.Max < 13 || ar.Max > 65 {
		fields["targetAudience.ageRange"] = "ages must be between 13 and 65"
	} else if ar.Min > ar.Max {
		fields["targetAudience.ageRange"] = "min cannot exceed max"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
