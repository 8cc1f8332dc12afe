// Package wizard implements the four-step campaign creation flow:
// objective, targeting, budget, creatives. Each step merges its inputs
// into a shared draft; a step's guard must pass before the flow advances,
// and the final step submits the accumulated draft as one create call.
package wizard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adpilot/admanager/internal/domain/campaign"
)

type Step string

const (
	StepObjective Step = "objective"
	StepTargeting Step = "targeting"
	StepBudget    Step = "budget"
	StepCreatives Step = "creatives"
)

var order = []Step{StepObjective, StepTargeting, StepBudget, StepCreatives}

// StepError is a failed transition guard: the wizard stays on Step and the
// UI renders Fields inline.
type StepError struct {
	Step   Step
	Fields map[string]string
}

func (e *StepError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("step %s: %s", e.Step, strings.Join(parts, "; "))
}

// Draft is the ephemeral accumulation of the four steps. It lives only in
// client memory; nothing is persisted until the final submit.
type Draft struct {
	Name           string
	Objective      string
	Platform       string
	Description    string
	Budget         float64
	StartDate      time.Time
	EndDate        time.Time
	TargetAudience campaign.TargetAudience
	Creatives      []campaign.Creative
}

type ObjectiveData struct {
	Name      string
	Objective string
	// Platform is chosen alongside the objective; empty keeps the
	// current value.
	Platform    string
	Description string
}

type TargetingData struct {
	AgeRange  *campaign.AgeRange
	Locations []string
	Interests []string
}

type BudgetData struct {
	Budget    float64
	StartDate time.Time
	EndDate   time.Time
}

// CampaignCreator is the submit dependency; the api client satisfies it.
type CampaignCreator interface {
	CreateCampaign(ctx context.Context, req campaign.CreateCampaignRequest) (campaign.Campaign, error)
}

type Wizard struct {
	step    Step
	draft   Draft
	creator CampaignCreator
	lastErr error
}

// New starts a wizard at the objective step with an empty draft. Platform
// defaults to "both" and the age range to the documented 18-65.
func New(creator CampaignCreator) *Wizard {
	return &Wizard{
		step:    StepObjective,
		creator: creator,
		draft: Draft{
			Platform: "both",
			TargetAudience: campaign.TargetAudience{
				AgeRange:  campaign.AgeRange{Min: 18, Max: 65},
				Locations: []string{},
				Interests: []string{},
			},
			Creatives: []campaign.Creative{},
		},
	}
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Draft() Draft {
	return w.draft
}

// Err returns the error surfaced by the last failed Next, if any.
func (w *Wizard) Err() error {
	return w.lastErr
}

// Each update merges into the shared draft without clearing fields owned
// by other steps.

func (w *Wizard) UpdateObjective(data ObjectiveData) {
	w.draft.Name = data.Name
	w.draft.Objective = data.Objective
	if data.Platform != "" {
		w.draft.Platform = data.Platform
	}
	if data.Description != "" {
		w.draft.Description = data.Description
	}
}

func (w *Wizard) UpdateTargeting(data TargetingData) {
	if data.AgeRange != nil {
		w.draft.TargetAudience.AgeRange = *data.AgeRange
	}
	if data.Locations != nil {
		w.draft.TargetAudience.Locations = data.Locations
	}
	if data.Interests != nil {
		w.draft.TargetAudience.Interests = data.Interests
	}
}

func (w *Wizard) UpdateBudget(data BudgetData) {
	w.draft.Budget = data.Budget
	if !data.StartDate.IsZero() {
		w.draft.StartDate = data.StartDate
	}
	if !data.EndDate.IsZero() {
		w.draft.EndDate = data.EndDate
	}
}

func (w *Wizard) UpdateCreatives(creatives []campaign.Creative) {
	w.draft.Creatives = creatives
}

// Back moves to the immediately preceding step; it is a no-op on the first
// step and never runs a guard.
func (w *Wizard) Back() {
	for i, s := range order {
		if s == w.step && i > 0 {
			w.step = order[i-1]
			return
		}
	}
}

// Next validates the current step's guard and advances. From the final
// step it submits the draft instead; done is true only after a successful
// submit, at which point the caller leaves the wizard. On any failure the
// step does not change and the error is retained for display.
func (w *Wizard) Next(ctx context.Context) (done bool, err error) {
	if err := w.guard(); err != nil {
		w.lastErr = err
		return false, err
	}

	if w.step == StepCreatives {
		if _, err := w.creator.CreateCampaign(ctx, w.buildRequest()); err != nil {
			w.lastErr = err
			return false, err
		}
		w.lastErr = nil
		return true, nil
	}

	for i, s := range order {
		if s == w.step {
			w.step = order[i+1]
			break
		}
	}
	w.lastErr = nil
	return false, nil
}

func (w *Wizard) guard() error {
	fields := map[string]string{}

	switch w.step {
	case StepObjective:
		if strings.TrimSpace(w.draft.Name) == "" {
			fields["name"] = "is required"
		}
		if w.draft.Objective == "" {
			fields["objective"] = "is required"
		}
	case StepTargeting:
		if len(w.draft.TargetAudience.Locations) == 0 {
			fields["locations"] = "select at least one location"
		}
	case StepBudget:
		if w.draft.Budget <= 0 {
			fields["budget"] = "must be greater than 0"
		}
	case StepCreatives:
		if len(w.draft.Creatives) == 0 {
			fields["creatives"] = "add at least one creative"
		}
	}

	if len(fields) > 0 {
		return &StepError{Step: w.step, Fields: fields}
	}
	return nil
}

func (w *Wizard) buildRequest() campaign.CreateCampaignRequest {
	audience := w.draft.TargetAudience
	return campaign.CreateCampaignRequest{
		Name:           w.draft.Name,
		Objective:      w.draft.Objective,
		Platform:       w.draft.Platform,
		Budget:         w.draft.Budget,
		StartDate:      campaign.NewDate(w.draft.StartDate),
		EndDate:        campaign.NewDate(w.draft.EndDate),
		Description:    w.draft.Description,
		TargetAudience: &audience,
		Creatives:      w.draft.Creatives,
	}
}
