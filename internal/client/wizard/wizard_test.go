package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adpilot/admanager/internal/domain/campaign"
)

type fakeCreator struct {
	err   error
	calls int
	got   campaign.CreateCampaignRequest
}

func (f *fakeCreator) CreateCampaign(_ context.Context, req campaign.CreateCampaignRequest) (campaign.Campaign, error) {
	f.calls++
	f.got = req
	if f.err != nil {
		return campaign.Campaign{}, f.err
	}
	return campaign.Campaign{ID: "c1", Name: req.Name}, nil
}

func fillObjective(w *Wizard) {
	w.UpdateObjective(ObjectiveData{Name: "Summer Sale", Objective: "sales"})
}

func fillTargeting(w *Wizard) {
	w.UpdateTargeting(TargetingData{Locations: []string{"US"}})
}

func fillBudget(w *Wizard) {
	w.UpdateBudget(BudgetData{
		Budget:    250,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
}

func fillCreatives(w *Wizard) {
	w.UpdateCreatives([]campaign.Creative{
		{Headline: "Huge savings", Description: "Act fast", ImageURL: "https://img/1.png"},
	})
}

func TestNewStartsAtObjectiveWithDefaults(t *testing.T) {
	w := New(&fakeCreator{})

	assert.Equal(t, StepObjective, w.Step())
	assert.Equal(t, "both", w.Draft().Platform)
	assert.Equal(t, campaign.AgeRange{Min: 18, Max: 65}, w.Draft().TargetAudience.AgeRange)
}

func TestStepStrings(t *testing.T) {
	assert.Equal(t, "objective", string(StepObjective))
	assert.Equal(t, "targeting", string(StepTargeting))
	assert.Equal(t, "budget", string(StepBudget))
	assert.Equal(t, "creatives", string(StepCreatives))
}

func TestGuardsBlockIncompleteSteps(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(*Wizard)
		wantStep  Step
		wantField string
	}{
		{
			name:      "empty objective",
			setup:     func(w *Wizard) {},
			wantStep:  StepObjective,
			wantField: "name",
		},
		{
			name: "whitespace name",
			setup: func(w *Wizard) {
				w.UpdateObjective(ObjectiveData{Name: "   ", Objective: "sales"})
			},
			wantStep:  StepObjective,
			wantField: "name",
		},
		{
			name: "no locations",
			setup: func(w *Wizard) {
				fillObjective(w)
				mustAdvance(t, w)
			},
			wantStep:  StepTargeting,
			wantField: "locations",
		},
		{
			name: "zero budget",
			setup: func(w *Wizard) {
				fillObjective(w)
				mustAdvance(t, w)
				fillTargeting(w)
				mustAdvance(t, w)
			},
			wantStep:  StepBudget,
			wantField: "budget",
		},
		{
			name: "no creatives",
			setup: func(w *Wizard) {
				fillObjective(w)
				mustAdvance(t, w)
				fillTargeting(w)
				mustAdvance(t, w)
				fillBudget(w)
				mustAdvance(t, w)
			},
			wantStep:  StepCreatives,
			wantField: "creatives",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			creator := &fakeCreator{}
			w := New(creator)
			tc.setup(w)

			done, err := w.Next(ctx)
			assert.False(t, done)
			require.Error(t, err)

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tc.wantStep, stepErr.Step)
			assert.Contains(t, stepErr.Fields, tc.wantField)

			assert.Equal(t, tc.wantStep, w.Step(), "failed guard must not advance")
			assert.Zero(t, creator.calls, "nothing may be submitted before the last step")
		})
	}
}

func mustAdvance(t *testing.T, w *Wizard) {
	t.Helper()
	done, err := w.Next(context.Background())
	require.NoError(t, err)
	require.False(t, done)
}

func TestFullFlowSubmitsOnce(t *testing.T) {
	creator := &fakeCreator{}
	w := New(creator)

	fillObjective(w)
	mustAdvance(t, w)
	fillTargeting(w)
	mustAdvance(t, w)
	fillBudget(w)
	mustAdvance(t, w)
	fillCreatives(w)

	done, err := w.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, creator.calls)

	req := creator.got
	assert.Equal(t, "Summer Sale", req.Name)
	assert.Equal(t, "sales", req.Objective)
	assert.Equal(t, "both", req.Platform)
	assert.Equal(t, 250.0, req.Budget)
	require.NotNil(t, req.TargetAudience)
	assert.Equal(t, []string{"US"}, req.TargetAudience.Locations)
	require.Len(t, req.Creatives, 1)
}

func TestSubmitFailureStaysOnCreatives(t *testing.T) {
	creator := &fakeCreator{err: errors.New("network down")}
	w := New(creator)

	fillObjective(w)
	mustAdvance(t, w)
	fillTargeting(w)
	mustAdvance(t, w)
	fillBudget(w)
	mustAdvance(t, w)
	fillCreatives(w)

	done, err := w.Next(context.Background())
	assert.False(t, done)
	require.Error(t, err)
	assert.Equal(t, StepCreatives, w.Step())
	assert.Equal(t, err, w.Err())

	// retry after the server recovers
	creator.err = nil
	done, err = w.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 2, creator.calls)
	assert.NoError(t, w.Err())
}

func TestBackNavigatesWithoutGuards(t *testing.T) {
	w := New(&fakeCreator{})

	w.Back()
	assert.Equal(t, StepObjective, w.Step(), "back on the first step is a no-op")

	fillObjective(w)
	mustAdvance(t, w)
	fillTargeting(w)
	mustAdvance(t, w)
	assert.Equal(t, StepBudget, w.Step())

	w.Back()
	assert.Equal(t, StepTargeting, w.Step())
	w.Back()
	assert.Equal(t, StepObjective, w.Step())
}

func TestDraftAccumulatesAcrossSteps(t *testing.T) {
	w := New(&fakeCreator{})

	fillObjective(w)
	mustAdvance(t, w)
	fillTargeting(w)

	// revisit the first step; targeting data must survive
	w.Back()
	w.UpdateObjective(ObjectiveData{Name: "Winter Sale", Objective: "sales", Platform: "instagram"})

	draft := w.Draft()
	assert.Equal(t, "Winter Sale", draft.Name)
	assert.Equal(t, "instagram", draft.Platform)
	assert.Equal(t, []string{"US"}, draft.TargetAudience.Locations)

	// partial targeting update keeps the untouched fields
	ar := campaign.AgeRange{Min: 21, Max: 40}
	w.UpdateTargeting(TargetingData{AgeRange: &ar})
	draft = w.Draft()
	assert.Equal(t, ar, draft.TargetAudience.AgeRange)
	assert.Equal(t, []string{"US"}, draft.TargetAudience.Locations)
}
