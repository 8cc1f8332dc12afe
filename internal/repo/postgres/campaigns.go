package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adpilot/admanager/internal/domain/campaign"
)

type CampaignsRepo struct {
	pool *pgxpool.Pool
	obs  dbObserver
}

func NewCampaignsRepo(pool *pgxpool.Pool, obs dbObserver) *CampaignsRepo {
	return &CampaignsRepo{pool: pool, obs: obs}
}

const campaignColumns = `id, name, description, status, budget, start_date,
	end_date, platform, objective, target_audience, creatives, ads,
	created_by, created_at, updated_at`

func scanCampaign(row pgx.Row) (campaign.Campaign, error) {
	var c campaign.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Status,
		&c.Budget,
		&c.StartDate,
		&c.EndDate,
		&c.Platform,
		&c.Objective,
		&c.TargetAudience,
		&c.Creatives,
		&c.Ads,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create persists a campaign after re-checking the write-time invariants.
func (r *CampaignsRepo) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	if err := c.Validate(); err != nil {
		return campaign.Campaign{}, err
	}

	err := observe(r.obs, "campaigns.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO campaigns (id, name, description, status, budget,
				start_date, end_date, platform, objective, target_audience,
				creatives, ads, created_by, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			c.ID, c.Name, c.Description, c.Status, c.Budget,
			c.StartDate, c.EndDate, c.Platform, c.Objective, c.TargetAudience,
			c.Creatives, c.Ads, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return campaign.Campaign{}, err
	}
	return c, nil
}

// ListByOwner returns every campaign owned by ownerID, newest first.
func (r *CampaignsRepo) ListByOwner(ctx context.Context, ownerID string) ([]campaign.Campaign, error) {
	var out []campaign.Campaign

	err := observe(r.obs, "campaigns.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+campaignColumns+`
			 FROM campaigns
			 WHERE created_by = $1
			 ORDER BY created_at DESC, id`, ownerID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]campaign.Campaign, 0)
		for rows.Next() {
			c, err := scanCampaign(rows)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID looks a campaign up by id and owner in one query, so a campaign
// owned by somebody else is indistinguishable from a missing one.
func (r *CampaignsRepo) GetByID(ctx context.Context, ownerID, id string) (campaign.Campaign, error) {
	var c campaign.Campaign
	err := observe(r.obs, "campaigns.get", func() error {
		var err error
		c, err = scanCampaign(r.pool.QueryRow(ctx,
			`SELECT `+campaignColumns+`
			 FROM campaigns
			 WHERE id = $1 AND created_by = $2`, id, ownerID))
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.ErrNotFound
		}
		return err
	})
	if err != nil {
		return campaign.Campaign{}, err
	}
	return c, nil
}

// Update writes a fully merged campaign back, re-checking invariants and
// the ownership rule. Concurrent edits are last-write-wins.
func (r *CampaignsRepo) Update(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	if err := c.Validate(); err != nil {
		return campaign.Campaign{}, err
	}

	var out campaign.Campaign
	err := observe(r.obs, "campaigns.update", func() error {
		var err error
		out, err = scanCampaign(r.pool.QueryRow(ctx,
			`UPDATE campaigns
				SET name = $3,
					description = $4,
					status = $5,
					budget = $6,
					start_date = $7,
					end_date = $8,
					platform = $9,
					objective = $10,
					target_audience = $11,
					creatives = $12,
					updated_at = now()
			 WHERE id = $1 AND created_by = $2
			 RETURNING `+campaignColumns,
			c.ID, c.CreatedBy, c.Name, c.Description, c.Status, c.Budget,
			c.StartDate, c.EndDate, c.Platform, c.Objective,
			c.TargetAudience, c.Creatives,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.ErrNotFound
		}
		return err
	})
	if err != nil {
		return campaign.Campaign{}, err
	}
	return out, nil
}

// Delete removes the campaign. Child ads are left in place; they stay
// reachable by campaign_id.
func (r *CampaignsRepo) Delete(ctx context.Context, ownerID, id string) error {
	return observe(r.obs, "campaigns.delete", func() error {
		tag, err := r.pool.Exec(ctx,
			`DELETE FROM campaigns WHERE id = $1 AND created_by = $2`, id, ownerID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return campaign.ErrNotFound
		}
		return nil
	})
}
