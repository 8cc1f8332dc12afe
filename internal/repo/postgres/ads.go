package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adpilot/admanager/internal/domain/ad"
	"github.com/adpilot/admanager/internal/domain/campaign"
)

type AdsRepo struct {
	pool *pgxpool.Pool
	obs  dbObserver
}

func NewAdsRepo(pool *pgxpool.Pool, obs dbObserver) *AdsRepo {
	return &AdsRepo{pool: pool, obs: obs}
}

const adColumns = `id, name, campaign_id, type, content, targeting, status,
	metrics, created_at, updated_at`

func scanAd(row pgx.Row) (ad.Ad, error) {
	var a ad.Ad
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.CampaignID,
		&a.Type,
		&a.Content,
		&a.Targeting,
		&a.Status,
		&a.Metrics,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create inserts the ad and appends its id to the parent campaign's ads
// list in one transaction. The campaign row is locked first, which also
// performs the ownership check: a campaign owned by someone else reads as
// not found.
func (r *AdsRepo) Create(ctx context.Context, ownerID string, a ad.Ad) (ad.Ad, error) {
	err := observe(r.obs, "ads.create", func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		var campaignID string
		err = tx.QueryRow(ctx,
			`SELECT id FROM campaigns WHERE id = $1 AND created_by = $2 FOR UPDATE`,
			a.CampaignID, ownerID,
		).Scan(&campaignID)
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO ads (id, name, campaign_id, type, content, targeting,
				status, metrics, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			a.ID, a.Name, a.CampaignID, a.Type, a.Content, a.Targeting,
			a.Status, a.Metrics, a.CreatedAt, a.UpdatedAt,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE campaigns
				SET ads = array_append(ads, $2),
					updated_at = now()
			 WHERE id = $1`,
			a.CampaignID, a.ID,
		)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return ad.Ad{}, err
	}
	return a, nil
}

// ListByCampaign checks campaign ownership, then returns its ads newest
// first.
func (r *AdsRepo) ListByCampaign(ctx context.Context, ownerID, campaignID string) ([]ad.Ad, error) {
	var out []ad.Ad

	err := observe(r.obs, "ads.list", func() error {
		var id string
		err := r.pool.QueryRow(ctx,
			`SELECT id FROM campaigns WHERE id = $1 AND created_by = $2`,
			campaignID, ownerID,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.ErrNotFound
		}
		if err != nil {
			return err
		}

		rows, err := r.pool.Query(ctx,
			`SELECT `+adColumns+`
			 FROM ads
			 WHERE campaign_id = $1
			 ORDER BY created_at DESC, id`, campaignID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]ad.Ad, 0)
		for rows.Next() {
			a, err := scanAd(rows)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads the ad, then re-derives ownership from its parent
// campaign. A missing ad is ErrNotFound; an ad under another user's
// campaign is ErrForbidden.
func (r *AdsRepo) GetByID(ctx context.Context, ownerID, adID string) (ad.Ad, error) {
	var a ad.Ad
	err := observe(r.obs, "ads.get", func() error {
		var err error
		a, err = scanAd(r.pool.QueryRow(ctx,
			`SELECT `+adColumns+` FROM ads WHERE id = $1`, adID))
		if errors.Is(err, pgx.ErrNoRows) {
			return ad.ErrNotFound
		}
		if err != nil {
			return err
		}
		return r.checkOwnership(ctx, ownerID, a.CampaignID)
	})
	if err != nil {
		return ad.Ad{}, err
	}
	return a, nil
}

// Update writes a fully merged ad back after re-deriving ownership.
func (r *AdsRepo) Update(ctx context.Context, ownerID string, a ad.Ad) (ad.Ad, error) {
	var out ad.Ad
	err := observe(r.obs, "ads.update", func() error {
		if err := r.checkOwnership(ctx, ownerID, a.CampaignID); err != nil {
			return err
		}

		var err error
		out, err = scanAd(r.pool.QueryRow(ctx,
			`UPDATE ads
				SET name = $2,
					type = $3,
					content = $4,
					targeting = $5,
					status = $6,
					updated_at = now()
			 WHERE id = $1
			 RETURNING `+adColumns,
			a.ID, a.Name, a.Type, a.Content, a.Targeting, a.Status,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return ad.ErrNotFound
		}
		return err
	})
	if err != nil {
		return ad.Ad{}, err
	}
	return out, nil
}

// Delete removes the ad and drops its id from the parent campaign's ads
// list in one transaction, after the same ownership derivation as GetByID.
func (r *AdsRepo) Delete(ctx context.Context, ownerID, adID string) error {
	return observe(r.obs, "ads.delete", func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		var campaignID string
		err = tx.QueryRow(ctx,
			`SELECT campaign_id FROM ads WHERE id = $1`, adID).Scan(&campaignID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ad.ErrNotFound
		}
		if err != nil {
			return err
		}

		var ownedBy string
		err = tx.QueryRow(ctx,
			`SELECT created_by FROM campaigns WHERE id = $1 FOR UPDATE`,
			campaignID).Scan(&ownedBy)
		if errors.Is(err, pgx.ErrNoRows) {
			// parent gone: same rule as checkOwnership, nobody is
			// authorized for an orphaned ad
			return ad.ErrForbidden
		}
		if err != nil {
			return err
		}
		if ownedBy != ownerID {
			return ad.ErrForbidden
		}

		_, err = tx.Exec(ctx,
			`UPDATE campaigns
				SET ads = array_remove(ads, $2),
					updated_at = now()
			 WHERE id = $1`,
			campaignID, adID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM ads WHERE id = $1`, adID); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

func (r *AdsRepo) checkOwnership(ctx context.Context, ownerID, campaignID string) error {
	var ownedBy string
	err := r.pool.QueryRow(ctx,
		`SELECT created_by FROM campaigns WHERE id = $1`, campaignID).Scan(&ownedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		// parent gone: authorization derives from the campaign lookup,
		// so treat this like another user's ad
		return ad.ErrForbidden
	}
	if err != nil {
		return err
	}
	if ownedBy != ownerID {
		return ad.ErrForbidden
	}
	return nil
}
