package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adpilot/admanager/internal/config"
	"github.com/adpilot/admanager/internal/domain/ad"
	"github.com/adpilot/admanager/internal/domain/campaign"
	"github.com/adpilot/admanager/internal/http/middlewares"
)

type AdStore interface {
	Create(ctx context.Context, ownerID string, a ad.Ad) (ad.Ad, error)
	ListByCampaign(ctx context.Context, ownerID, campaignID string) ([]ad.Ad, error)
	GetByID(ctx context.Context, ownerID, adID string) (ad.Ad, error)
	Update(ctx context.Context, ownerID string, a ad.Ad) (ad.Ad, error)
	Delete(ctx context.Context, ownerID, adID string) error
}

type AdsHandler struct {
	store AdStore
}

func NewAdsHandler(store AdStore) *AdsHandler {
	return &AdsHandler{store: store}
}

func (h *AdsHandler) CreateAd(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req ad.CreateAdRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.store.Create(cctx, ownerID, ad.NewFromCreateRequest(req))
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			RespondNotFound(ctx, "Campaign not found")
			return
		}
		RespondInternal(ctx, "Could not create ad")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"ad": created})
}

func (h *AdsHandler) ListAdsByCampaign(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	campaignID := ctx.Param("campaignId")
	if !isUUID(campaignID) {
		RespondNotFound(ctx, "Campaign not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	ads, err := h.store.ListByCampaign(cctx, ownerID, campaignID)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			RespondNotFound(ctx, "Campaign not found")
			return
		}
		RespondInternal(ctx, "Could not list ads")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"ads":   ads,
		"count": len(ads),
	})
}

func (h *AdsHandler) GetAd(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	adID := ctx.Param("id")
	if !isUUID(adID) {
		RespondNotFound(ctx, "Ad not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	a, err := h.store.GetByID(cctx, ownerID, adID)
	if err != nil {
		respondAdError(ctx, err, "Could not fetch ad")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ad": a})
}

func (h *AdsHandler) UpdateAd(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	adID := ctx.Param("id")
	if !isUUID(adID) {
		RespondNotFound(ctx, "Ad not found")
		return
	}

	var req ad.UpdateAdRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	existing, err := h.store.GetByID(cctx, ownerID, adID)
	if err != nil {
		respondAdError(ctx, err, "Could not update ad")
		return
	}

	req.ApplyTo(&existing)

	updated, err := h.store.Update(cctx, ownerID, existing)
	if err != nil {
		respondAdError(ctx, err, "Could not update ad")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ad": updated})
}

func (h *AdsHandler) DeleteAd(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	adID := ctx.Param("id")
	if !isUUID(adID) {
		RespondNotFound(ctx, "Ad not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.store.Delete(cctx, ownerID, adID); err != nil {
		respondAdError(ctx, err, "Could not delete ad")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Ad deleted successfully"})
}

func respondAdError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ad.ErrNotFound):
		RespondNotFound(ctx, "Ad not found")
	case errors.Is(err, ad.ErrForbidden):
		RespondForbidden(ctx, "Not authorized to access this ad")
	case errors.Is(err, campaign.ErrNotFound):
		RespondNotFound(ctx, "Campaign not found")
	default:
		RespondInternal(ctx, fallback)
	}
}
