package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adpilot/admanager/internal/cache"
	"github.com/adpilot/admanager/internal/config"
	"github.com/adpilot/admanager/internal/domain/campaign"
	"github.com/adpilot/admanager/internal/http/middlewares"
)

type CampaignStore interface {
	Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error)
	ListByOwner(ctx context.Context, ownerID string) ([]campaign.Campaign, error)
	GetByID(ctx context.Context, ownerID, id string) (campaign.Campaign, error)
	Update(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type CampaignsHandler struct {
	store CampaignStore
	lists *cache.Cache
}

func NewCampaignsHandler(store CampaignStore, lists *cache.Cache) *CampaignsHandler {
	return &CampaignsHandler{store: store, lists: lists}
}

func listCacheKey(ownerID string) string {
	return "campaigns:" + ownerID
}

func (h *CampaignsHandler) invalidate(ownerID string) {
	if h.lists != nil {
		h.lists.Delete(listCacheKey(ownerID))
	}
}

func (h *CampaignsHandler) CreateCampaign(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req campaign.CreateCampaignRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.store.Create(cctx, campaign.NewFromCreateRequest(ownerID, req))
	if err != nil {
		var vErr *campaign.ValidationError
		if errors.As(err, &vErr) {
			RespondValidation(ctx, vErr.Fields)
			return
		}
		RespondInternal(ctx, "Could not create campaign")
		return
	}

	h.invalidate(ownerID)

	ctx.JSON(http.StatusCreated, gin.H{"campaign": created})
}

func (h *CampaignsHandler) ListCampaigns(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	if h.lists != nil {
		if v, ok := h.lists.Get(listCacheKey(ownerID)); ok {
			if campaigns, ok := v.([]campaign.Campaign); ok {
				ctx.JSON(http.StatusOK, gin.H{
					"campaigns": campaigns,
					"count":     len(campaigns),
				})
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	campaigns, err := h.store.ListByOwner(cctx, ownerID)
	if err != nil {
		RespondInternal(ctx, "Could not list campaigns")
		return
	}

	if h.lists != nil {
		h.lists.Set(listCacheKey(ownerID), campaigns)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"campaigns": campaigns,
		"count":     len(campaigns),
	})
}

func (h *CampaignsHandler) GetCampaign(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")
	if !isUUID(id) {
		RespondNotFound(ctx, "Campaign not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.store.GetByID(cctx, ownerID, id)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			RespondNotFound(ctx, "Campaign not found")
			return
		}
		RespondInternal(ctx, "Could not fetch campaign")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"campaign": c})
}

func (h *CampaignsHandler) UpdateCampaign(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")
	if !isUUID(id) {
		RespondNotFound(ctx, "Campaign not found")
		return
	}

	var req campaign.UpdateCampaignRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	existing, err := h.store.GetByID(cctx, ownerID, id)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			RespondNotFound(ctx, "Campaign not found")
			return
		}
		RespondInternal(ctx, "Could not update campaign")
		return
	}

	req.ApplyTo(&existing)

	updated, err := h.store.Update(cctx, existing)
	if err != nil {
		var vErr *campaign.ValidationError
		switch {
		case errors.As(err, &vErr):
			RespondValidation(ctx, vErr.Fields)
		case errors.Is(err, campaign.ErrNotFound):
			RespondNotFound(ctx, "Campaign not found")
		default:
			RespondInternal(ctx, "Could not update campaign")
		}
		return
	}

	h.invalidate(ownerID)

	ctx.JSON(http.StatusOK, gin.H{"campaign": updated})
}

func (h *CampaignsHandler) DeleteCampaign(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || ownerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")
	if !isUUID(id) {
		RespondNotFound(ctx, "Campaign not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if err := h.store.Delete(cctx, ownerID, id); err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			RespondNotFound(ctx, "Campaign not found")
			return
		}
		RespondInternal(ctx, "Could not delete campaign")
		return
	}

	h.invalidate(ownerID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
