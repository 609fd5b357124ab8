package router

import (
	"errors"
	"log"

	"github.com/trademart/backend/internal/models"
	"github.com/trademart/backend/internal/protocol"
	"github.com/trademart/backend/internal/store"
)

func (r *Router) handleAddAd(env protocol.Envelope) any {
	resp := protocol.AddAdResponse{Type: "add_ad_response"}

	var req protocol.AddAdRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	id, err := r.store.SubmitAd(models.Ad{
		Owner:       req.Username,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageBase64: req.ImageBase64,
	})
	if errors.Is(err, store.ErrUnknownUser) {
		resp.Message = "User not found"
		return resp
	}

	log.Printf("[ADS] Ad %d submitted by %q", id, req.Username)
	resp.Success = true
	resp.Message = "Ad submitted"
	resp.AdID = id
	return resp
}

func (r *Router) handleGetAds(env protocol.Envelope) any {
	resp := protocol.GetAdsResponse{Type: "get_ads_response", Ads: []protocol.AdDetail{}}

	var req protocol.GetAdsRequest
	_ = env.Bind(&req)
	if req.Status == "" {
		req.Status = models.AdStatusApproved
	}

	for _, ad := range r.store.AdsByStatus(req.Status) {
		resp.Ads = append(resp.Ads, protocol.AdDetail{
			ID:          ad.ID,
			Owner:       ad.Owner,
			Title:       ad.Title,
			Description: ad.Description,
			Price:       ad.Price,
			Category:    ad.Category,
			Status:      ad.Status,
			ImageBase64: ad.ImageBase64,
			CreatedAt:   ad.CreatedAt,
			UpdatedAt:   ad.UpdatedAt,
		})
	}
	return resp
}

func (r *Router) handleGetUserAds(env protocol.Envelope) any {
	resp := protocol.GetUserAdsResponse{Type: "get_user_ads_response", Ads: []protocol.UserAdSummary{}}

	var req protocol.UsernameRequest
	_ = env.Bind(&req)

	for _, ad := range r.store.AdsByOwner(req.Username) {
		resp.Ads = append(resp.Ads, protocol.UserAdSummary{
			ID:       ad.ID,
			Title:    ad.Title,
			Price:    ad.Price,
			Category: ad.Category,
			Status:   ad.Status,
		})
	}
	return resp
}
