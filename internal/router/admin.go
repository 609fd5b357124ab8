package router

import (
	"log"

	"github.com/trademart/backend/internal/models"
	"github.com/trademart/backend/internal/protocol"
)

func (r *Router) handleModerationList(requestType string) any {
	var status string
	switch requestType {
	case protocol.TypeGetPendingAds:
		status = models.AdStatusPending
	case protocol.TypeGetApprovedAds:
		status = models.AdStatusApproved
	case protocol.TypeGetRejectedAds:
		status = models.AdStatusRejected
	}

	resp := protocol.ModerationAdsResponse{Type: requestType + "_response", Ads: []protocol.ModerationAdSummary{}}
	for _, ad := range r.store.AdsByStatus(status) {
		resp.Ads = append(resp.Ads, protocol.ModerationAdSummary{
			ID:       ad.ID,
			Title:    ad.Title,
			Price:    ad.Price,
			Category: ad.Category,
			Owner:    ad.Owner,
		})
	}
	return resp
}

// handleModerateAd serves approve_ad and reject_ad. The only guard is that
// the id exists: re-approving an Approved ad or flipping a Rejected ad back
// to Approved are both allowed.
func (r *Router) handleModerateAd(env protocol.Envelope, requestType string) any {
	resp := protocol.StatusResponse{Type: requestType + "_response"}

	var req protocol.AdIDRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	if _, ok := r.store.Ad(req.AdID); !ok {
		resp.Message = "Ad not found"
		return resp
	}

	status := models.AdStatusApproved
	message := "Ad approved"
	if requestType == protocol.TypeRejectAd {
		status = models.AdStatusRejected
		message = "Ad rejected"
	}

	r.store.SetAdStatus(req.AdID, status)
	opID := r.audit.LogModeration(req.AdID, status)
	log.Printf("[ADMIN] Moderation %s: ad %d -> %s", opID, req.AdID, status)

	resp.Success = true
	resp.Message = message
	return resp
}

func (r *Router) handleGetAdminStats() any {
	stats := r.store.AdminStats()
	return protocol.AdminStatsResponse{
		Type:              "get_admin_stats_response",
		TotalUsers:        stats.TotalUsers,
		TotalAds:          stats.TotalAds,
		PendingAds:        stats.PendingAds,
		ApprovedAds:       stats.ApprovedAds,
		RejectedAds:       stats.RejectedAds,
		TotalTransactions: stats.TotalTransactions,
		TotalPurchases:    stats.TotalPurchases,
	}
}
