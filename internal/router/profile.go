package router

import (
	"github.com/trademart/backend/internal/protocol"
)

// Profile reads follow the store's soft-read policy: an absent username
// answers with zeroed fields, never an error.
func (r *Router) handleGetProfile(env protocol.Envelope) any {
	resp := protocol.GetProfileResponse{Type: "get_profile_response"}

	var req protocol.UsernameRequest
	_ = env.Bind(&req)

	u, ok := r.store.User(req.Username)
	if !ok {
		return resp
	}

	resp.Name = u.Name
	resp.Email = u.Email
	resp.Phone = u.Phone
	resp.JoinDate = u.JoinDate
	resp.AdsCount = u.AdsCount
	resp.Purchases = u.PurchasesCount
	resp.Sales = u.SalesCount
	return resp
}

func (r *Router) handleGetUserPurchases(env protocol.Envelope) any {
	resp := protocol.GetUserPurchasesResponse{Type: "get_user_purchases_response", Purchases: []protocol.PurchaseItem{}}

	var req protocol.UsernameRequest
	_ = env.Bind(&req)

	for _, p := range r.store.Purchases(req.Username) {
		resp.Purchases = append(resp.Purchases, protocol.PurchaseItem{
			Title:  p.Title,
			Price:  p.Price,
			Date:   p.Date,
			Seller: p.Seller,
		})
	}
	return resp
}

func (r *Router) handleGetUserSales(env protocol.Envelope) any {
	resp := protocol.GetUserSalesResponse{Type: "get_user_sales_response", Sales: []protocol.SaleItem{}}

	var req protocol.UsernameRequest
	_ = env.Bind(&req)

	for _, p := range r.store.Sales(req.Username) {
		resp.Sales = append(resp.Sales, protocol.SaleItem{
			Title: p.Title,
			Price: p.Price,
			Date:  p.Date,
			Buyer: p.Buyer,
		})
	}
	return resp
}
