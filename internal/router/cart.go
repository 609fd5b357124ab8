package router

import (
	"errors"
	"log"

	"github.com/trademart/backend/internal/models"
	"github.com/trademart/backend/internal/protocol"
	"github.com/trademart/backend/internal/store"
)

func (r *Router) handleAddToCart(env protocol.Envelope) any {
	resp := protocol.StatusResponse{Type: "add_to_cart_response"}

	var req protocol.CartItemRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	if _, ok := r.store.User(req.Username); !ok {
		resp.Message = "User not found"
		return resp
	}

	// The cart itself is a dumb id list; purchasability is checked here so
	// only currently-Approved ads can be carted.
	ad, ok := r.store.Ad(req.AdID)
	if !ok || ad.Status != models.AdStatusApproved {
		resp.Message = "Ad not available"
		return resp
	}

	r.store.AddToCart(req.Username, req.AdID)
	resp.Success = true
	resp.Message = "Added to cart"
	return resp
}

func (r *Router) handleGetCart(env protocol.Envelope) any {
	resp := protocol.GetCartResponse{Type: "get_cart_response", Items: []protocol.CartItem{}}

	var req protocol.UsernameRequest
	_ = env.Bind(&req)

	// Entries whose ad was rejected after being carted are silently
	// omitted, not reported.
	items, total := r.store.ApprovedCartItems(req.Username)
	for _, ad := range items {
		resp.Items = append(resp.Items, protocol.CartItem{
			ID:       ad.ID,
			Title:    ad.Title,
			Price:    ad.Price,
			Category: ad.Category,
			Owner:    ad.Owner,
		})
	}
	resp.TotalPrice = total
	return resp
}

func (r *Router) handleRemoveFromCart(env protocol.Envelope) any {
	resp := protocol.StatusResponse{Type: "remove_from_cart_response"}

	var req protocol.CartItemRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	// Idempotent: removing an id that is not in the cart still succeeds.
	r.store.RemoveFromCart(req.Username, req.AdID)
	resp.Success = true
	resp.Message = "Removed from cart"
	return resp
}

func (r *Router) handlePurchaseCart(env protocol.Envelope) any {
	resp := protocol.PurchaseCartResponse{Type: "purchase_cart_response"}

	var req protocol.PurchaseCartRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	summary, err := r.store.PurchaseCart(req.Username)
	switch {
	case errors.Is(err, store.ErrUnknownUser):
		resp.Message = "User not found"
		return resp
	case errors.Is(err, store.ErrEmptyCart):
		resp.Message = "Cart is empty"
		return resp
	case errors.Is(err, store.ErrInsufficientBalance):
		r.audit.LogFailure("PURCHASE", req.Username, "insufficient balance")
		resp.Message = "Insufficient balance"
		return resp
	}

	opID := r.audit.LogPurchase(req.Username, summary.Total, len(summary.Ads))
	log.Printf("[CART] Purchase %s: %q bought %d ads for %.2f", opID, req.Username, len(summary.Ads), summary.Total)

	resp.Success = true
	resp.Message = "Purchase successful"
	resp.NewBalance = summary.NewBalance
	return resp
}
