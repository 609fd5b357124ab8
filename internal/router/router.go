// Package router maps decoded protocol requests to store operations and
// builds the typed responses. The router is stateless between requests:
// every call decodes, validates, invokes the store, and returns exactly one
// response message. Domain failures come back as success=false in the
// matching response shape; only an unrecognized type tag produces the
// generic error shape.
package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/trademart/backend/internal/audit"
	"github.com/trademart/backend/internal/protocol"
	"github.com/trademart/backend/internal/store"
)

const msgInvalidRequest = "Invalid request"

type Router struct {
	store     *store.Store
	validator *validator.Validate
	audit     *audit.Logger
}

func New(st *store.Store, auditLogger *audit.Logger) *Router {
	return &Router{
		store:     st,
		validator: validator.New(),
		audit:     auditLogger,
	}
}

// Handle dispatches one decoded request and always returns a response
// message. Nothing recognizable ever fails without a reply.
func (r *Router) Handle(env protocol.Envelope) any {
	switch env.Type {
	case protocol.TypeLogin:
		return r.handleLogin(env)
	case protocol.TypeSignup:
		return r.handleSignup(env)
	case protocol.TypeAddAd:
		return r.handleAddAd(env)
	case protocol.TypeGetAds:
		return r.handleGetAds(env)
	case protocol.TypeAddToCart:
		return r.handleAddToCart(env)
	case protocol.TypeGetCart:
		return r.handleGetCart(env)
	case protocol.TypeRemoveFromCart:
		return r.handleRemoveFromCart(env)
	case protocol.TypePurchaseCart:
		return r.handlePurchaseCart(env)
	case protocol.TypeGetWallet:
		return r.handleGetWallet(env)
	case protocol.TypeWalletDeposit:
		return r.handleWalletDeposit(env)
	case protocol.TypeWalletWithdraw:
		return r.handleWalletWithdraw(env)
	case protocol.TypeGetTransactions:
		return r.handleGetTransactions(env)
	case protocol.TypeGetProfile:
		return r.handleGetProfile(env)
	case protocol.TypeGetUserAds:
		return r.handleGetUserAds(env)
	case protocol.TypeGetUserPurchases:
		return r.handleGetUserPurchases(env)
	case protocol.TypeGetUserSales:
		return r.handleGetUserSales(env)
	case protocol.TypeGetPendingAds:
		return r.handleModerationList(protocol.TypeGetPendingAds)
	case protocol.TypeGetApprovedAds:
		return r.handleModerationList(protocol.TypeGetApprovedAds)
	case protocol.TypeGetRejectedAds:
		return r.handleModerationList(protocol.TypeGetRejectedAds)
	case protocol.TypeApproveAd:
		return r.handleModerateAd(env, protocol.TypeApproveAd)
	case protocol.TypeRejectAd:
		return r.handleModerateAd(env, protocol.TypeRejectAd)
	case protocol.TypeGetAdminStats:
		return r.handleGetAdminStats()
	default:
		return protocol.ErrorResponse{Type: "error", Message: "Unknown request type"}
	}
}

// bindValidated binds the envelope onto req and runs struct validation.
// A failure of either step means the request is malformed at the domain
// level and the caller answers "Invalid request".
func (r *Router) bindValidated(env protocol.Envelope, req any) error {
	if err := env.Bind(req); err != nil {
		return err
	}
	return r.validator.Struct(req)
}
