package router

import (
	"errors"

	"github.com/trademart/backend/internal/protocol"
	"github.com/trademart/backend/internal/store"
)

func (r *Router) handleGetWallet(env protocol.Envelope) any {
	resp := protocol.GetWalletResponse{Type: "get_wallet_response"}

	var req protocol.UsernameRequest
	_ = env.Bind(&req)

	if u, ok := r.store.User(req.Username); ok {
		resp.Balance = u.WalletBalance
	}
	return resp
}

func (r *Router) handleWalletDeposit(env protocol.Envelope) any {
	resp := protocol.WalletOpResponse{Type: "wallet_deposit_response"}

	var req protocol.WalletAmountRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	newBalance, err := r.store.Deposit(req.Username, req.Amount)
	if err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	r.audit.LogWallet("DEPOSIT", req.Username, req.Amount, newBalance)
	resp.Success = true
	resp.Message = "Deposit successful"
	resp.NewBalance = newBalance
	return resp
}

func (r *Router) handleWalletWithdraw(env protocol.Envelope) any {
	resp := protocol.WalletOpResponse{Type: "wallet_withdraw_response"}

	var req protocol.WalletAmountRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	newBalance, err := r.store.Withdraw(req.Username, req.Amount)
	switch {
	case errors.Is(err, store.ErrInsufficientBalance):
		r.audit.LogFailure("WITHDRAW", req.Username, "insufficient balance")
		resp.Message = "Insufficient balance"
		return resp
	case err != nil:
		resp.Message = msgInvalidRequest
		return resp
	}

	r.audit.LogWallet("WITHDRAW", req.Username, -req.Amount, newBalance)
	resp.Success = true
	resp.Message = "Withdraw successful"
	resp.NewBalance = newBalance
	return resp
}

func (r *Router) handleGetTransactions(env protocol.Envelope) any {
	resp := protocol.GetTransactionsResponse{Type: "get_transactions_response", Transactions: []protocol.TransactionItem{}}

	var req protocol.UsernameRequest
	_ = env.Bind(&req)

	for _, t := range r.store.Transactions(req.Username) {
		resp.Transactions = append(resp.Transactions, protocol.TransactionItem{
			TxType:         t.Type,
			Amount:         t.Amount,
			Timestamp:      t.Timestamp,
			Description:    t.Description,
			RelatedAdTitle: t.RelatedAdTitle,
			RelatedAdID:    t.RelatedAdID,
		})
	}
	return resp
}
