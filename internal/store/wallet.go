package store

import (
	"fmt"

	"github.com/trademart/backend/internal/models"
)

// PurchaseSummary reports the outcome of a settled cart purchase.
type PurchaseSummary struct {
	NewBalance float64
	Total      float64
	Ads        []models.Ad
}

// Deposit credits the user's wallet and appends a deposit ledger row. The
// balance check, update and ledger append happen under one write lock.
func (s *Store) Deposit(username string, amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	u, ok := s.users[username]
	if !ok {
		return 0, ErrUnknownUser
	}

	u.WalletBalance += amount
	s.users[username] = u

	s.appendTransactionLocked(models.Transaction{
		Username:    username,
		Type:        models.TxDeposit,
		Amount:      amount,
		Timestamp:   now(),
		Description: "Wallet deposit",
	})
	return u.WalletBalance, nil
}

// Withdraw debits the user's wallet and appends a withdraw ledger row. Fails
// without side effects when the amount is invalid or exceeds the balance.
func (s *Store) Withdraw(username string, amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	u, ok := s.users[username]
	if !ok {
		return 0, ErrUnknownUser
	}
	if u.WalletBalance < amount {
		return 0, ErrInsufficientBalance
	}

	u.WalletBalance -= amount
	s.users[username] = u

	s.appendTransactionLocked(models.Transaction{
		Username:    username,
		Type:        models.TxWithdraw,
		Amount:      -amount,
		Timestamp:   now(),
		Description: "Wallet withdraw",
	})
	return u.WalletBalance, nil
}

// PurchaseCart settles the buyer's cart as one all-or-nothing operation:
// resolve cart entries to currently-Approved ads, check the buyer's balance
// against the summed total, debit the buyer, credit each seller, and append
// one purchase record plus a buyer and a seller ledger row per ad. The
// buyer's entire cart is cleared afterwards, including any stale entries
// that were dropped during resolution. Everything runs under one write lock
// so no concurrent reader can observe a partial settlement, and a failure
// leaves all balances, carts and ledgers untouched.
func (s *Store) PurchaseCart(username string) (PurchaseSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buyer, ok := s.users[username]
	if !ok {
		return PurchaseSummary{}, ErrUnknownUser
	}

	items, total := s.approvedCartItemsLocked(username)
	if len(items) == 0 {
		return PurchaseSummary{}, ErrEmptyCart
	}
	if buyer.WalletBalance < total {
		return PurchaseSummary{}, ErrInsufficientBalance
	}

	buyer.WalletBalance -= total
	buyer.PurchasesCount += len(items)
	s.users[username] = buyer

	ts := now()
	for _, ad := range items {
		seller := s.users[ad.Owner]
		seller.WalletBalance += ad.Price
		seller.SalesCount++
		s.users[ad.Owner] = seller

		s.purchases = append(s.purchases, models.PurchaseRecord{
			Buyer:  buyer.Username,
			Seller: ad.Owner,
			Title:  ad.Title,
			Price:  ad.Price,
			Date:   ts,
			AdID:   ad.ID,
		})
		s.appendTransactionLocked(models.Transaction{
			Username:       buyer.Username,
			Type:           models.TxPurchase,
			Amount:         -ad.Price,
			Timestamp:      ts,
			Description:    fmt.Sprintf("Purchase ad %d", ad.ID),
			RelatedAdTitle: ad.Title,
			RelatedAdID:    ad.ID,
		})
		s.appendTransactionLocked(models.Transaction{
			Username:       ad.Owner,
			Type:           models.TxSale,
			Amount:         ad.Price,
			Timestamp:      ts,
			Description:    fmt.Sprintf("Sold ad %d", ad.ID),
			RelatedAdTitle: ad.Title,
			RelatedAdID:    ad.ID,
		})
	}

	delete(s.carts, username)

	return PurchaseSummary{NewBalance: buyer.WalletBalance, Total: total, Ads: items}, nil
}
