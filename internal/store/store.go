// Package store is the single authoritative in-memory repository for all
// marketplace state. Every read and write to users, ads, carts, the
// transaction ledger and the purchase history goes through a Store, and one
// RWMutex guards it all: fine-grained operations lock around a single
// mutation, while the compound monetary operations (Deposit, Withdraw,
// PurchaseCart) hold the write lock for their whole span so no concurrent
// reader can observe a partial debit or credit.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trademart/backend/internal/models"
)

var (
	ErrDuplicateUser       = errors.New("username already exists")
	ErrUnknownUser         = errors.New("user not found")
	ErrAdNotFound          = errors.New("ad not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrEmptyCart           = errors.New("cart is empty")
)

// Store holds the entire marketplace state. Construct with New; the zero
// value is not usable.
type Store struct {
	mu           sync.RWMutex
	users        map[string]models.User
	ads          map[int]models.Ad
	carts        map[string][]int
	transactions []models.Transaction
	purchases    []models.PurchaseRecord
	nextAdID     int
}

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		ads:      make(map[int]models.Ad),
		carts:    make(map[string][]int),
		nextAdID: 1,
	}
}

func now() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// CreateUser inserts a new user with zeroed balance and counters. The join
// date is stamped here; any counters or balance on the input are discarded.
func (s *Store) CreateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return ErrDuplicateUser
	}

	u.JoinDate = now()
	u.WalletBalance = 0
	u.AdsCount = 0
	u.PurchasesCount = 0
	u.SalesCount = 0
	s.users[u.Username] = u
	return nil
}

// User returns the stored user and whether the username exists.
func (s *Store) User(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	return u, ok
}

// UpdateUser replaces the stored user. Calling it for a username that was
// never created is a caller bug; the update is silently dropped.
func (s *Store) UpdateUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; !exists {
		return
	}
	s.users[u.Username] = u
}

// SubmitAd registers a new Pending ad for owner and bumps the owner's ad
// counter in the same critical section. Any id or status on the input is
// discarded. Returns the assigned id.
func (s *Store) SubmitAd(ad models.Ad) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[ad.Owner]
	if !ok {
		return 0, ErrUnknownUser
	}

	ad.ID = s.nextAdID
	s.nextAdID++
	ad.Status = models.AdStatusPending
	ad.CreatedAt = now()
	ad.UpdatedAt = ad.CreatedAt
	s.ads[ad.ID] = ad

	owner.AdsCount++
	s.users[owner.Username] = owner
	return ad.ID, nil
}

// Ad returns the ad with the given id and whether it exists.
func (s *Store) Ad(id int) (models.Ad, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ad, ok := s.ads[id]
	return ad, ok
}

// SetAdStatus transitions an ad's moderation status and bumps its updated
// timestamp. Unknown ids are a no-op. There is no transition guard: an
// Approved ad may be re-approved or rejected at any time.
func (s *Store) SetAdStatus(id int, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ad, ok := s.ads[id]
	if !ok {
		return
	}
	ad.Status = status
	ad.UpdatedAt = now()
	s.ads[id] = ad
}

// AdsByStatus returns a copy of all ads with the given status, ordered by id.
func (s *Store) AdsByStatus(status string) []models.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.Ad
	for _, ad := range s.ads {
		if ad.Status == status {
			list = append(list, ad)
		}
	}
	sortAds(list)
	return list
}

// AdsByOwner returns a copy of all ads owned by username, ordered by id.
func (s *Store) AdsByOwner(username string) []models.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.Ad
	for _, ad := range s.ads {
		if ad.Owner == username {
			list = append(list, ad)
		}
	}
	sortAds(list)
	return list
}

// AllAds returns a copy of every ad, ordered by id.
func (s *Store) AllAds() []models.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Ad, 0, len(s.ads))
	for _, ad := range s.ads {
		list = append(list, ad)
	}
	sortAds(list)
	return list
}

func sortAds(ads []models.Ad) {
	sort.Slice(ads, func(i, j int) bool { return ads[i].ID < ads[j].ID })
}

// AddToCart appends an ad id to the user's cart. The store does not check
// that the ad exists or is purchasable; that validation belongs to the
// router, keeping the cart a dumb id list.
func (s *Store) AddToCart(username string, adID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[username] = append(s.carts[username], adID)
}

// RemoveFromCart removes every occurrence of adID from the user's cart.
// Removing an id that is not present is a no-op.
func (s *Store) RemoveFromCart(username string, adID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.carts[username]
	kept := ids[:0]
	for _, id := range ids {
		if id != adID {
			kept = append(kept, id)
		}
	}
	s.carts[username] = kept
}

// ClearCart discards the user's entire cart.
func (s *Store) ClearCart(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, username)
}

// Cart returns a copy of the user's raw cart id list.
func (s *Store) Cart(username string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.carts[username]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// ApprovedCartItems resolves the user's cart to its currently-Approved ads
// and their total price, in one read-locked pass. Entries whose ad is
// missing or no longer Approved are silently skipped.
func (s *Store) ApprovedCartItems(username string) ([]models.Ad, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.approvedCartItemsLocked(username)
}

func (s *Store) approvedCartItemsLocked(username string) ([]models.Ad, float64) {
	var items []models.Ad
	var total float64
	for _, id := range s.carts[username] {
		ad, ok := s.ads[id]
		if !ok || ad.Status != models.AdStatusApproved {
			continue
		}
		items = append(items, ad)
		total += ad.Price
	}
	return items, total
}

// AppendTransaction appends one ledger row, stamping a fresh id if the row
// does not carry one. Ledger rows are never mutated afterwards.
func (s *Store) AppendTransaction(t models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendTransactionLocked(t)
}

func (s *Store) appendTransactionLocked(t models.Transaction) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	s.transactions = append(s.transactions, t)
}

// AppendPurchase appends one purchase history row.
func (s *Store) AppendPurchase(p models.PurchaseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purchases = append(s.purchases, p)
}

// Transactions returns the user's ledger rows in append order.
func (s *Store) Transactions(username string) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.Transaction
	for _, t := range s.transactions {
		if t.Username == username {
			list = append(list, t)
		}
	}
	return list
}

// Purchases returns the purchase records where username is the buyer.
func (s *Store) Purchases(username string) []models.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.PurchaseRecord
	for _, p := range s.purchases {
		if p.Buyer == username {
			list = append(list, p)
		}
	}
	return list
}

// Sales returns the purchase records where username is the seller.
func (s *Store) Sales(username string) []models.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.PurchaseRecord
	for _, p := range s.purchases {
		if p.Seller == username {
			list = append(list, p)
		}
	}
	return list
}

// AdminStats aggregates entity counts. Pure read, no side effects.
func (s *Store) AdminStats() models.AdminStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.AdminStats{
		TotalUsers:        len(s.users),
		TotalAds:          len(s.ads),
		TotalTransactions: len(s.transactions),
		TotalPurchases:    len(s.purchases),
	}
	for _, ad := range s.ads {
		switch ad.Status {
		case models.AdStatusPending:
			stats.PendingAds++
		case models.AdStatusApproved:
			stats.ApprovedAds++
		case models.AdStatusRejected:
			stats.RejectedAds++
		}
	}
	return stats
}
