package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/trademart/backend/internal/models"
)

// Snapshot is the serialized form of the entire store. Entity slices are
// ordered (users and carts by username, ads by id) so two snapshots of the
// same state are structurally identical.
type Snapshot struct {
	Users        []models.User           `json:"users"`
	Ads          []models.Ad             `json:"ads"`
	Carts        []CartEntry             `json:"carts"`
	Transactions []models.Transaction    `json:"transactions"`
	Purchases    []models.PurchaseRecord `json:"purchases"`
}

// CartEntry is one user's cart in serialized form.
type CartEntry struct {
	Username string `json:"username"`
	Items    []int  `json:"items"`
}

// Snapshot copies the entire state into its serializable form under the
// read lock. No file I/O happens while the lock is held.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Users:        make([]models.User, 0, len(s.users)),
		Ads:          make([]models.Ad, 0, len(s.ads)),
		Carts:        make([]CartEntry, 0, len(s.carts)),
		Transactions: append([]models.Transaction(nil), s.transactions...),
		Purchases:    append([]models.PurchaseRecord(nil), s.purchases...),
	}

	for _, u := range s.users {
		snap.Users = append(snap.Users, u)
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].Username < snap.Users[j].Username })

	for _, ad := range s.ads {
		snap.Ads = append(snap.Ads, ad)
	}
	sortAds(snap.Ads)

	for username, ids := range s.carts {
		items := make([]int, len(ids))
		copy(items, ids)
		snap.Carts = append(snap.Carts, CartEntry{Username: username, Items: items})
	}
	sort.Slice(snap.Carts, func(i, j int) bool { return snap.Carts[i].Username < snap.Carts[j].Username })

	return snap
}

// Restore replaces all state with the snapshot's contents. The next ad id is
// re-derived as one past the highest restored id, so ids are never reused
// across restarts.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]models.User, len(snap.Users))
	for _, u := range snap.Users {
		s.users[u.Username] = u
	}

	s.ads = make(map[int]models.Ad, len(snap.Ads))
	s.nextAdID = 1
	for _, ad := range snap.Ads {
		s.ads[ad.ID] = ad
		if ad.ID >= s.nextAdID {
			s.nextAdID = ad.ID + 1
		}
	}

	s.carts = make(map[string][]int, len(snap.Carts))
	for _, c := range snap.Carts {
		items := make([]int, len(c.Items))
		copy(items, c.Items)
		s.carts[c.Username] = items
	}

	s.transactions = append([]models.Transaction(nil), snap.Transactions...)
	s.purchases = append([]models.PurchaseRecord(nil), snap.Purchases...)
}

// SaveFile writes the current snapshot to path as indented JSON.
func (s *Store) SaveFile(path string) error {
	snap := s.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadFile restores state from path. A missing file is not an error: the
// store starts empty on first run.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("[STORE] No snapshot at %s, starting empty", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	s.Restore(snap)
	log.Printf("[STORE] Restored %d users, %d ads from %s", len(snap.Users), len(snap.Ads), path)
	return nil
}
