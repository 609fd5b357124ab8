// Package audit emits structured JSON events for every monetary movement
// and moderation decision, correlated by a per-operation id.
package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	EventType   string    `json:"event_type"`
	OperationID string    `json:"operation_id"`
	Username    string    `json:"username"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Details     any       `json:"details,omitempty"`
}

type Logger struct{}

func NewLogger() *Logger {
	return &Logger{}
}

// LogWallet records a deposit or withdrawal and returns the operation id.
func (a *Logger) LogWallet(eventType, username string, amount, newBalance float64) string {
	opID := uuid.New().String()
	a.log(Event{
		Timestamp:   time.Now(),
		EventType:   eventType,
		OperationID: opID,
		Username:    username,
		Amount:      amount,
		Status:      "SUCCESS",
		Details:     map[string]float64{"new_balance": newBalance},
	})
	return opID
}

// LogPurchase records a settled cart purchase.
func (a *Logger) LogPurchase(buyer string, total float64, items int) string {
	opID := uuid.New().String()
	a.log(Event{
		Timestamp:   time.Now(),
		EventType:   "PURCHASE",
		OperationID: opID,
		Username:    buyer,
		Amount:      total,
		Status:      "SUCCESS",
		Details:     map[string]int{"items": items},
	})
	return opID
}

// LogModeration records an admin approve/reject decision on an ad.
func (a *Logger) LogModeration(adID int, status string) string {
	opID := uuid.New().String()
	a.log(Event{
		Timestamp:   time.Now(),
		EventType:   "MODERATION",
		OperationID: opID,
		Status:      "SUCCESS",
		Details:     map[string]any{"ad_id": adID, "new_status": status},
	})
	return opID
}

// LogFailure records a rejected monetary operation.
func (a *Logger) LogFailure(eventType, username string, reason string) {
	a.log(Event{
		Timestamp:   time.Now(),
		EventType:   eventType,
		OperationID: uuid.New().String(),
		Username:    username,
		Status:      "FAILED",
		Details:     map[string]string{"reason": reason},
	})
}

func (a *Logger) log(event Event) {
	data, _ := json.Marshal(event)
	log.Printf("AUDIT: %s", string(data))
}
