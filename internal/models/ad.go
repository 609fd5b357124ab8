package models

// Ad moderation statuses. Every ad starts Pending; only an administrator
// moves it to Approved or Rejected, and either transition may be re-applied.
const (
	AdStatusPending  = "Pending"
	AdStatusApproved = "Approved"
	AdStatusRejected = "Rejected"
)

// Ad is a marketplace listing. IDs are assigned by the store, start at 1 and
// are never reused. Only Approved ads are purchasable; a purchase does not
// change the ad's status.
type Ad struct {
	ID          int     `json:"id"`
	Owner       string  `json:"owner"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	ImageBase64 string  `json:"image_base64"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
