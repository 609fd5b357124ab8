package models

// Ledger transaction kinds. Deposit and sale amounts are positive, withdraw
// and purchase amounts negative.
const (
	TxDeposit  = "deposit"
	TxWithdraw = "withdraw"
	TxPurchase = "purchase"
	TxSale     = "sale"
)

// Transaction is one append-only ledger row. Rows are never mutated or
// deleted once appended.
type Transaction struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	Timestamp      string  `json:"timestamp"`
	Description    string  `json:"description"`
	RelatedAdTitle string  `json:"related_ad_title"`
	RelatedAdID    int     `json:"related_ad_id"`
}

// PurchaseRecord is the immutable history row for one completed sale. The ad
// title and price are denormalized so later edits to the ad cannot rewrite
// history.
type PurchaseRecord struct {
	Buyer  string  `json:"buyer"`
	Seller string  `json:"seller"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Date   string  `json:"date"`
	AdID   int     `json:"ad_id"`
}

// AdminStats is the aggregate view served to administrators.
type AdminStats struct {
	TotalUsers        int `json:"total_users"`
	TotalAds          int `json:"total_ads"`
	PendingAds        int `json:"pending_ads"`
	ApprovedAds       int `json:"approved_ads"`
	RejectedAds       int `json:"rejected_ads"`
	TotalTransactions int `json:"total_transactions"`
	TotalPurchases    int `json:"total_purchases"`
}
