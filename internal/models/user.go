package models

// User is a marketplace account keyed by username. The password hash is an
// opaque string supplied by the client at signup; the server never sees a
// plaintext password.
type User struct {
	Username       string  `json:"username"`
	PasswordHash   string  `json:"password_hash"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	JoinDate       string  `json:"join_date"`
	WalletBalance  float64 `json:"wallet_balance"`
	AdsCount       int     `json:"ads_count"`
	PurchasesCount int     `json:"purchases_count"`
	SalesCount     int     `json:"sales_count"`
	IsAdmin        bool    `json:"is_admin"`
}
