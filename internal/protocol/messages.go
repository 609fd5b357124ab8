package protocol

// Request type tags.
const (
	TypeLogin            = "login"
	TypeSignup           = "signup"
	TypeAddAd            = "add_ad"
	TypeGetAds           = "get_ads"
	TypeAddToCart        = "add_to_cart"
	TypeGetCart          = "get_cart"
	TypeRemoveFromCart   = "remove_from_cart"
	TypePurchaseCart     = "purchase_cart"
	TypeGetWallet        = "get_wallet"
	TypeWalletDeposit    = "wallet_deposit"
	TypeWalletWithdraw   = "wallet_withdraw"
	TypeGetTransactions  = "get_transactions"
	TypeGetProfile       = "get_profile"
	TypeGetUserAds       = "get_user_ads"
	TypeGetUserPurchases = "get_user_purchases"
	TypeGetUserSales     = "get_user_sales"
	TypeGetPendingAds    = "get_pending_ads"
	TypeGetApprovedAds   = "get_approved_ads"
	TypeGetRejectedAds   = "get_rejected_ads"
	TypeApproveAd        = "approve_ad"
	TypeRejectAd         = "reject_ad"
	TypeGetAdminStats    = "get_admin_stats"
)

// Request variants. Validation tags are enforced by the router before
// dispatch; requests whose response cannot express a failure (pure reads)
// carry no tags and fall back to zeroed defaults instead.

type LoginRequest struct {
	Username     string `json:"username" validate:"required"`
	PasswordHash string `json:"password_hash" validate:"required"`
}

type SignupRequest struct {
	Username     string `json:"username" validate:"required"`
	PasswordHash string `json:"password_hash" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

type AddAdRequest struct {
	Username    string  `json:"username" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category"`
	ImageBase64 string  `json:"image_base64"`
}

type GetAdsRequest struct {
	Status string `json:"status"`
}

type CartItemRequest struct {
	Username string `json:"username" validate:"required"`
	AdID     int    `json:"ad_id" validate:"required,gt=0"`
}

type PurchaseCartRequest struct {
	Username string `json:"username" validate:"required"`
}

type WalletAmountRequest struct {
	Username string  `json:"username" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

type UsernameRequest struct {
	Username string `json:"username"`
}

type AdIDRequest struct {
	AdID int `json:"ad_id" validate:"required,gt=0"`
}

// Response variants.

// StatusResponse is the shared success/message shape used by signup,
// add_to_cart, remove_from_cart, approve_ad and reject_ad responses.
type StatusResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	IsAdmin bool   `json:"is_admin"`
}

type AddAdResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	AdID    int    `json:"ad_id,omitempty"`
}

// AdDetail is the full denormalized ad summary returned by get_ads.
type AdDetail struct {
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

type GetAdsResponse struct {
	Type string     `json:"type"`
	Ads  []AdDetail `json:"ads"`
}

// CartItem is one approved cart entry in the get_cart response.
type CartItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Owner    string  `json:"owner"`
}

type GetCartResponse struct {
	Type       string     `json:"type"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

type PurchaseCartResponse struct {
	Type       string  `json:"type"`
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	NewBalance float64 `json:"new_balance"`
}

type GetWalletResponse struct {
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

// WalletOpResponse answers wallet_deposit and wallet_withdraw.
type WalletOpResponse struct {
	Type       string  `json:"type"`
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	NewBalance float64 `json:"new_balance"`
}

// TransactionItem is one ledger row in the get_transactions response.
type TransactionItem struct {
	TxType         string  `json:"type"`
	Amount         float64 `json:"amount"`
	Timestamp      string  `json:"timestamp"`
	Description    string  `json:"description"`
	RelatedAdTitle string  `json:"related_ad_title"`
	RelatedAdID    int     `json:"related_ad_id"`
}

type GetTransactionsResponse struct {
	Type         string            `json:"type"`
	Transactions []TransactionItem `json:"transactions"`
}

type GetProfileResponse struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	JoinDate  string `json:"join_date"`
	AdsCount  int    `json:"ads_count"`
	Purchases int    `json:"purchases"`
	Sales     int    `json:"sales"`
}

// UserAdSummary is one row of the get_user_ads response.
type UserAdSummary struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
}

type GetUserAdsResponse struct {
	Type string          `json:"type"`
	Ads  []UserAdSummary `json:"ads"`
}

// PurchaseItem is one row of the get_user_purchases response.
type PurchaseItem struct {
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Date   string  `json:"date"`
	Seller string  `json:"seller"`
}

type GetUserPurchasesResponse struct {
	Type      string         `json:"type"`
	Purchases []PurchaseItem `json:"purchases"`
}

// SaleItem is one row of the get_user_sales response.
type SaleItem struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Date  string  `json:"date"`
	Buyer string  `json:"buyer"`
}

type GetUserSalesResponse struct {
	Type  string     `json:"type"`
	Sales []SaleItem `json:"sales"`
}

// ModerationAdSummary is one row of the admin pending/approved/rejected
// listings, including the owner.
type ModerationAdSummary struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Owner    string  `json:"owner"`
}

type ModerationAdsResponse struct {
	Type string                `json:"type"`
	Ads  []ModerationAdSummary `json:"ads"`
}

type AdminStatsResponse struct {
	Type              string `json:"type"`
	TotalUsers        int    `json:"total_users"`
	TotalAds          int    `json:"total_ads"`
	PendingAds        int    `json:"pending_ads"`
	ApprovedAds       int    `json:"approved_ads"`
	RejectedAds       int    `json:"rejected_ads"`
	TotalTransactions int    `json:"total_transactions"`
	TotalPurchases    int    `json:"total_purchases"`
}

// ErrorResponse answers a decodable request whose type tag is not
// recognized. Its "error" type distinguishes it from domain failures, which
// always come back in the matching "*_response" shape.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
