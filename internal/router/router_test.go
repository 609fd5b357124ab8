package router

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trademart/backend/internal/audit"
	"github.com/trademart/backend/internal/models"
	"github.com/trademart/backend/internal/protocol"
	"github.com/trademart/backend/internal/store"
)

func newTestRouter() (*Router, *store.Store) {
	st := store.New()
	return New(st, audit.NewLogger()), st
}

func dispatch(t *testing.T, r *Router, raw string) any {
	t.Helper()
	env, err := protocol.DecodeRequest([]byte(raw))
	require.NoError(t, err)
	return r.Handle(env)
}

func signup(t *testing.T, r *Router, username string) {
	t.Helper()
	resp := dispatch(t, r, fmt.Sprintf(
		`{"type":"signup","username":%q,"password_hash":"h-%s","name":"%s","email":"%s@example.com","phone":"0912"}`,
		username, username, username, username)).(protocol.StatusResponse)
	require.True(t, resp.Success)
}

func TestRouter_Signup(t *testing.T) {
	r, _ := newTestRouter()

	t.Run("success", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"signup","username":"alice","password_hash":"h1","name":"Alice","email":"a@example.com","phone":"0912"}`).(protocol.StatusResponse)
		assert.Equal(t, "signup_response", resp.Type)
		assert.True(t, resp.Success)
		assert.Equal(t, "Signup successful", resp.Message)
	})

	t.Run("duplicate username", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"signup","username":"alice","password_hash":"h2","name":"Other","email":"o@example.com","phone":"0913"}`).(protocol.StatusResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Username already exists", resp.Message)
	})

	t.Run("missing required fields", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"signup","username":"bob"}`).(protocol.StatusResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid request", resp.Message)
	})
}

func TestRouter_Login(t *testing.T) {
	r, st := newTestRouter()
	signup(t, r, "alice")
	require.NoError(t, st.CreateUser(models.User{Username: "root", PasswordHash: "admin-hash", IsAdmin: true}))

	t.Run("success", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"login","username":"alice","password_hash":"h-alice"}`).(protocol.LoginResponse)
		assert.True(t, resp.Success)
		assert.Equal(t, "Login successful", resp.Message)
		assert.False(t, resp.IsAdmin)
	})

	t.Run("admin flag reported", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"login","username":"root","password_hash":"admin-hash"}`).(protocol.LoginResponse)
		assert.True(t, resp.Success)
		assert.True(t, resp.IsAdmin)
	})

	t.Run("wrong hash and unknown user are indistinguishable", func(t *testing.T) {
		wrongHash := dispatch(t, r, `{"type":"login","username":"alice","password_hash":"nope"}`).(protocol.LoginResponse)
		unknown := dispatch(t, r, `{"type":"login","username":"ghost","password_hash":"nope"}`).(protocol.LoginResponse)
		assert.False(t, wrongHash.Success)
		assert.False(t, unknown.Success)
		assert.Equal(t, "Invalid username or password", wrongHash.Message)
		assert.Equal(t, wrongHash.Message, unknown.Message)
	})

	t.Run("missing fields answer the generic message", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"login","username":"alice"}`).(protocol.LoginResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid username or password", resp.Message)
	})
}

func TestRouter_AddAd(t *testing.T) {
	r, _ := newTestRouter()
	signup(t, r, "bob")

	t.Run("success assigns id and bumps counter", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Chair","description":"Oak","price":40,"category":"Furniture","image_base64":""}`).(protocol.AddAdResponse)
		assert.True(t, resp.Success)
		assert.Equal(t, "Ad submitted", resp.Message)
		assert.Equal(t, 1, resp.AdID)

		profile := dispatch(t, r, `{"type":"get_profile","username":"bob"}`).(protocol.GetProfileResponse)
		assert.Equal(t, 1, profile.AdsCount)
	})

	t.Run("unknown owner", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"add_ad","username":"ghost","title":"X","price":1}`).(protocol.AddAdResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "User not found", resp.Message)
	})

	t.Run("non-positive price is invalid", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"X","price":0}`).(protocol.AddAdResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid request", resp.Message)
	})
}

func TestRouter_GetAds(t *testing.T) {
	r, st := newTestRouter()
	signup(t, r, "bob")
	chair := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Chair","price":40,"category":"Furniture"}`).(protocol.AddAdResponse).AdID
	_ = dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Table","price":90}`).(protocol.AddAdResponse)
	st.SetAdStatus(chair, models.AdStatusApproved)

	t.Run("defaults to Approved", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"get_ads"}`).(protocol.GetAdsResponse)
		require.Len(t, resp.Ads, 1)
		assert.Equal(t, "Chair", resp.Ads[0].Title)
		assert.Equal(t, "bob", resp.Ads[0].Owner)
		assert.Equal(t, models.AdStatusApproved, resp.Ads[0].Status)
	})

	t.Run("explicit status", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"get_ads","status":"Pending"}`).(protocol.GetAdsResponse)
		require.Len(t, resp.Ads, 1)
		assert.Equal(t, "Table", resp.Ads[0].Title)
	})

	t.Run("no matches yields empty array", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"get_ads","status":"Rejected"}`).(protocol.GetAdsResponse)
		assert.NotNil(t, resp.Ads)
		assert.Empty(t, resp.Ads)
	})
}

func TestRouter_Cart(t *testing.T) {
	r, st := newTestRouter()
	signup(t, r, "alice")
	signup(t, r, "bob")
	chair := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Chair","price":40,"category":"Furniture"}`).(protocol.AddAdResponse).AdID
	table := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Table","price":90}`).(protocol.AddAdResponse).AdID
	st.SetAdStatus(chair, models.AdStatusApproved)

	t.Run("pending ad is not available", func(t *testing.T) {
		resp := dispatch(t, r, fmt.Sprintf(`{"type":"add_to_cart","username":"alice","ad_id":%d}`, table)).(protocol.StatusResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Ad not available", resp.Message)
	})

	t.Run("unknown ad is not available", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"add_to_cart","username":"alice","ad_id":999}`).(protocol.StatusResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Ad not available", resp.Message)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := dispatch(t, r, fmt.Sprintf(`{"type":"add_to_cart","username":"ghost","ad_id":%d}`, chair)).(protocol.StatusResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "User not found", resp.Message)
	})

	t.Run("add approved ad and read cart", func(t *testing.T) {
		resp := dispatch(t, r, fmt.Sprintf(`{"type":"add_to_cart","username":"alice","ad_id":%d}`, chair)).(protocol.StatusResponse)
		assert.True(t, resp.Success)
		assert.Equal(t, "Added to cart", resp.Message)

		cart := dispatch(t, r, `{"type":"get_cart","username":"alice"}`).(protocol.GetCartResponse)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, chair, cart.Items[0].ID)
		assert.Equal(t, 40.0, cart.TotalPrice)
	})

	t.Run("rejected-after-carting is silently filtered", func(t *testing.T) {
		st.SetAdStatus(chair, models.AdStatusRejected)
		cart := dispatch(t, r, `{"type":"get_cart","username":"alice"}`).(protocol.GetCartResponse)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalPrice)
		st.SetAdStatus(chair, models.AdStatusApproved)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := dispatch(t, r, fmt.Sprintf(`{"type":"remove_from_cart","username":"alice","ad_id":%d}`, chair)).(protocol.StatusResponse)
			assert.True(t, resp.Success)
			assert.Equal(t, "Removed from cart", resp.Message)
		}
	})
}

func TestRouter_PurchaseScenario(t *testing.T) {
	// The full marketplace flow: alice signs up and deposits 100, bob signs
	// up and lists a Chair for 40, the admin approves it, alice carts it
	// and purchases.
	r, _ := newTestRouter()
	signup(t, r, "alice")
	signup(t, r, "bob")

	deposit := dispatch(t, r, `{"type":"wallet_deposit","username":"alice","amount":100}`).(protocol.WalletOpResponse)
	require.True(t, deposit.Success)
	assert.Equal(t, 100.0, deposit.NewBalance)

	ad := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Chair","description":"Oak chair","price":40,"category":"Furniture"}`).(protocol.AddAdResponse)
	require.True(t, ad.Success)

	approve := dispatch(t, r, fmt.Sprintf(`{"type":"approve_ad","ad_id":%d}`, ad.AdID)).(protocol.StatusResponse)
	require.True(t, approve.Success)

	carted := dispatch(t, r, fmt.Sprintf(`{"type":"add_to_cart","username":"alice","ad_id":%d}`, ad.AdID)).(protocol.StatusResponse)
	require.True(t, carted.Success)

	purchase := dispatch(t, r, `{"type":"purchase_cart","username":"alice"}`).(protocol.PurchaseCartResponse)
	assert.True(t, purchase.Success)
	assert.Equal(t, "Purchase successful", purchase.Message)
	assert.Equal(t, 60.0, purchase.NewBalance)

	bobWallet := dispatch(t, r, `{"type":"get_wallet","username":"bob"}`).(protocol.GetWalletResponse)
	assert.Equal(t, 40.0, bobWallet.Balance)

	stats := dispatch(t, r, `{"type":"get_admin_stats"}`).(protocol.AdminStatsResponse)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalAds)
	assert.Equal(t, 1, stats.ApprovedAds)
	assert.Equal(t, 1, stats.TotalPurchases)
	assert.Equal(t, 3, stats.TotalTransactions) // deposit + purchase + sale

	purchases := dispatch(t, r, `{"type":"get_user_purchases","username":"alice"}`).(protocol.GetUserPurchasesResponse)
	require.Len(t, purchases.Purchases, 1)
	assert.Equal(t, "Chair", purchases.Purchases[0].Title)
	assert.Equal(t, "bob", purchases.Purchases[0].Seller)

	sales := dispatch(t, r, `{"type":"get_user_sales","username":"bob"}`).(protocol.GetUserSalesResponse)
	require.Len(t, sales.Sales, 1)
	assert.Equal(t, "alice", sales.Sales[0].Buyer)

	transactions := dispatch(t, r, `{"type":"get_transactions","username":"alice"}`).(protocol.GetTransactionsResponse)
	require.Len(t, transactions.Transactions, 2)
	assert.Equal(t, "deposit", transactions.Transactions[0].TxType)
	assert.Equal(t, "purchase", transactions.Transactions[1].TxType)
	assert.Equal(t, -40.0, transactions.Transactions[1].Amount)
}

func TestRouter_PurchaseFailures(t *testing.T) {
	r, st := newTestRouter()
	signup(t, r, "alice")
	signup(t, r, "bob")
	chair := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Chair","price":40}`).(protocol.AddAdResponse).AdID
	st.SetAdStatus(chair, models.AdStatusApproved)

	t.Run("unknown buyer", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"purchase_cart","username":"ghost"}`).(protocol.PurchaseCartResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "User not found", resp.Message)
	})

	t.Run("empty cart", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"purchase_cart","username":"alice"}`).(protocol.PurchaseCartResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Cart is empty", resp.Message)
	})

	t.Run("insufficient balance leaves everything untouched", func(t *testing.T) {
		require.True(t, dispatch(t, r, fmt.Sprintf(`{"type":"add_to_cart","username":"alice","ad_id":%d}`, chair)).(protocol.StatusResponse).Success)

		resp := dispatch(t, r, `{"type":"purchase_cart","username":"alice"}`).(protocol.PurchaseCartResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Insufficient balance", resp.Message)

		cart := dispatch(t, r, `{"type":"get_cart","username":"alice"}`).(protocol.GetCartResponse)
		assert.Len(t, cart.Items, 1)
		stats := dispatch(t, r, `{"type":"get_admin_stats"}`).(protocol.AdminStatsResponse)
		assert.Zero(t, stats.TotalPurchases)
	})
}

func TestRouter_Wallet(t *testing.T) {
	r, _ := newTestRouter()
	signup(t, r, "alice")

	t.Run("deposit then withdraw", func(t *testing.T) {
		dep := dispatch(t, r, `{"type":"wallet_deposit","username":"alice","amount":50}`).(protocol.WalletOpResponse)
		assert.True(t, dep.Success)
		assert.Equal(t, "Deposit successful", dep.Message)
		assert.Equal(t, 50.0, dep.NewBalance)

		wd := dispatch(t, r, `{"type":"wallet_withdraw","username":"alice","amount":20}`).(protocol.WalletOpResponse)
		assert.True(t, wd.Success)
		assert.Equal(t, "Withdraw successful", wd.Message)
		assert.Equal(t, 30.0, wd.NewBalance)
	})

	t.Run("overdraw", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"wallet_withdraw","username":"alice","amount":1000}`).(protocol.WalletOpResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Insufficient balance", resp.Message)
	})

	t.Run("invalid amounts", func(t *testing.T) {
		for _, raw := range []string{
			`{"type":"wallet_deposit","username":"alice","amount":0}`,
			`{"type":"wallet_deposit","username":"alice","amount":-5}`,
			`{"type":"wallet_deposit","username":"alice"}`,
			`{"type":"wallet_withdraw","username":"alice","amount":-5}`,
		} {
			resp := dispatch(t, r, raw).(protocol.WalletOpResponse)
			assert.False(t, resp.Success)
			assert.Equal(t, "Invalid request", resp.Message)
		}
	})

	t.Run("deposit for unknown user", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"wallet_deposit","username":"ghost","amount":5}`).(protocol.WalletOpResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid request", resp.Message)
	})

	t.Run("get_wallet for unknown user is zero", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"get_wallet","username":"ghost"}`).(protocol.GetWalletResponse)
		assert.Zero(t, resp.Balance)
	})
}

func TestRouter_Profile(t *testing.T) {
	r, _ := newTestRouter()
	signup(t, r, "alice")

	t.Run("known user", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"get_profile","username":"alice"}`).(protocol.GetProfileResponse)
		assert.Equal(t, "alice", resp.Name)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.NotEmpty(t, resp.JoinDate)
	})

	t.Run("absent user yields zeroed defaults", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"get_profile","username":"ghost"}`).(protocol.GetProfileResponse)
		assert.Equal(t, "get_profile_response", resp.Type)
		assert.Empty(t, resp.Name)
		assert.Zero(t, resp.AdsCount)

		ads := dispatch(t, r, `{"type":"get_user_ads","username":"ghost"}`).(protocol.GetUserAdsResponse)
		assert.Empty(t, ads.Ads)
		purchases := dispatch(t, r, `{"type":"get_user_purchases","username":"ghost"}`).(protocol.GetUserPurchasesResponse)
		assert.Empty(t, purchases.Purchases)
	})
}

func TestRouter_Moderation(t *testing.T) {
	r, _ := newTestRouter()
	signup(t, r, "bob")
	chair := dispatch(t, r, `{"type":"add_ad","username":"bob","title":"Chair","price":40,"category":"Furniture"}`).(protocol.AddAdResponse).AdID

	t.Run("pending list includes owner", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"get_pending_ads"}`).(protocol.ModerationAdsResponse)
		assert.Equal(t, "get_pending_ads_response", resp.Type)
		require.Len(t, resp.Ads, 1)
		assert.Equal(t, "bob", resp.Ads[0].Owner)
	})

	t.Run("approve then reject lands on Rejected", func(t *testing.T) {
		approve := dispatch(t, r, fmt.Sprintf(`{"type":"approve_ad","ad_id":%d}`, chair)).(protocol.StatusResponse)
		assert.True(t, approve.Success)
		assert.Equal(t, "Ad approved", approve.Message)

		reject := dispatch(t, r, fmt.Sprintf(`{"type":"reject_ad","ad_id":%d}`, chair)).(protocol.StatusResponse)
		assert.True(t, reject.Success)
		assert.Equal(t, "Ad rejected", reject.Message)

		rejected := dispatch(t, r, `{"type":"get_rejected_ads"}`).(protocol.ModerationAdsResponse)
		require.Len(t, rejected.Ads, 1)
		assert.Equal(t, chair, rejected.Ads[0].ID)

		stats := dispatch(t, r, `{"type":"get_admin_stats"}`).(protocol.AdminStatsResponse)
		assert.Equal(t, 1, stats.RejectedAds)
		assert.Zero(t, stats.ApprovedAds)
	})

	t.Run("re-approve from Rejected is permitted", func(t *testing.T) {
		approve := dispatch(t, r, fmt.Sprintf(`{"type":"approve_ad","ad_id":%d}`, chair)).(protocol.StatusResponse)
		assert.True(t, approve.Success)
		approved := dispatch(t, r, `{"type":"get_approved_ads"}`).(protocol.ModerationAdsResponse)
		assert.Len(t, approved.Ads, 1)
	})

	t.Run("unknown ad", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"approve_ad","ad_id":999}`).(protocol.StatusResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Ad not found", resp.Message)
	})

	t.Run("missing ad_id is invalid", func(t *testing.T) {
		resp := dispatch(t, r, `{"type":"reject_ad"}`).(protocol.StatusResponse)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid request", resp.Message)
	})
}

func TestRouter_UnknownType(t *testing.T) {
	r, _ := newTestRouter()
	resp := dispatch(t, r, `{"type":"teleport"}`).(protocol.ErrorResponse)
	assert.Equal(t, "error", resp.Type)
	assert.Equal(t, "Unknown request type", resp.Message)
}
