package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/rdx"
	"vendora/shipping"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// checkoutLockTTL bounds the per-buyer redis lock that absorbs double-click
// resubmission while a checkout is in flight.
const checkoutLockTTL = 10 * time.Second

// idempotencyTTL is how long a recorded checkout response can be replayed.
const idempotencyTTL = 24 * time.Hour

type Handler struct {
	Engine *Engine
}

func NewHandler() *Handler {
	return &Handler{Engine: NewEngine()}
}

type addressBody struct {
	Recipient  string `json:"recipient"`
	Street     string `json:"street"`
	Suburb     string `json:"suburb"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Region     string `json:"region"` // tolerated alternate name for province
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

func (a addressBody) toAddress() models.Address {
	province := a.Province
	if province == "" {
		province = a.Region
	}
	return models.Address{
		Recipient:  a.Recipient,
		Street:     a.Street,
		Suburb:     a.Suburb,
		City:       a.City,
		Province:   province,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
	}
}

// POST /api/checkout
func (h *Handler) InitiateCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Address        addressBody `json:"address"`
		ShippingMethod string      `json:"shippingMethod"`
		PaymentMethod  string      `json:"paymentMethod"`
		Notes          string      `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	addr := body.Address.toAddress()
	if addr.Street == "" || addr.City == "" || addr.Province == "" || addr.PostalCode == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shipping address is incomplete")
		return
	}
	if body.ShippingMethod == "" || body.PaymentMethod == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shipping and payment method are required")
		return
	}

	var buyer models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&buyer); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Buyer record not found")
		return
	}

	// Replay a previously committed checkout for the same idempotency key
	// instead of creating duplicate orders.
	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" {
		if cached, err := rdx.RdxGet(idemCacheKey(userID, idemKey)); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	// One in-flight checkout per buyer; a second submit gets told to retry.
	acquired, err := rdx.RdxSetNX("checkout_lock:"+userID, "1", checkoutLockTTL)
	if !respondLockOutcome(w, userID, acquired, err) {
		return
	}
	defer rdx.RdxDel("checkout_lock:" + userID)

	result, err := h.Engine.Checkout(ctx, BuyerIdentity{
		UserID:   buyer.UserID,
		Username: buyer.Username,
		Email:    buyer.Email,
	}, CheckoutRequest{
		Address:        addr,
		ShippingMethod: body.ShippingMethod,
		PaymentMethod:  body.PaymentMethod,
		Notes:          body.Notes,
	})
	if err != nil {
		respondCheckoutError(w, userID, err)
		return
	}

	payload := utils.M{"success": true, "orders": result.Orders, "payment": result.Payment}
	if idemKey != "" {
		if data, err := json.Marshal(payload); err == nil {
			_ = rdx.RdxSetWithTTL(idemCacheKey(userID, idemKey), string(data), idempotencyTTL)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// idemCacheKey scopes replay entries to the buyer, so presenting another
// buyer's idempotency key can never serve their cached checkout.
func idemCacheKey(userID, key string) string {
	return "checkout:idem:" + userID + ":" + key
}

// respondLockOutcome writes the response when the checkout lock was not
// acquired and reports whether checkout may proceed. A redis failure is an
// infrastructure error, not contention.
func respondLockOutcome(w http.ResponseWriter, userID string, acquired bool, err error) bool {
	if err != nil {
		log.Printf("checkout lock for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Checkout failed, please try again")
		return false
	}
	if !acquired {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Checkout already in progress, please retry")
		return false
	}
	return true
}

func respondCheckoutError(w http.ResponseWriter, userID string, err error) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrCartEmpty):
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
	case errors.As(err, &verr):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":   "Some cart items need attention",
			"details": verr.Issues,
		})
	default:
		log.Printf("checkout failed for %s: %v", userID, err)
		msg := "Checkout failed, please try again"
		if os.Getenv("APP_ENV") == "development" {
			msg = err.Error()
		}
		utils.RespondWithError(w, http.StatusInternalServerError, msg)
	}
}

// POST /api/checkout/shipping-options
// Lists the shipping methods and costs for the cart's current contents and a
// destination, so the client can offer the choice before checkout.
func (h *Handler) GetShippingOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		City     string `json:"city"`
		Province string `json:"province"`
		Region   string `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Province == "" {
		body.Province = body.Region
	}
	if body.City == "" || body.Province == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Destination city and province are required")
		return
	}

	snap, err := LoadCartSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartEmpty) {
			utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
			return
		}
		log.Printf("shipping options for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load cart")
		return
	}

	// Group line values by shop; each seller ships separately. Stale lines
	// are tolerated here, the strict validator runs at checkout.
	groups := make(map[string][]models.OrderItem)
	var shopOrder []string
	for _, line := range snap.Lines {
		shopID := line.ShopID
		if line.Product != nil {
			shopID = line.Product.ShopID
		}
		if _, ok := groups[shopID]; !ok {
			shopOrder = append(shopOrder, shopID)
		}
		groups[shopID] = append(groups[shopID], models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	perSeller := make([][]models.OrderItem, 0, len(shopOrder))
	for _, shopID := range shopOrder {
		perSeller = append(perSeller, groups[shopID])
	}

	dest := models.Address{City: body.City, Province: body.Province}
	options := shipping.Calculator{}.CartOptions(perSeller, dest)

	utils.RespondWithJSON(w, http.StatusOK, options)
}
