package checkout

import (
	"context"
	"errors"
	"fmt"

	"vendora/models"
)

// ErrCartEmpty is returned when the buyer has no cart or it has zero lines.
// Terminal and non-retryable; surfaced as a client error, not an engine fault.
var ErrCartEmpty = errors.New("cart is empty")

// Issue codes reported per cart line by the validator.
const (
	IssueProductMissing      = "product_missing"
	IssueProductOwnerMissing = "product_owner_missing"
	IssueInsufficientStock   = "insufficient_stock"
)

// LineIssue describes why one cart line failed validation.
type LineIssue struct {
	LineID    string `json:"lineId"`
	ProductID string `json:"productId"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available int    `json:"available,omitempty"`
	Requested int    `json:"requested,omitempty"`
}

// ValidationError carries the full per-line issue list back to the caller so
// the buyer can see which lines need attention.
type ValidationError struct {
	Issues []LineIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cart validation failed: %d line(s) need attention", len(e.Issues))
}

// BuyerIdentity is the verified buyer, resolved by the auth middleware and
// passed in explicitly. The engine never reads identity from ambient state.
type BuyerIdentity struct {
	UserID   string
	Username string
	Email    string
}

// CheckoutRequest is the engine's input, already normalized by the handler.
type CheckoutRequest struct {
	Address        models.Address
	ShippingMethod string
	PaymentMethod  string
	Notes          string
}

// OrderDraft is the ephemeral per-seller grouping of validated cart lines,
// prior to persistence.
type OrderDraft struct {
	ShopID           string
	ShopName         string
	Shop             *models.Shop
	Items            []models.OrderItem
	Subtotal         float64
	ShippingCost     float64
	Tax              float64
	Total            float64
	DeliveryEstimate string
}

// OrderSummary is one committed order in the checkout response.
type OrderSummary struct {
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
	SellerID    string  `json:"sellerId"`
	SellerName  string  `json:"sellerName"`
}

// CheckoutResult is the engine's output. Payment is nil when the gateway
// handoff could not be built; the orders remain valid and payable later.
type CheckoutResult struct {
	Orders  []OrderSummary        `json:"orders"`
	Payment *models.PaymentIntent `json:"payment"`
}

// ShippingQuoter is the shipping collaborator: pure functions of
// (items, destination, method). Satisfied by shipping.Calculator.
type ShippingQuoter interface {
	Quote(items []models.OrderItem, dest models.Address, method string) (float64, error)
	Estimate(method string, origin *models.Shop, dest models.Address) string
}

// NumberGenerator assigns order numbers at insert time. Satisfied by
// ordernum.Mongo.
type NumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

// Gateway builds the signed payment handoff for committed orders. Satisfied
// by payfast.Client.
type Gateway interface {
	BuildIntent(orders []models.Order, buyerName, buyerEmail string) (*models.PaymentIntent, error)
}
