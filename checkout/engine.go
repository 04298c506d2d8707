package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/mq"
	"vendora/ordernum"
	"vendora/payfast"
	"vendora/shipping"
	"vendora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Engine runs one checkout attempt end to end: snapshot, validate, partition,
// cost, commit, payment handoff. Collaborators are injected so tests can
// substitute them.
type Engine struct {
	Shipping ShippingQuoter
	Numbers  NumberGenerator
	Gateway  Gateway
}

func NewEngine() *Engine {
	return &Engine{
		Shipping: shipping.Calculator{},
		Numbers:  &ordernum.Mongo{Prefix: "ORD"},
		Gateway:  payfast.NewFromEnv(),
	}
}

// Checkout converts the buyer's cart into one committed order per seller.
// Everything before the commit is side-effect free; everything inside the
// commit is atomic; only the payment handoff may fail after effects are
// durable, and that failure is non-fatal (Payment comes back nil).
func (e *Engine) Checkout(ctx context.Context, buyer BuyerIdentity, req CheckoutRequest) (*CheckoutResult, error) {
	snap, err := LoadCartSnapshot(ctx, buyer.UserID)
	if err != nil {
		return nil, err
	}

	if issues := ValidateSnapshot(snap); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	drafts := PartitionBySeller(snap)
	for _, draft := range drafts {
		if err := ComputeCosts(draft, req.Address, req.ShippingMethod, e.Shipping); err != nil {
			return nil, err
		}
	}

	orders, err := e.commit(ctx, buyer, req, drafts)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Orders: make([]OrderSummary, 0, len(orders))}
	for _, o := range orders {
		result.Orders = append(result.Orders, OrderSummary{
			OrderID:     o.OrderID,
			OrderNumber: o.OrderNumber,
			Total:       o.Total,
			SellerID:    o.ShopID,
			SellerName:  o.ShopName,
		})
		mq.EmitOrderEvent(ctx, mq.OrderEvent{
			Type:        "order_created",
			OrderID:     o.OrderID,
			OrderNumber: o.OrderNumber,
			ShopID:      o.ShopID,
			UserID:      o.UserID,
			Status:      o.Status,
			Total:       o.Total,
		})
	}

	result.Payment = e.buildPayment(orders, buyer, req.PaymentMethod)
	return result, nil
}

// paymentNeedsRedirect reports whether the chosen method is settled on a
// hosted gateway page and therefore needs a signed handoff form. Methods like
// EFT or cash on delivery settle out-of-band and get no form.
func paymentNeedsRedirect(method string) bool {
	return strings.EqualFold(method, "payfast")
}

// buildPayment constructs the gateway handoff after the commit is durable.
// Nil for methods that need no redirect. A gateway failure must not roll
// anything back: the orders stay pending and the buyer can retry payment
// out-of-band, so errors are logged and swallowed.
func (e *Engine) buildPayment(orders []models.Order, buyer BuyerIdentity, method string) *models.PaymentIntent {
	if !paymentNeedsRedirect(method) {
		return nil
	}

	intent, err := e.Gateway.BuildIntent(orders, buyer.Username, buyer.Email)
	if err != nil {
		log.Printf("checkout: payment intent for %s failed (orders kept, payment pending): %v", buyer.UserID, err)
		return nil
	}
	return intent
}

// commit applies all order inserts, stock decrements and the cart clear as a
// single MongoDB transaction. Stock is rechecked at decrement time: a filter
// on stock >= quantity guards against a concurrent checkout that consumed the
// same stock between validation and commit. Any failure aborts everything.
func (e *Engine) commit(ctx context.Context, buyer BuyerIdentity, req CheckoutRequest, drafts []*OrderDraft) ([]models.Order, error) {
	session, err := db.Client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	res, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()
		orders := make([]models.Order, 0, len(drafts))

		for _, draft := range drafts {
			number, err := e.Numbers.Next(sc)
			if err != nil {
				return nil, err
			}

			order := models.Order{
				OrderID:          utils.GetUUID(),
				OrderNumber:      number,
				UserID:           buyer.UserID,
				BuyerEmail:       buyer.Email,
				ShopID:           draft.ShopID,
				ShopName:         draft.ShopName,
				Items:            draft.Items,
				Subtotal:         draft.Subtotal,
				ShippingCost:     draft.ShippingCost,
				Tax:              draft.Tax,
				Total:            draft.Total,
				Address:          req.Address,
				ShippingMethod:   req.ShippingMethod,
				DeliveryEstimate: draft.DeliveryEstimate,
				PaymentMethod:    req.PaymentMethod,
				PaymentStatus:    models.PaymentPending,
				Status:           models.OrderPending,
				History: []models.StatusEntry{
					{Status: models.OrderPending, Note: "Order created", At: now},
				},
				Notes:     req.Notes,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if _, err := db.OrderCollection.InsertOne(sc, order); err != nil {
				return nil, fmt.Errorf("insert order for %s: %w", draft.ShopID, err)
			}

			for _, item := range draft.Items {
				upd, err := db.ProductCollection.UpdateOne(sc,
					bson.M{"productid": item.ProductID, "stock": bson.M{"$gte": item.Quantity}},
					bson.M{"$inc": bson.M{"stock": -item.Quantity}, "$set": bson.M{"updated_at": now}},
				)
				if err != nil {
					return nil, fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
				}
				if upd.ModifiedCount != 1 {
					return nil, fmt.Errorf("stock for %s was taken by a concurrent order", item.ProductID)
				}
			}

			orders = append(orders, order)
		}

		if _, err := db.CartCollection.DeleteOne(sc, bson.M{"userid": buyer.UserID}); err != nil {
			return nil, fmt.Errorf("clear cart: %w", err)
		}

		return orders, nil
	})
	if err != nil {
		return nil, err
	}

	return res.([]models.Order), nil
}
