package checkout

import (
	"errors"
	"testing"

	"vendora/models"
)

type fakeGateway struct {
	calls  int
	intent *models.PaymentIntent
	err    error
}

func (f *fakeGateway) BuildIntent(orders []models.Order, buyerName, buyerEmail string) (*models.PaymentIntent, error) {
	f.calls++
	return f.intent, f.err
}

func TestBuildPaymentGatewayFailureIsSoft(t *testing.T) {
	// Orders are already committed; a gateway fault must not surface as an
	// error, only as a nil payment.
	e := &Engine{Gateway: &fakeGateway{err: errors.New("gateway unreachable")}}
	buyer := BuyerIdentity{UserID: "buyer1", Username: "buyer", Email: "buyer@example.com"}
	orders := []models.Order{{OrderID: "o1", OrderNumber: "ORD-000001", Total: 347.50}}

	if payment := e.buildPayment(orders, buyer, "payfast"); payment != nil {
		t.Fatalf("expected nil payment on gateway failure, got %+v", payment)
	}
}

func TestBuildPaymentPassesIntentThrough(t *testing.T) {
	want := &models.PaymentIntent{
		Amount:     347.50,
		FormAction: "https://sandbox.payfast.co.za/eng/process",
		FormData:   map[string]string{"amount": "347.50"},
	}
	e := &Engine{Gateway: &fakeGateway{intent: want}}
	buyer := BuyerIdentity{UserID: "buyer1", Username: "buyer", Email: "buyer@example.com"}

	got := e.buildPayment([]models.Order{{OrderID: "o1"}}, buyer, "payfast")
	if got != want {
		t.Fatalf("expected intent to pass through unchanged, got %+v", got)
	}
}

func TestBuildPaymentSkipsNonRedirectMethods(t *testing.T) {
	// EFT and cash-on-delivery settle out-of-band: no gateway call, no
	// payment form, and no error either.
	gw := &fakeGateway{intent: &models.PaymentIntent{Amount: 100}}
	e := &Engine{Gateway: gw}
	buyer := BuyerIdentity{UserID: "buyer1", Username: "buyer", Email: "buyer@example.com"}
	orders := []models.Order{{OrderID: "o1", OrderNumber: "ORD-000001", Total: 100}}

	for _, method := range []string{"eft", "cod", "cash"} {
		if payment := e.buildPayment(orders, buyer, method); payment != nil {
			t.Errorf("method %q: expected nil payment, got %+v", method, payment)
		}
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times for non-redirect methods", gw.calls)
	}

	if payment := e.buildPayment(orders, buyer, "PayFast"); payment == nil {
		t.Error("method match should be case-insensitive")
	}
}
