package payfast

import (
	"strings"
	"testing"

	"vendora/models"
)

func testConfig() Config {
	return Config{
		MerchantID:  "10000100",
		MerchantKey: "46f0cd694581a",
		ReturnURL:   "https://example.com/return",
		CancelURL:   "https://example.com/cancel",
		NotifyURL:   "https://example.com/notify",
		ProcessURL:  "https://sandbox.payfast.co.za/eng/process",
	}
}

func TestSignDeterministic(t *testing.T) {
	fields := [][2]string{
		{"merchant_id", "10000100"},
		{"amount", "347.50"},
		{"item_name", "Order ORD-000001"},
	}

	a := Sign(fields, "")
	b := Sign(fields, "")
	if a != b {
		t.Fatalf("signature not deterministic: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected 32-char md5 hex, got %q", a)
	}
}

func TestSignSkipsEmptyFields(t *testing.T) {
	with := Sign([][2]string{{"a", "1"}, {"b", ""}, {"c", "2"}}, "")
	without := Sign([][2]string{{"a", "1"}, {"c", "2"}}, "")
	if with != without {
		t.Error("empty fields must not participate in the signature")
	}
}

func TestSignPassphraseChangesSignature(t *testing.T) {
	fields := [][2]string{{"merchant_id", "10000100"}}
	if Sign(fields, "") == Sign(fields, "secret phrase") {
		t.Error("passphrase must alter the signature")
	}
}

func TestBuildIntentSumsOrders(t *testing.T) {
	c := New(testConfig())
	orders := []models.Order{
		{OrderNumber: "ORD-000001", Total: 347.50},
		{OrderNumber: "ORD-000002", Total: 94.50},
	}

	intent, err := c.BuildIntent(orders, "Thabo", "thabo@example.com")
	if err != nil {
		t.Fatalf("BuildIntent: %v", err)
	}

	if intent.Amount != 442.00 {
		t.Errorf("amount: want 442.00, got %.2f", intent.Amount)
	}
	if intent.FormData["amount"] != "442.00" {
		t.Errorf("form amount: got %q", intent.FormData["amount"])
	}
	if intent.FormData["m_payment_id"] != "ORD-000001,ORD-000002" {
		t.Errorf("m_payment_id: got %q", intent.FormData["m_payment_id"])
	}
	if !strings.Contains(intent.FormData["item_name"], "ORD-000001") {
		t.Errorf("item_name missing order number: %q", intent.FormData["item_name"])
	}
	if intent.FormData["signature"] == "" {
		t.Error("signature not set")
	}
	if intent.FormAction != "https://sandbox.payfast.co.za/eng/process" {
		t.Errorf("form action: got %q", intent.FormAction)
	}
}

func TestBuildIntentRequiresOrders(t *testing.T) {
	if _, err := New(testConfig()).BuildIntent(nil, "Thabo", "thabo@example.com"); err == nil {
		t.Fatal("expected error for empty order set")
	}
}

func TestBuildIntentRequiresCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.MerchantID = ""
	orders := []models.Order{{OrderNumber: "ORD-000001", Total: 100}}

	if _, err := New(cfg).BuildIntent(orders, "Thabo", "thabo@example.com"); err == nil {
		t.Fatal("expected error when credentials are missing")
	}
}
