package shipping

import (
	"encoding/json"
	"testing"

	"vendora/models"
)

func dest(province string) models.Address {
	return models.Address{
		Recipient:  "Test Buyer",
		Street:     "1 Main Rd",
		City:       "Johannesburg",
		Province:   province,
		PostalCode: "2000",
	}
}

func items(qty int, price float64) []models.OrderItem {
	return []models.OrderItem{{ProductID: "p1", Quantity: qty, UnitPrice: price}}
}

func TestQuoteRates(t *testing.T) {
	c := Calculator{}
	tests := []struct {
		method string
		want   float64
	}{
		{"standard", 60},
		{"express", 120},
		{"overnight", 250},
	}
	for _, tt := range tests {
		got, err := c.Quote(items(1, 100), dest("Gauteng"), tt.method)
		if err != nil {
			t.Fatalf("Quote(%s): %v", tt.method, err)
		}
		if got != tt.want {
			t.Errorf("Quote(%s): want %.2f, got %.2f", tt.method, tt.want, got)
		}
	}
}

func TestQuoteFreeStandardOverThreshold(t *testing.T) {
	c := Calculator{}

	got, err := c.Quote(items(1, 1000), dest("Gauteng"), "standard")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if got != 0 {
		t.Errorf("standard at R1000 should be free, got %.2f", got)
	}

	// free threshold does not apply to express
	got, err = c.Quote(items(1, 5000), dest("Gauteng"), "express")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if got != 120 {
		t.Errorf("express should never be free, got %.2f", got)
	}
}

func TestQuoteUnknownMethod(t *testing.T) {
	if _, err := (Calculator{}).Quote(items(1, 100), dest("Gauteng"), "carrier-pigeon"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestEstimateCrossProvinceBuffer(t *testing.T) {
	c := Calculator{}
	origin := &models.Shop{ShopID: "s1", Province: "Western Cape"}

	if got := c.Estimate("standard", origin, dest("Gauteng")); got != "4-7 business days" {
		t.Errorf("cross-province standard: got %q", got)
	}
	if got := c.Estimate("standard", origin, dest("Western Cape")); got != "3-5 business days" {
		t.Errorf("same-province standard: got %q", got)
	}
	if got := c.Estimate("overnight", origin, dest("Gauteng")); got != "Next business day" {
		t.Errorf("overnight: got %q", got)
	}
}

func TestCartOptionsSumsPerSeller(t *testing.T) {
	c := Calculator{}
	perSeller := [][]models.OrderItem{
		items(1, 200),  // pays standard
		items(1, 1500), // free standard
	}

	opts := c.CartOptions(perSeller, dest("Gauteng"))
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}

	byID := map[string]Option{}
	for _, o := range opts {
		byID[o.ID] = o
	}
	if byID["standard"].Cost != 60 {
		t.Errorf("standard: want 60 (one free seller), got %.2f", byID["standard"].Cost)
	}
	if byID["express"].Cost != 240 {
		t.Errorf("express: want 240, got %.2f", byID["express"].Cost)
	}
	if byID["overnight"].Cost != 500 {
		t.Errorf("overnight: want 500, got %.2f", byID["overnight"].Cost)
	}
}

func TestOptionJSONShape(t *testing.T) {
	data, err := json.Marshal(Option{ID: "standard", Name: "Standard Delivery", Description: "3-5 business days", Cost: 60})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"standard","name":"Standard Delivery","description":"3-5 business days","cost":60}`
	if string(data) != want {
		t.Errorf("option shape:\nwant %s\ngot  %s", want, data)
	}
}

func TestOptionsMarksFreeStandard(t *testing.T) {
	opts := Calculator{}.Options(1200, dest("Gauteng"))
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if opts[0].ID != "standard" || opts[0].Cost != 0 {
		t.Fatalf("standard should be free at R1200: %+v", opts[0])
	}
	if opts[0].Description != "3-5 business days (free over R1000)" {
		t.Errorf("free standard description: got %q", opts[0].Description)
	}
}
