package checkout

import (
	"errors"
	"testing"

	"vendora/models"
	"vendora/shipping"
)

type fakeQuoter struct {
	cost float64
	err  error
}

func (f fakeQuoter) Quote(items []models.OrderItem, dest models.Address, method string) (float64, error) {
	return f.cost, f.err
}

func (f fakeQuoter) Estimate(method string, origin *models.Shop, dest models.Address) string {
	return "3-5 business days"
}

func gautengDest() models.Address {
	return models.Address{
		Recipient:  "Test Buyer",
		Street:     "1 Main Rd",
		City:       "Johannesburg",
		Province:   "Gauteng",
		PostalCode: "2000",
		Phone:      "0110000000",
	}
}

func TestComputeCostsStandardOrder(t *testing.T) {
	// 2×R100 + 1×R50 = R250, standard shipping R60, 15% VAT R37.50
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines: []models.SnapshotLine{
			snapLine("l1", "p1", "s1", 2, 100, 10),
			snapLine("l2", "p2", "s1", 1, 50, 5),
		},
	}
	drafts := PartitionBySeller(snap)
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}

	if err := ComputeCosts(drafts[0], gautengDest(), "standard", shipping.Calculator{}); err != nil {
		t.Fatalf("ComputeCosts: %v", err)
	}

	d := drafts[0]
	if d.Subtotal != 250 {
		t.Errorf("subtotal: want 250, got %.2f", d.Subtotal)
	}
	if d.ShippingCost != 60 {
		t.Errorf("shipping: want 60, got %.2f", d.ShippingCost)
	}
	if d.Tax != 37.50 {
		t.Errorf("tax: want 37.50, got %.2f", d.Tax)
	}
	if d.Total != 347.50 {
		t.Errorf("total: want 347.50, got %.2f", d.Total)
	}
	if d.DeliveryEstimate == "" {
		t.Error("delivery estimate not set")
	}
}

func TestComputeCostsPerSellerIndependence(t *testing.T) {
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines: []models.SnapshotLine{
			snapLine("l1", "pA", "sA", 1, 200, 10),
			snapLine("l2", "pB", "sB", 3, 10, 10),
		},
	}
	drafts := PartitionBySeller(snap)
	for _, d := range drafts {
		if err := ComputeCosts(d, gautengDest(), "standard", shipping.Calculator{}); err != nil {
			t.Fatalf("ComputeCosts %s: %v", d.ShopID, err)
		}
	}

	// each seller pays its own shipping and tax
	wantA := 200 + 60 + 30.0 // subtotal + standard + 15%
	wantB := 30 + 60 + 4.50  // seller B is costed on its own subtotal
	if drafts[0].Total != wantA {
		t.Errorf("seller A total: want %.2f, got %.2f", wantA, drafts[0].Total)
	}
	if drafts[1].Total != wantB {
		t.Errorf("seller B total: want %.2f, got %.2f", wantB, drafts[1].Total)
	}
}

func TestComputeCostsRoundsToCents(t *testing.T) {
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines:  []models.SnapshotLine{snapLine("l1", "p1", "s1", 3, 33.33, 10)},
	}
	drafts := PartitionBySeller(snap)
	if err := ComputeCosts(drafts[0], gautengDest(), "standard", shipping.Calculator{}); err != nil {
		t.Fatalf("ComputeCosts: %v", err)
	}

	d := drafts[0]
	if d.Subtotal != 99.99 {
		t.Errorf("subtotal: want 99.99, got %v", d.Subtotal)
	}
	// 99.99 * 0.15 = 14.9985 → 15.00
	if d.Tax != 15.00 {
		t.Errorf("tax: want 15.00, got %v", d.Tax)
	}
	if d.Total != 174.99 {
		t.Errorf("total: want 174.99, got %v", d.Total)
	}
}

func TestComputeCostsUnknownMethod(t *testing.T) {
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines:  []models.SnapshotLine{snapLine("l1", "p1", "s1", 1, 100, 10)},
	}
	drafts := PartitionBySeller(snap)

	if err := ComputeCosts(drafts[0], gautengDest(), "teleport", shipping.Calculator{}); err == nil {
		t.Fatal("expected error for unknown shipping method")
	}
}

func TestComputeCostsQuoterFailure(t *testing.T) {
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines:  []models.SnapshotLine{snapLine("l1", "p1", "s1", 1, 100, 10)},
	}
	drafts := PartitionBySeller(snap)

	if err := ComputeCosts(drafts[0], gautengDest(), "standard", fakeQuoter{err: errors.New("carrier down")}); err == nil {
		t.Fatal("expected quoter error to propagate")
	}
	if err := ComputeCosts(drafts[0], gautengDest(), "standard", fakeQuoter{cost: -5}); err == nil {
		t.Fatal("expected negative quote to be rejected")
	}
}
