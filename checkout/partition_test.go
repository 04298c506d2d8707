package checkout

import (
	"testing"

	"vendora/models"
)

func TestPartitionBySellerSingleShop(t *testing.T) {
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
	d := drafts[0]
	if d.ShopID != "s1" {
		t.Errorf("expected shop s1, got %s", d.ShopID)
	}
	if len(d.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(d.Items))
	}
	if d.Subtotal != 250 {
		t.Errorf("expected subtotal 250, got %.2f", d.Subtotal)
	}
}

func TestPartitionBySellerStableFirstSeenOrder(t *testing.T) {
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines: []models.SnapshotLine{
			snapLine("l1", "p1", "sB", 1, 10, 5),
			snapLine("l2", "p2", "sA", 1, 20, 5),
			snapLine("l3", "p3", "sB", 1, 30, 5),
		},
	}

	drafts := PartitionBySeller(snap)
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].ShopID != "sB" || drafts[1].ShopID != "sA" {
		t.Errorf("drafts not in first-seen order: %s, %s", drafts[0].ShopID, drafts[1].ShopID)
	}
	if len(drafts[0].Items) != 2 || drafts[0].Subtotal != 40 {
		t.Errorf("sB draft wrong: %d items, subtotal %.2f", len(drafts[0].Items), drafts[0].Subtotal)
	}
	if len(drafts[1].Items) != 1 || drafts[1].Subtotal != 20 {
		t.Errorf("sA draft wrong: %d items, subtotal %.2f", len(drafts[1].Items), drafts[1].Subtotal)
	}
}

func TestPartitionBySellerNoCrossLeakage(t *testing.T) {
	// Scenario B: seller A gets 1×R200, seller B gets 3×R10, nothing shared
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines: []models.SnapshotLine{
			snapLine("l1", "pA", "sA", 1, 200, 10),
			snapLine("l2", "pB", "sB", 3, 10, 10),
		},
	}

	drafts := PartitionBySeller(snap)
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	for _, d := range drafts {
		for _, item := range d.Items {
			owner := "sA"
			if item.ProductID == "pB" {
				owner = "sB"
			}
			if owner != d.ShopID {
				t.Errorf("item %s leaked into draft for %s", item.ProductID, d.ShopID)
			}
		}
	}
	if drafts[0].Subtotal != 200 || drafts[1].Subtotal != 30 {
		t.Errorf("expected subtotals 200 and 30, got %.2f and %.2f", drafts[0].Subtotal, drafts[1].Subtotal)
	}
}

func TestPartitionBySellerSnapshotCarriesProductData(t *testing.T) {
	snap := &models.CartSnapshot{
		UserID: "buyer1",
		Lines:  []models.SnapshotLine{snapLine("l1", "p1", "s1", 1, 100, 5)},
	}

	drafts := PartitionBySeller(snap)
	item := drafts[0].Items[0]
	if item.Snapshot.Title != "item p1" || item.Snapshot.Price != 100 {
		t.Errorf("product snapshot not populated: %+v", item.Snapshot)
	}
}
