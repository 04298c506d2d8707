package checkout

import (
	"vendora/models"
	"vendora/utils"
)

// PartitionBySeller groups validated lines into one draft per shop. Drafts
// come out in the order each shop's first line was encountered; this ordering
// is stable but cosmetic, callers must not rely on it. Subtotals are
// recomputed from the lines, never trusted from client input.
//
// Lines must have passed validation: Product and Shop are assumed non-nil.
func PartitionBySeller(snap *models.CartSnapshot) []*OrderDraft {
	byShop := make(map[string]*OrderDraft)
	var drafts []*OrderDraft

	for _, line := range snap.Lines {
		shopID := line.Product.ShopID
		draft, ok := byShop[shopID]
		if !ok {
			draft = &OrderDraft{
				ShopID:   shopID,
				ShopName: line.Shop.Name,
				Shop:     line.Shop,
			}
			byShop[shopID] = draft
			drafts = append(drafts, draft)
		}

		image := line.Image
		if image == "" && len(line.Product.Images) > 0 {
			image = line.Product.Images[0]
		}

		draft.Items = append(draft.Items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Snapshot: models.ProductSnapshot{
				Title: line.Product.Name,
				Image: image,
				Price: line.Product.Price,
			},
		})
		draft.Subtotal = utils.Round2(draft.Subtotal + float64(line.Quantity)*line.UnitPrice)
	}

	return drafts
}
