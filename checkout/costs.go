package checkout

import (
	"fmt"

	"vendora/models"
	"vendora/utils"
)

// TaxRate is the flat VAT rate applied to each seller's subtotal.
const TaxRate = 0.15

// ComputeCosts fills in shipping, tax, total and the delivery estimate for
// one seller draft. Tax and total are computed per draft so every order
// carries its own independently auditable amounts; the sum of rounded seller
// totals may differ by a cent from a single rounded grand total, which is
// accepted (per-seller rounding is what the persisted model assumes).
func ComputeCosts(draft *OrderDraft, dest models.Address, method string, quoter ShippingQuoter) error {
	cost, err := quoter.Quote(draft.Items, dest, method)
	if err != nil {
		return fmt.Errorf("shipping quote for %s: %w", draft.ShopID, err)
	}
	if cost < 0 {
		return fmt.Errorf("shipping quote for %s: negative cost", draft.ShopID)
	}

	draft.ShippingCost = utils.Round2(cost)
	draft.Tax = utils.Round2(draft.Subtotal * TaxRate)
	draft.Total = utils.Round2(draft.Subtotal + draft.ShippingCost + draft.Tax)
	draft.DeliveryEstimate = quoter.Estimate(method, draft.Shop, dest)
	return nil
}
