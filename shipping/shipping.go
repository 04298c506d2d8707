package shipping

import (
	"fmt"

	"vendora/models"
	"vendora/utils"
)

// Option is one shipping method offered for a destination.
type Option struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// Flat per-seller rates in rand. Standard shipping is free at or above the
// freeThreshold subtotal for that seller's items.
const (
	standardRate  = 60.0
	expressRate   = 120.0
	overnightRate = 250.0
	freeThreshold = 1000.0
)

// Calculator quotes shipping costs and delivery estimates. All methods are
// pure functions of their inputs; the checkout engine neither retries nor
// caches beyond a single attempt.
type Calculator struct{}

// Quote returns the shipping cost for one seller's items to dest.
func (Calculator) Quote(items []models.OrderItem, dest models.Address, method string) (float64, error) {
	var subtotal float64
	for _, it := range items {
		subtotal += float64(it.Quantity) * it.UnitPrice
	}

	switch method {
	case "standard":
		if subtotal >= freeThreshold {
			return 0, nil
		}
		return standardRate, nil
	case "express":
		return expressRate, nil
	case "overnight":
		return overnightRate, nil
	default:
		return 0, fmt.Errorf("unknown shipping method %q", method)
	}
}

// Estimate returns a display-only delivery window. Cross-province standard
// deliveries get an extra buffer day.
func (Calculator) Estimate(method string, origin *models.Shop, dest models.Address) string {
	switch method {
	case "express":
		return "1-2 business days"
	case "overnight":
		return "Next business day"
	default:
		if origin != nil && origin.Province != "" && origin.Province != dest.Province {
			return "4-7 business days"
		}
		return "3-5 business days"
	}
}

// CartOptions lists the available methods for a whole cart, costing each
// method as the sum of per-seller quotes (each seller ships separately).
func (c Calculator) CartOptions(perSeller [][]models.OrderItem, dest models.Address) []Option {
	opts := []Option{
		{ID: "standard", Name: "Standard Delivery", Description: "3-5 business days"},
		{ID: "express", Name: "Express Delivery", Description: "1-2 business days"},
		{ID: "overnight", Name: "Overnight Delivery", Description: "Next business day"},
	}
	for i := range opts {
		var total float64
		for _, items := range perSeller {
			cost, err := c.Quote(items, dest, opts[i].ID)
			if err != nil {
				continue
			}
			total += cost
		}
		opts[i].Cost = utils.Round2(total)
	}
	return opts
}

// Options lists the methods available for a given per-seller subtotal.
func (c Calculator) Options(subtotal float64, dest models.Address) []Option {
	items := []models.OrderItem{{Quantity: 1, UnitPrice: subtotal}}

	opts := make([]Option, 0, 3)
	for _, m := range []struct {
		id, name, desc string
	}{
		{"standard", "Standard Delivery", "3-5 business days"},
		{"express", "Express Delivery", "1-2 business days"},
		{"overnight", "Overnight Delivery", "Next business day"},
	} {
		cost, err := c.Quote(items, dest, m.id)
		if err != nil {
			continue
		}
		desc := m.desc
		if m.id == "standard" && cost == 0 {
			desc = "3-5 business days (free over R1000)"
		}
		opts = append(opts, Option{ID: m.id, Name: m.name, Description: desc, Cost: utils.Round2(cost)})
	}
	return opts
}
