package checkout

import (
	"context"
	"fmt"

	"vendora/db"
	"vendora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoadCartSnapshot reads the buyer's cart and, for each line, the current
// product and shop records as of the start of checkout. A missing product or
// shop leaves the corresponding pointer nil for the validator to report.
func LoadCartSnapshot(ctx context.Context, userID string) (*models.CartSnapshot, error) {
	var cart models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCartEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	snap := &models.CartSnapshot{UserID: userID, Lines: make([]models.SnapshotLine, 0, len(cart.Lines))}
	for _, line := range cart.Lines {
		sl := models.SnapshotLine{CartLine: line}

		var product models.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": line.ProductID}).Decode(&product); err == nil {
			sl.Product = &product

			var shop models.Shop
			if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": product.ShopID}).Decode(&shop); err == nil {
				sl.Shop = &shop
			}
		}

		snap.Lines = append(snap.Lines, sl)
	}

	return snap, nil
}
