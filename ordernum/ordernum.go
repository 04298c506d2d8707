package ordernum

import (
	"context"
	"fmt"

	"vendora/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo assigns sequential human-readable order numbers from a counters
// document. Numbers are never client-supplied; the commit engine calls Next
// once per order, inside the checkout transaction.
type Mongo struct {
	Prefix string
}

func (g *Mongo) Next(ctx context.Context) (string, error) {
	res := db.CounterCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "orders"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return "", fmt.Errorf("order number sequence: %w", err)
	}

	return Format(g.Prefix, counter.Seq), nil
}

// Format renders a sequence value as an order number, e.g. ORD-000042.
func Format(prefix string, seq int64) string {
	if prefix == "" {
		prefix = "ORD"
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}
