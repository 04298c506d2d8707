package models

import "time"

// CartLine is one buyer-selected product + quantity entry. Title, image and
// unit price are denormalized at add time for display.
type CartLine struct {
	LineID    string    `json:"lineId" bson:"lineid"`
	ProductID string    `json:"productId" bson:"productid"`
	ShopID    string    `json:"shopId" bson:"shopid"`
	ShopName  string    `json:"shopName" bson:"shopname"`
	Title     string    `json:"title" bson:"title"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	UnitPrice float64   `json:"unitPrice" bson:"unitprice"`
	AddedAt   time.Time `json:"addedAt" bson:"addedat"`
}

// Cart is one document per buyer holding the ordered line sequence.
type Cart struct {
	UserID    string     `json:"userId" bson:"userid"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedat"`
}

// SnapshotLine pairs a cart line with the catalog records as they were read
// at the start of checkout. Product or Shop is nil when no longer resolvable.
type SnapshotLine struct {
	CartLine
	Product *Product `json:"-" bson:"-"`
	Shop    *Shop    `json:"-" bson:"-"`
}

// CartSnapshot is the buyer's cart as of the start of a checkout attempt.
type CartSnapshot struct {
	UserID string
	Lines  []SnapshotLine
}
