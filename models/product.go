package models

import "time"

// Product is a catalog entry owned by a shop. Stock is the only contended
// field; checkout decrements it inside a transaction.
type Product struct {
	ProductID   string    `json:"productId" bson:"productid"`
	ShopID      string    `json:"shopId" bson:"shopid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
