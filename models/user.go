package models

import "time"

// User is a registered buyer or shop owner.
type User struct {
	UserID       string    `json:"userId" bson:"userid"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         []string  `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// Shop is a seller storefront. Every product belongs to exactly one shop.
type Shop struct {
	ShopID      string    `json:"shopId" bson:"shopid"`
	OwnerID     string    `json:"ownerId" bson:"ownerid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	City        string    `json:"city,omitempty" bson:"city,omitempty"`
	Province    string    `json:"province,omitempty" bson:"province,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}
