package models

import "time"

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Address is a full postal destination.
type Address struct {
	Recipient  string `json:"recipient" bson:"recipient"`
	Street     string `json:"street" bson:"street"`
	Suburb     string `json:"suburb,omitempty" bson:"suburb,omitempty"`
	City       string `json:"city" bson:"city"`
	Province   string `json:"province" bson:"province"`
	PostalCode string `json:"postalCode" bson:"postalcode"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// ProductSnapshot freezes product display data at purchase time so later
// catalog edits never alter historical orders.
type ProductSnapshot struct {
	Title string  `json:"title" bson:"title"`
	Image string  `json:"image,omitempty" bson:"image,omitempty"`
	Price float64 `json:"price" bson:"price"`
}

// OrderItem is one purchased line within a single seller's order.
type OrderItem struct {
	ProductID string          `json:"productId" bson:"productid"`
	Quantity  int             `json:"quantity" bson:"quantity"`
	UnitPrice float64         `json:"unitPrice" bson:"unitprice"`
	Snapshot  ProductSnapshot `json:"snapshot" bson:"snapshot"`
}

// StatusEntry is one append-only status history record.
type StatusEntry struct {
	Status string    `json:"status" bson:"status"`
	Note   string    `json:"note,omitempty" bson:"note,omitempty"`
	At     time.Time `json:"at" bson:"at"`
}

// Order is the persisted per-seller result of a checkout. Created once at
// commit; afterwards only the status history grows.
type Order struct {
	OrderID          string        `json:"orderId" bson:"orderid"`
	OrderNumber      string        `json:"orderNumber" bson:"ordernumber"`
	UserID           string        `json:"userId" bson:"userid"`
	BuyerEmail       string        `json:"buyerEmail" bson:"buyeremail"`
	ShopID           string        `json:"shopId" bson:"shopid"`
	ShopName         string        `json:"shopName" bson:"shopname"`
	Items            []OrderItem   `json:"items" bson:"items"`
	Subtotal         float64       `json:"subtotal" bson:"subtotal"`
	ShippingCost     float64       `json:"shippingCost" bson:"shippingcost"`
	Tax              float64       `json:"tax" bson:"tax"`
	Total            float64       `json:"total" bson:"total"`
	Address          Address       `json:"address" bson:"address"`
	ShippingMethod   string        `json:"shippingMethod" bson:"shippingmethod"`
	DeliveryEstimate string        `json:"deliveryEstimate,omitempty" bson:"deliveryestimate,omitempty"`
	PaymentMethod    string        `json:"paymentMethod" bson:"paymentmethod"`
	PaymentStatus    string        `json:"paymentStatus" bson:"paymentstatus"`
	Status           string        `json:"status" bson:"status"`
	History          []StatusEntry `json:"history" bson:"history"`
	Notes            string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt        time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" bson:"updated_at"`
}

// PaymentIntent is the gateway handoff payload for a set of committed orders.
// Not persisted; the gateway owns it after handoff.
type PaymentIntent struct {
	Amount       float64           `json:"-"`
	OrderNumbers []string          `json:"-"`
	FormData     map[string]string `json:"formData"`
	FormAction   string            `json:"formAction"`
}
