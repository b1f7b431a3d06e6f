package models

import "time"

// CartItem mirrors an order line item before checkout.
type CartItem struct {
	ProductID string  `json:"product" bson:"productId"`
	VariantID string  `json:"variantId" bson:"variantId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	Name      string  `json:"name,omitempty" bson:"name,omitempty"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Cart is the per-user aggregation document.
type Cart struct {
	UserID         string     `json:"userId" bson:"userId"`
	Items          []CartItem `json:"items" bson:"items"`
	DeliveryCharge float64    `json:"deliveryCharge" bson:"deliveryCharge"`
	TotalAmount    float64    `json:"totalAmount" bson:"totalAmount"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
}
