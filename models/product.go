package models

import "time"

// ProductStatus gates storefront visibility: only live products are eligible
// for public catalog queries.
type ProductStatus string

const (
	ProductLive  ProductStatus = "live"
	ProductDraft ProductStatus = "draft"
)

// Variant is a purchasable configuration of a product. Price and stock live
// here, not on the product.
type Variant struct {
	Color  string   `json:"color" bson:"color"`
	Size   string   `json:"size" bson:"size"`
	SKU    string   `json:"sku" bson:"sku"`
	Price  float64  `json:"price" bson:"price"`
	Stock  int      `json:"stock" bson:"stock"`
	Images []string `json:"images,omitempty" bson:"images,omitempty"`
}

// Ratings is the denormalized review aggregate.
type Ratings struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type Product struct {
	ProductID     string        `json:"productId" bson:"productId"`
	Title         string        `json:"title" bson:"title"`
	Slug          string        `json:"slug" bson:"slug"`
	Brand         string        `json:"brand" bson:"brand"`
	Description   string        `json:"description" bson:"description"`
	CategoryID    string        `json:"category" bson:"category"`
	SubCategoryID string        `json:"subCategory,omitempty" bson:"subCategory,omitempty"`
	Images        []string      `json:"images" bson:"images"`
	Variants      []Variant     `json:"variants" bson:"variants"`
	Ratings       Ratings       `json:"ratings" bson:"ratings"`
	Tags          []string      `json:"tags,omitempty" bson:"tags,omitempty"`
	Status        ProductStatus `json:"status" bson:"status"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}
