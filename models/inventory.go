package models

// Inventory is the per-SKU stock ledger behind the reserve/release hooks.
// Variants are identified by SKU, so order line items reference the same key.
type Inventory struct {
	SKU            string `json:"sku" bson:"sku"`
	AvailableStock int    `json:"availableStock" bson:"availableStock"`
	ReservedStock  int    `json:"reservedStock" bson:"reservedStock"`
}
