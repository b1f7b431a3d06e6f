package models

import "time"

// OrderStatus is the primary lifecycle state of an order.
type OrderStatus string

const (
	OrderPlaced          OrderStatus = "placed"
	OrderPacked          OrderStatus = "packed"
	OrderShipped         OrderStatus = "shipped"
	OrderOutForDelivery  OrderStatus = "out-for-delivery"
	OrderDelivered       OrderStatus = "delivered"
	OrderCancelled       OrderStatus = "cancelled"
	OrderReturnRequested OrderStatus = "return-requested"
	OrderReturned        OrderStatus = "returned"
)

// PaymentStatus of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentProvider chosen at checkout.
type PaymentProvider string

const (
	ProviderCOD      PaymentProvider = "cod"
	ProviderRazorpay PaymentProvider = "razorpay"
	ProviderStripe   PaymentProvider = "stripe"
)

// ReturnStatus is the state of the return sub-workflow.
type ReturnStatus string

const (
	ReturnNone      ReturnStatus = "none"
	ReturnRequested ReturnStatus = "requested"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnReceived  ReturnStatus = "received"
	ReturnRefunded  ReturnStatus = "refunded"
)

// OrderItem is a line item with its price snapshot and denormalized display
// fields, so the order stays renderable if the product later changes.
type OrderItem struct {
	ProductID string  `json:"product" bson:"productId"`
	VariantID string  `json:"variantId" bson:"variantId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image" bson:"image"`
}

// Address is the shipping address value object, copied onto the order at
// creation and never shared with the user's address book.
type Address struct {
	Street  string   `json:"street" bson:"street"`
	City    string   `json:"city" bson:"city"`
	State   string   `json:"state" bson:"state"`
	ZipCode string   `json:"zipCode" bson:"zipCode"`
	Country string   `json:"country" bson:"country"`
	Phone   string   `json:"phone" bson:"phone"`
	Lat     *float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

// GeoPoint is a logistics location.
type GeoPoint struct {
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Address string  `json:"address" bson:"address"`
}

// TrackingEntry is one line of the append-only audit trail. Entries are
// never removed or reordered.
type TrackingEntry struct {
	Status      string    `json:"status" bson:"status"`
	Location    string    `json:"location" bson:"location"`
	Description string    `json:"description" bson:"description"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// ReturnData exists only once a return has been initiated.
type ReturnData struct {
	Status      ReturnStatus `json:"status" bson:"status"`
	Reason      string       `json:"reason" bson:"reason"`
	RequestedAt time.Time    `json:"requestedAt" bson:"requestedAt"`
	ResolvedAt  *time.Time   `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
	Images      []string     `json:"images,omitempty" bson:"images,omitempty"`
}

// Order is the central entity. The item list and total are immutable after
// creation; everything else mutates only through status transitions, each of
// which is a single conditional update keyed on the current state and
// version.
type Order struct {
	OrderID           string          `json:"orderId" bson:"orderId"`
	UserID            string          `json:"user" bson:"userId"`
	Items             []OrderItem     `json:"items" bson:"items"`
	TotalAmount       float64         `json:"totalAmount" bson:"totalAmount"`
	ShippingAddress   Address         `json:"shippingAddress" bson:"shippingAddress"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus" bson:"paymentStatus"`
	OrderStatus       OrderStatus     `json:"orderStatus" bson:"orderStatus"`
	PaymentProvider   PaymentProvider `json:"paymentProvider" bson:"paymentProvider"`
	PaymentID         string          `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	TrackingID        string          `json:"trackingId,omitempty" bson:"trackingId,omitempty"`
	CurrentLocation   *GeoPoint       `json:"currentLocation,omitempty" bson:"currentLocation,omitempty"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery" bson:"estimatedDelivery"`
	TrackingHistory   []TrackingEntry `json:"trackingHistory" bson:"trackingHistory"`
	ReturnData        *ReturnData     `json:"returnData,omitempty" bson:"returnData,omitempty"`
	Version           int64           `json:"-" bson:"version"`
	CreatedAt         time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt" bson:"updatedAt"`
}
