package models

import "time"

// WebhookStatus tracks gateway webhook processing for a payment.
type WebhookStatus string

const (
	WebhookPending   WebhookStatus = "pending"
	WebhookReceived  WebhookStatus = "received"
	WebhookProcessed WebhookStatus = "processed"
	WebhookFailed    WebhookStatus = "failed"
)

// Payment is a side ledger entry, created only on verified gateway payment
// completion. Write-once in normal flow; it never mutates the order total.
type Payment struct {
	TransactionID string          `json:"transactionId" bson:"transactionId"`
	OrderID       string          `json:"orderId" bson:"orderId"`
	UserID        string          `json:"userId" bson:"userId"`
	Provider      PaymentProvider `json:"provider" bson:"provider"`
	Amount        float64         `json:"amount" bson:"amount"`
	Currency      string          `json:"currency" bson:"currency"`
	Signature     string          `json:"signature,omitempty" bson:"signature,omitempty"`
	WebhookStatus WebhookStatus   `json:"webhookStatus" bson:"webhookStatus"`
	Status        string          `json:"status" bson:"status"` // pending | success | failed
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
}
