package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"maison/apperr"
	"maison/db"
	"maison/globals"
	"maison/models"
	"maison/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Signature computes the expected HMAC for a gateway callback. The real
// gateway SDKs are an external collaborator; the signature scheme is the
// request/response contract we hold them to.
func Signature(transactionID, orderID string, amount float64) string {
	h := hmac.New(sha256.New, globals.HmacSecret)
	fmt.Fprintf(h, "%s|%s|%.2f", transactionID, orderID, amount)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks a callback signature in constant time.
func VerifySignature(transactionID, orderID string, amount float64, signature string) bool {
	return hmac.Equal([]byte(Signature(transactionID, orderID, amount)), []byte(signature))
}

type verifyRequest struct {
	TransactionID string                 `json:"transactionId"`
	OrderID       string                 `json:"orderId"`
	Provider      models.PaymentProvider `json:"provider"`
	Amount        float64                `json:"amount"`
	Currency      string                 `json:"currency"`
	Signature     string                 `json:"signature"`
}

// VerifyPayment records a verified gateway payment as a write-once ledger
// entry and marks the order paid. The order total is never touched.
func VerifyPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment payload")
		return
	}
	if req.TransactionID == "" || req.OrderID == "" {
		utils.RespondWithAppError(w, apperr.Validation("transactionId and orderId are required"))
		return
	}
	if !VerifySignature(req.TransactionID, req.OrderID, req.Amount, req.Signature) {
		utils.RespondWithAppError(w, apperr.Validation("payment signature verification failed"))
		return
	}

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": req.OrderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithAppError(w, apperr.NotFound("Order not found"))
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// write-once: a transaction id can only ever be recorded once
	count, err := db.PaymentCollection.CountDocuments(ctx, bson.M{"transactionId": req.TransactionID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if count > 0 {
		utils.RespondWithAppError(w, apperr.Conflict("payment already recorded for this transaction"))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	payment := models.Payment{
		TransactionID: req.TransactionID,
		OrderID:       req.OrderID,
		UserID:        order.UserID,
		Provider:      req.Provider,
		Amount:        req.Amount,
		Currency:      currency,
		Signature:     req.Signature,
		WebhookStatus: models.WebhookProcessed,
		Status:        "success",
		CreatedAt:     time.Now(),
	}
	if _, err := db.PaymentCollection.InsertOne(ctx, payment); err != nil {
		log.Println("VerifyPayment InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Payment recording failed")
		return
	}

	_, err = db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderId": req.OrderID},
		bson.M{"$set": bson.M{
			"paymentStatus": models.PaymentPaid,
			"paymentId":     req.TransactionID,
			"updatedAt":     time.Now(),
		}})
	if err != nil {
		log.Println("VerifyPayment order update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark order paid")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "payment": payment})
}

// GetPayment fetches a ledger entry by transaction id.
func GetPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := db.PaymentCollection.FindOne(ctx, bson.M{"transactionId": ps.ByName("transactionId")}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "payment": payment})
}
