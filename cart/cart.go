package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"maison/db"
	"maison/models"
	"maison/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToCart increments quantity if the variant is already carted, or appends
// a new line item.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if item.ProductID == "" || item.VariantID == "" || item.Quantity < 1 || item.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	now := time.Now()

	// bump quantity when the variant is already in the cart
	res, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userId": userID, "items.variantId": item.VariantID},
		bson.M{
			"$inc": bson.M{
				"items.$.quantity": item.Quantity,
				"totalAmount":      item.Price * float64(item.Quantity),
			},
			"$set": bson.M{"updatedAt": now},
		})
	if err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	if res.MatchedCount == 0 {
		opts := options.Update().SetUpsert(true)
		_, err = db.CartCollection.UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{
				"$push": bson.M{"items": item},
				"$inc":  bson.M{"totalAmount": item.Price * float64(item.Quantity)},
				"$set":  bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{
					"deliveryCharge": 0.0,
				},
			}, opts)
		if err != nil {
			log.Println("AddToCart push error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "status": "added"})
}

// GetCart returns the user's cart, empty rather than missing.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		c = models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else if err != nil {
		log.Println("GetCart FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cart": c})
}

// UpdateCart replaces the full item list in one write.
func UpdateCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Items          []models.CartItem `json:"items"`
		DeliveryCharge float64           `json:"deliveryCharge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON request")
		return
	}

	var total float64
	for _, it := range payload.Items {
		if it.Quantity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
		total += it.Price * float64(it.Quantity)
	}

	opts := options.Update().SetUpsert(true)
	_, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"items":          payload.Items,
			"deliveryCharge": payload.DeliveryCharge,
			"totalAmount":    total + payload.DeliveryCharge,
			"updatedAt":      time.Now(),
		}}, opts)
	if err != nil {
		log.Println("UpdateCart UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "status": "updated"})
}

// ClearCart empties the user's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := Clear(ctx, userID); err != nil {
		log.Println("ClearCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "cleared"})
}

// Clear drops the cart document; order creation calls this after checkout.
func Clear(ctx context.Context, userID string) error {
	_, err := db.CartCollection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
