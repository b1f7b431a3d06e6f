package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"maison/apperr"
	"maison/cart"
	"maison/db"
	"maison/inventory"
	"maison/models"
	"maison/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultOrigin seeds currentLocation until logistics reports in.
var defaultOrigin = models.GeoPoint{Lat: 28.6139, Lng: 77.2090, Address: "Sorting Facility, New Delhi"}

type createOrderRequest struct {
	UserID          string                 `json:"userId"`
	Items           []models.OrderItem     `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress models.Address         `json:"shippingAddress"`
	PaymentProvider models.PaymentProvider `json:"paymentProvider"`
}

// CreateOrder places a new order: validates the payload, recomputes the
// total from the item price snapshots, reserves stock per line item, and
// inserts the document in its initial state.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}

	if err := validateCreate(&req); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if req.PaymentProvider == "" {
		req.PaymentProvider = models.ProviderCOD
	}

	// reserve-on-create; roll back already-taken reservations on failure
	var reserved []models.OrderItem
	for _, it := range req.Items {
		if err := inventory.Reserve(ctx, it.VariantID, it.Quantity); err != nil {
			for _, done := range reserved {
				if relErr := inventory.Release(ctx, done.VariantID, done.Quantity); relErr != nil {
					log.Println("CreateOrder reservation rollback error:", relErr)
				}
			}
			utils.RespondWithAppError(w, err)
			return
		}
		reserved = append(reserved, it)
	}

	now := time.Now()
	order := models.Order{
		OrderID:           utils.GetUUID(),
		UserID:            req.UserID,
		Items:             req.Items,
		TotalAmount:       req.TotalAmount,
		ShippingAddress:   req.ShippingAddress,
		PaymentStatus:     InitialPaymentStatus(req.PaymentProvider),
		OrderStatus:       models.OrderPlaced,
		PaymentProvider:   req.PaymentProvider,
		CurrentLocation:   &defaultOrigin,
		EstimatedDelivery: now.Add(DeliveryWindow),
		TrackingHistory:   []models.TrackingEntry{},
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	if err := cart.Clear(ctx, req.UserID); err != nil {
		log.Println("CreateOrder cart cleanup error:", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "order": order})
}

func validateCreate(req *createOrderRequest) error {
	if req.UserID == "" {
		return apperr.Validation("userId is required")
	}
	if len(req.Items) == 0 {
		return apperr.Validation("order must contain at least one item")
	}
	for i, it := range req.Items {
		if it.ProductID == "" || it.VariantID == "" {
			return apperr.Validation(fmt.Sprintf("items[%d] is missing product or variant reference", i))
		}
		if it.Quantity < 1 {
			return apperr.Validation(fmt.Sprintf("items[%d] quantity must be at least 1", i))
		}
	}
	addr := req.ShippingAddress
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.ZipCode == "" || addr.Country == "" || addr.Phone == "" {
		return apperr.Validation("shipping address is incomplete")
	}
	return ValidateTotal(req.Items, req.TotalAmount)
}

// GetUserOrders lists a user's orders, newest first.
func GetUserOrders(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrderCollection, bson.M{"userId": ps.ByName("userId")}, opts)
	if err != nil {
		log.Println("GetUserOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": orders})
}

// GetOrder fetches a single order by id.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("orderId"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}

// GetAllOrders is the admin listing, newest first.
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrderCollection, bson.M{}, opts)
	if err != nil {
		log.Println("GetAllOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": orders})
}

type statusUpdateRequest struct {
	OrderStatus     models.OrderStatus `json:"orderStatus"`
	TrackingID      string             `json:"trackingId"`
	CurrentLocation *models.GeoPoint   `json:"currentLocation"`
	Description     string             `json:"description"`
	Force           bool               `json:"force"`
}

// UpdateOrderStatus moves an order along the fulfilment chain. The status
// write, logistics fields, history append and version bump travel in one
// conditional update keyed on the legal source states, so concurrent
// transitions serialize instead of clobbering each other.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status payload")
		return
	}
	if !IsForwardState(req.OrderStatus) {
		utils.RespondWithAppError(w, apperr.Validation(fmt.Sprintf("invalid target status %q", req.OrderStatus)))
		return
	}

	now := time.Now()
	set := bson.M{
		"orderStatus": req.OrderStatus,
		"updatedAt":   now,
	}
	if req.TrackingID != "" {
		set["trackingId"] = req.TrackingID
	}
	if req.CurrentLocation != nil {
		set["currentLocation"] = req.CurrentLocation
	}

	entry := HistoryEntry(req.OrderStatus, req.CurrentLocation, req.Description, req.Force, now)
	sources := TransitionSources(req.OrderStatus, req.Force)

	order, err := applyTransition(ctx, orderID, bson.M{"$in": sources}, bson.M{
		"$set":  set,
		"$push": bson.M{"trackingHistory": entry},
		"$inc":  bson.M{"version": 1},
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	// delivery hands the reserved units off the ledger
	if req.OrderStatus == models.OrderDelivered {
		for _, it := range order.Items {
			if err := inventory.Commit(ctx, it.VariantID, it.Quantity); err != nil {
				log.Println("UpdateOrderStatus inventory commit error:", err)
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}

// CancelOrder is the guarded customer/admin cancellation. It shares the
// atomic transition path with the generic status update, so cancellations
// land in the tracking history like every other transition.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")
	now := time.Now()
	entry := HistoryEntry(models.OrderCancelled, nil, "Order cancelled", false, now)

	order, err := applyTransition(ctx, orderID, bson.M{"$in": CancelSources()}, bson.M{
		"$set":  bson.M{"orderStatus": models.OrderCancelled, "updatedAt": now},
		"$push": bson.M{"trackingHistory": entry},
		"$inc":  bson.M{"version": 1},
	})
	if errors.Is(err, apperr.ErrConflict) {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot cancel order that has been shipped or delivered")
		return
	}
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	// release-on-cancel
	for _, it := range order.Items {
		if err := inventory.Release(ctx, it.VariantID, it.Quantity); err != nil {
			log.Println("CancelOrder inventory release error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Order cancelled successfully", "order": order})
}

type returnRequest struct {
	Reason string   `json:"reason"`
	Images []string `json:"images"`
}

// InitiateReturn opens the return sub-workflow for a delivered order.
func InitiateReturn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid return payload")
		return
	}
	if req.Reason == "" {
		utils.RespondWithAppError(w, apperr.Validation("return reason is required"))
		return
	}

	now := time.Now()
	returnData := models.ReturnData{
		Status:      models.ReturnRequested,
		Reason:      req.Reason,
		RequestedAt: now,
		Images:      req.Images,
	}
	entry := models.TrackingEntry{
		Status:      "Return Requested",
		Location:    "Customer Location",
		Description: fmt.Sprintf("Return initiated for reason: %s", req.Reason),
		Timestamp:   now,
	}

	order, err := applyTransition(ctx, orderID, models.OrderDelivered, bson.M{
		"$set": bson.M{
			"orderStatus": models.OrderReturnRequested,
			"returnData":  returnData,
			"updatedAt":   now,
		},
		"$push": bson.M{"trackingHistory": entry},
		"$inc":  bson.M{"version": 1},
	})
	if errors.Is(err, apperr.ErrConflict) {
		utils.RespondWithError(w, http.StatusBadRequest, "Return can only be initiated for delivered orders")
		return
	}
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Return request initiated successfully", "order": order})
}

type resolveReturnRequest struct {
	Status models.ReturnStatus `json:"status"`
}

// ResolveReturn advances the return sub-machine (admin). Rejection puts the
// order back to delivered; a refund closes it as returned.
func ResolveReturn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	var req resolveReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid return payload")
		return
	}

	sources := ReturnSources(req.Status)
	if len(sources) == 0 {
		utils.RespondWithAppError(w, apperr.Validation(fmt.Sprintf("invalid return status %q", req.Status)))
		return
	}

	now := time.Now()
	set := bson.M{
		"returnData.status": req.Status,
		"updatedAt":         now,
	}
	entry := models.TrackingEntry{
		Status:      fmt.Sprintf("Return %s", req.Status),
		Location:    "Returns Desk",
		Description: fmt.Sprintf("Return request moved to %s", req.Status),
		Timestamp:   now,
	}

	switch req.Status {
	case models.ReturnRejected:
		set["orderStatus"] = models.OrderDelivered
		set["returnData.resolvedAt"] = now
	case models.ReturnRefunded:
		set["orderStatus"] = models.OrderReturned
		set["returnData.resolvedAt"] = now
	}

	filter := bson.M{"orderId": orderID, "returnData.status": bson.M{"$in": sources}}
	after := options.After
	var order models.Order
	err := db.OrderCollection.FindOneAndUpdate(ctx, filter, bson.M{
		"$set":  set,
		"$push": bson.M{"trackingHistory": entry},
		"$inc":  bson.M{"version": 1},
	}, &options.FindOneAndUpdateOptions{ReturnDocument: &after}).Decode(&order)

	if err == mongo.ErrNoDocuments {
		utils.RespondWithAppError(w, disambiguate(ctx, orderID, fmt.Sprintf("return cannot move to %q from its current state", req.Status)))
		return
	}
	if err != nil {
		log.Println("ResolveReturn FindOneAndUpdate error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve return")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}

// applyTransition runs a lifecycle mutation as a single conditional update:
// the filter names the states the order must currently be in, the update
// carries the status write and the history append together. No match means
// either a missing order or an illegal state; disambiguate with a follow-up
// existence check.
func applyTransition(ctx context.Context, orderID string, statusCond any, update bson.M) (*models.Order, error) {
	after := options.After
	var order models.Order
	err := db.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderId": orderID, "orderStatus": statusCond},
		update,
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	return nil, disambiguate(ctx, orderID, "operation not allowed in the order's current state")
}

func findOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func disambiguate(ctx context.Context, orderID, conflictMsg string) error {
	if _, err := findOrder(ctx, orderID); err != nil {
		return err
	}
	return apperr.Conflict(conflictMsg)
}
