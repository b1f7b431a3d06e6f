package orders

import (
	"errors"
	"testing"
	"time"

	"maison/apperr"
	"maison/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelGuard(t *testing.T) {
	allowed := []models.OrderStatus{models.OrderPlaced, models.OrderPacked, models.OrderOutForDelivery}
	for _, s := range allowed {
		assert.NoError(t, CanCancel(s), "cancel from %q should succeed", s)
	}

	blocked := []models.OrderStatus{
		models.OrderShipped,
		models.OrderDelivered,
		models.OrderCancelled,
		models.OrderReturnRequested,
		models.OrderReturned,
	}
	for _, s := range blocked {
		err := CanCancel(s)
		require.Error(t, err, "cancel from %q should fail", s)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	}
}

func TestReturnGuard(t *testing.T) {
	assert.NoError(t, CanInitiateReturn(models.OrderDelivered))

	for _, s := range []models.OrderStatus{
		models.OrderPlaced, models.OrderPacked, models.OrderShipped,
		models.OrderOutForDelivery, models.OrderCancelled, models.OrderReturned,
	} {
		err := CanInitiateReturn(s)
		require.Error(t, err, "return from %q should fail", s)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	}
}

func TestForwardTransitions(t *testing.T) {
	assert.NoError(t, CanTransition(models.OrderPlaced, models.OrderPacked, false))
	assert.NoError(t, CanTransition(models.OrderPlaced, models.OrderDelivered, false))
	assert.NoError(t, CanTransition(models.OrderShipped, models.OrderOutForDelivery, false))

	// repeating the current stage is allowed and just re-logs
	assert.NoError(t, CanTransition(models.OrderShipped, models.OrderShipped, false))

	// backward needs force
	err := CanTransition(models.OrderShipped, models.OrderPacked, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.NoError(t, CanTransition(models.OrderShipped, models.OrderPacked, true))

	// states off the chain never move through the generic endpoint
	err = CanTransition(models.OrderCancelled, models.OrderPacked, true)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// side-exit states are not valid targets here
	err = CanTransition(models.OrderPlaced, models.OrderCancelled, false)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestTransitionSources(t *testing.T) {
	assert.Equal(t,
		[]models.OrderStatus{models.OrderPlaced, models.OrderPacked},
		TransitionSources(models.OrderPacked, false))

	// force opens every chain state
	assert.Len(t, TransitionSources(models.OrderPacked, true), 5)

	// delivered is reachable from the whole chain
	assert.Len(t, TransitionSources(models.OrderDelivered, false), 5)
}

func TestReturnSubMachineForwardOnly(t *testing.T) {
	assert.NoError(t, CanAdvanceReturn(models.ReturnRequested, models.ReturnApproved))
	assert.NoError(t, CanAdvanceReturn(models.ReturnRequested, models.ReturnRejected))
	assert.NoError(t, CanAdvanceReturn(models.ReturnApproved, models.ReturnReceived))
	assert.NoError(t, CanAdvanceReturn(models.ReturnReceived, models.ReturnRefunded))

	// never backward, never skipping
	assert.Error(t, CanAdvanceReturn(models.ReturnApproved, models.ReturnRequested))
	assert.Error(t, CanAdvanceReturn(models.ReturnRequested, models.ReturnReceived))
	assert.Error(t, CanAdvanceReturn(models.ReturnRejected, models.ReturnReceived))
	assert.Error(t, CanAdvanceReturn(models.ReturnRefunded, models.ReturnRequested))
}

func TestReturnSources(t *testing.T) {
	assert.ElementsMatch(t, []models.ReturnStatus{models.ReturnRequested}, ReturnSources(models.ReturnApproved))
	assert.ElementsMatch(t, []models.ReturnStatus{models.ReturnRequested}, ReturnSources(models.ReturnRejected))
	assert.ElementsMatch(t, []models.ReturnStatus{models.ReturnApproved}, ReturnSources(models.ReturnReceived))
	assert.ElementsMatch(t, []models.ReturnStatus{models.ReturnReceived}, ReturnSources(models.ReturnRefunded))
	assert.Empty(t, ReturnSources(models.ReturnRequested))
}

func TestInitialPaymentStatus(t *testing.T) {
	assert.Equal(t, models.PaymentPending, InitialPaymentStatus(models.ProviderCOD))
	assert.Equal(t, models.PaymentPaid, InitialPaymentStatus(models.ProviderRazorpay))
	assert.Equal(t, models.PaymentPaid, InitialPaymentStatus(models.ProviderStripe))
}

func TestTotalValidation(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "p1", VariantID: "v1", Quantity: 2, Price: 50},
		{ProductID: "p2", VariantID: "v2", Quantity: 1, Price: 50},
	}
	assert.InDelta(t, 150, ComputeTotal(items), 0.001)
	assert.NoError(t, ValidateTotal(items, 150))
	assert.NoError(t, ValidateTotal(items, 150.005))

	err := ValidateTotal(items, 120)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestHistoryEntryDefaults(t *testing.T) {
	now := time.Now()

	e := HistoryEntry(models.OrderShipped, nil, "", false, now)
	assert.Equal(t, "shipped", e.Status)
	assert.Equal(t, "Logistics Hub", e.Location)
	assert.Equal(t, "Order stage updated to shipped", e.Description)
	assert.Equal(t, now, e.Timestamp)

	loc := &models.GeoPoint{Lat: 1, Lng: 2, Address: "Mumbai Hub"}
	e = HistoryEntry(models.OrderOutForDelivery, loc, "On the truck", false, now)
	assert.Equal(t, "Mumbai Hub", e.Location)
	assert.Equal(t, "On the truck", e.Description)

	e = HistoryEntry(models.OrderPacked, nil, "", true, now)
	assert.Contains(t, e.Description, "(forced by admin)")
}

func TestCreateOrderValidation(t *testing.T) {
	valid := func() createOrderRequest {
		return createOrderRequest{
			UserID: "u1",
			Items: []models.OrderItem{
				{ProductID: "p1", VariantID: "v1", Quantity: 2, Price: 50, Name: "Coat", Image: "coat.jpg"},
				{ProductID: "p2", VariantID: "v2", Quantity: 1, Price: 50, Name: "Scarf", Image: "scarf.jpg"},
			},
			TotalAmount: 150,
			ShippingAddress: models.Address{
				Street: "1 Rue", City: "Paris", State: "IDF",
				ZipCode: "75001", Country: "FR", Phone: "+33",
			},
		}
	}

	req := valid()
	assert.NoError(t, validateCreate(&req))

	req = valid()
	req.UserID = ""
	assert.True(t, errors.Is(validateCreate(&req), apperr.ErrValidation))

	req = valid()
	req.Items = nil
	assert.True(t, errors.Is(validateCreate(&req), apperr.ErrValidation))

	req = valid()
	req.Items[0].Quantity = 0
	assert.True(t, errors.Is(validateCreate(&req), apperr.ErrValidation))

	req = valid()
	req.ShippingAddress.City = ""
	assert.True(t, errors.Is(validateCreate(&req), apperr.ErrValidation))

	req = valid()
	req.TotalAmount = 149
	assert.True(t, errors.Is(validateCreate(&req), apperr.ErrValidation))
}

func TestDeliveryWindow(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 8, 10, 0, 0, 0, time.UTC), created.Add(DeliveryWindow))
}

func TestTrackingPayloadRoundTrip(t *testing.T) {
	payload := TrackingPayload("ord-1", "trk-9", time.Now())
	assert.True(t, VerifyTrackingPayload(payload))
	assert.False(t, VerifyTrackingPayload(payload+"x"))
	assert.False(t, VerifyTrackingPayload("garbage"))
}
