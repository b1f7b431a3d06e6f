package orders

import (
	"fmt"
	"math"
	"time"

	"maison/apperr"
	"maison/models"
)

// DeliveryWindow is added to the creation time for the delivery estimate.
const DeliveryWindow = 7 * 24 * time.Hour

// totalTolerance is the allowed drift between the client-supplied total and
// the server-side recomputation from item price snapshots.
const totalTolerance = 0.01

// forwardRank orders the fulfilment chain. Cancellation and the return flow
// are side exits handled by their own guards, not part of the chain.
var forwardRank = map[models.OrderStatus]int{
	models.OrderPlaced:         0,
	models.OrderPacked:         1,
	models.OrderShipped:        2,
	models.OrderOutForDelivery: 3,
	models.OrderDelivered:      4,
}

// ForwardStates are the legal targets of the admin transition endpoint, in
// chain order.
func ForwardStates() []models.OrderStatus {
	return []models.OrderStatus{
		models.OrderPlaced,
		models.OrderPacked,
		models.OrderShipped,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	}
}

// IsForwardState reports whether s sits on the fulfilment chain.
func IsForwardState(s models.OrderStatus) bool {
	_, ok := forwardRank[s]
	return ok
}

// TransitionSources lists the states an order may currently be in for a
// transition to target to be legal. A normal transition never moves
// backward along the chain (repeating the current stage is allowed and
// appends a fresh history entry); force is the explicit admin override and
// accepts any chain state, including moving backward for corrections.
func TransitionSources(target models.OrderStatus, force bool) []models.OrderStatus {
	var from []models.OrderStatus
	for _, s := range ForwardStates() {
		if force || forwardRank[s] <= forwardRank[target] {
			from = append(from, s)
		}
	}
	return from
}

// CanTransition checks a single from→to pair against the same rule.
func CanTransition(from, to models.OrderStatus, force bool) error {
	if !IsForwardState(to) {
		return apperr.Validation(fmt.Sprintf("invalid target status %q", to))
	}
	if !IsForwardState(from) {
		return apperr.Conflict(fmt.Sprintf("order in state %q cannot be moved along the fulfilment chain", from))
	}
	if !force && forwardRank[to] < forwardRank[from] {
		return apperr.Conflict(fmt.Sprintf("cannot move order from %q back to %q without force", from, to))
	}
	return nil
}

// CancelSources are the states a customer or admin may cancel from.
func CancelSources() []models.OrderStatus {
	return []models.OrderStatus{models.OrderPlaced, models.OrderPacked, models.OrderOutForDelivery}
}

// CanCancel guards cancellation: shipped and anything past it stays.
func CanCancel(from models.OrderStatus) error {
	for _, s := range CancelSources() {
		if from == s {
			return nil
		}
	}
	return apperr.Conflict(fmt.Sprintf("cannot cancel order in state %q", from))
}

// CanInitiateReturn guards the customer return flow.
func CanInitiateReturn(from models.OrderStatus) error {
	if from != models.OrderDelivered {
		return apperr.Conflict("return can only be initiated for delivered orders")
	}
	return nil
}

// returnNext is the adjacency of the return sub-machine; it only ever moves
// forward.
var returnNext = map[models.ReturnStatus][]models.ReturnStatus{
	models.ReturnRequested: {models.ReturnApproved, models.ReturnRejected},
	models.ReturnApproved:  {models.ReturnReceived},
	models.ReturnReceived:  {models.ReturnRefunded},
}

// ReturnSources inverts the adjacency: the states a return must be in for
// target to be reachable.
func ReturnSources(target models.ReturnStatus) []models.ReturnStatus {
	var from []models.ReturnStatus
	for src, targets := range returnNext {
		for _, t := range targets {
			if t == target {
				from = append(from, src)
			}
		}
	}
	return from
}

// CanAdvanceReturn checks a single return-status step.
func CanAdvanceReturn(from, to models.ReturnStatus) error {
	for _, t := range returnNext[from] {
		if t == to {
			return nil
		}
	}
	return apperr.Conflict(fmt.Sprintf("return cannot move from %q to %q", from, to))
}

// InitialPaymentStatus derives the payment status from the provider choice:
// cash on delivery stays pending, gateway providers are assigned paid at
// creation.
func InitialPaymentStatus(p models.PaymentProvider) models.PaymentStatus {
	if p == models.ProviderCOD {
		return models.PaymentPending
	}
	return models.PaymentPaid
}

// ComputeTotal recomputes the order total from the line-item price
// snapshots.
func ComputeTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// ValidateTotal rejects client totals that drift from the recomputed figure
// beyond the tolerance. The client figure is never trusted as-is.
func ValidateTotal(items []models.OrderItem, claimed float64) error {
	expected := ComputeTotal(items)
	if math.Abs(expected-claimed) > totalTolerance {
		return apperr.Validation(fmt.Sprintf("totalAmount %.2f does not match computed total %.2f", claimed, expected))
	}
	return nil
}

// HistoryEntry synthesizes the audit-trail line for a transition. Defaults
// mirror the storefront contract: a generated description and a generic
// logistics-hub location when none are supplied. Forced transitions are
// always called out in the description.
func HistoryEntry(status models.OrderStatus, loc *models.GeoPoint, description string, forced bool, at time.Time) models.TrackingEntry {
	location := "Logistics Hub"
	if loc != nil && loc.Address != "" {
		location = loc.Address
	}
	if description == "" {
		description = fmt.Sprintf("Order stage updated to %s", status)
	}
	if forced {
		description += " (forced by admin)"
	}
	return models.TrackingEntry{
		Status:      string(status),
		Location:    location,
		Description: description,
		Timestamp:   at,
	}
}
