package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrderStatus_FromPending(t *testing.T) {
	assert.True(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusProcessing))
	assert.True(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusCancelled))
	assert.False(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusShipped))
	assert.False(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusDelivered))
}

func TestCanTransitionOrderStatus_FromProcessing(t *testing.T) {
	assert.True(t, CanTransitionOrderStatus(OrderStatusProcessing, OrderStatusShipped))
	assert.True(t, CanTransitionOrderStatus(OrderStatusProcessing, OrderStatusCancelled))
	assert.False(t, CanTransitionOrderStatus(OrderStatusProcessing, OrderStatusPending))
	assert.False(t, CanTransitionOrderStatus(OrderStatusProcessing, OrderStatusDelivered))
}

func TestCanTransitionOrderStatus_FromShipped(t *testing.T) {
	assert.True(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusDelivered))
	assert.False(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusCancelled))
	assert.False(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusPending))
}

func TestCanTransitionOrderStatus_TerminalStates(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		for _, target := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
			assert.False(t, CanTransitionOrderStatus(terminal, target), "%s should not transition to %s", terminal, target)
		}
	}
}

func TestGetNextValidOrderStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]OrderStatus{OrderStatusProcessing, OrderStatusCancelled},
		GetNextValidOrderStatuses(OrderStatusPending))
	assert.ElementsMatch(t,
		[]OrderStatus{OrderStatusShipped, OrderStatusCancelled},
		GetNextValidOrderStatuses(OrderStatusProcessing))
	assert.ElementsMatch(t,
		[]OrderStatus{OrderStatusDelivered},
		GetNextValidOrderStatuses(OrderStatusShipped))
	assert.Empty(t, GetNextValidOrderStatuses(OrderStatusDelivered))
	assert.Empty(t, GetNextValidOrderStatuses(OrderStatusCancelled))
}

func TestIsTerminalOrderStatus(t *testing.T) {
	assert.True(t, IsTerminalOrderStatus(OrderStatusDelivered))
	assert.True(t, IsTerminalOrderStatus(OrderStatusCancelled))
	assert.False(t, IsTerminalOrderStatus(OrderStatusPending))
	assert.False(t, IsTerminalOrderStatus(OrderStatusProcessing))
	assert.False(t, IsTerminalOrderStatus(OrderStatusShipped))
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus(OrderStatusPending))
	assert.True(t, IsValidOrderStatus(OrderStatusCancelled))
	assert.False(t, IsValidOrderStatus(OrderStatus("enviado ")))
	assert.False(t, IsValidOrderStatus(OrderStatus("pending")))
	assert.False(t, IsValidOrderStatus(OrderStatus("")))
}
