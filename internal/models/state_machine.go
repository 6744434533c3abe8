package models

// ValidOrderTransitions defines the forward flow for OrderStatus.
// Flow: pendiente → procesando → enviado → entregado, with cancellation
// possible until the order ships. Terminal states have no successors.
//
// The table is informational: status writes are not rejected against it,
// it backs the valid-transitions endpoint and response annotations.
var ValidOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionOrderStatus checks if a transition between two statuses
// follows the documented flow
func CanTransitionOrderStatus(from, to OrderStatus) bool {
	validTransitions, exists := ValidOrderTransitions[from]
	if !exists {
		return false
	}
	for _, validTo := range validTransitions {
		if validTo == to {
			return true
		}
	}
	return false
}

// GetNextValidOrderStatuses returns the list of documented next statuses
func GetNextValidOrderStatuses(current OrderStatus) []OrderStatus {
	return ValidOrderTransitions[current]
}

// IsTerminalOrderStatus checks if the order status is a terminal state
func IsTerminalOrderStatus(status OrderStatus) bool {
	return len(ValidOrderTransitions[status]) == 0
}

// IsValidOrderStatus reports whether the value is one of the known statuses
func IsValidOrderStatus(status OrderStatus) bool {
	_, ok := ValidOrderTransitions[status]
	return ok
}

// DisplayName returns a human-readable name for the order status
func (s OrderStatus) DisplayName() string {
	switch s {
	case OrderStatusPending:
		return "Pendiente"
	case OrderStatusProcessing:
		return "Procesando"
	case OrderStatusShipped:
		return "Enviado"
	case OrderStatusDelivered:
		return "Entregado"
	case OrderStatusCancelled:
		return "Cancelado"
	default:
		return string(s)
	}
}
