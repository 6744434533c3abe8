package models

import "time"

// OrderStatus represents the lifecycle status of an order. The values are
// stored and served verbatim; downstream analytics tooling matches on them.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pendiente"  // Created, not yet picked
	OrderStatusProcessing OrderStatus = "procesando" // Being picked/packed
	OrderStatusShipped    OrderStatus = "enviado"    // Handed to carrier
	OrderStatusDelivered  OrderStatus = "entregado"  // Successfully delivered
	OrderStatusCancelled  OrderStatus = "cancelado"  // Cancelled
)

// PaymentMethod is a descriptive attribute of the order; no payment
// processing happens in this service.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "efectivo"
	PaymentMethodTransfer PaymentMethod = "transferencia"
)

// Order represents a customer order with its line items.
type Order struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pendiente';index"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line of an order referencing a product by business code.
type OrderItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderID     uint   `json:"orderId" gorm:"not null;index"`
	ProductCode string `json:"productCode" gorm:"type:varchar(20);not null"`
	Quantity    int    `json:"quantity" gorm:"not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductCode;references:Code"`
}

// Subtotal is quantity times unit price. Requires Product loaded.
func (i *OrderItem) Subtotal() int64 {
	if i.Product == nil {
		return 0
	}
	return int64(i.Quantity) * i.Product.Price
}

// IsValidPaymentMethod reports whether the value is an accepted payment method.
func IsValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCash || m == PaymentMethodTransfer
}

// Total sums subtotals across items. Requires Items with Products loaded.
func (o *Order) Total() int64 {
	var total int64
	for idx := range o.Items {
		total += o.Items[idx].Subtotal()
	}
	return total
}
