package models

// CreateWarehouseRequest is the payload for registering a warehouse.
type CreateWarehouseRequest struct {
	Code    string `json:"code" binding:"required,max=10"`
	City    string `json:"city" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// UpdateWarehouseRequest carries the mutable warehouse fields.
type UpdateWarehouseRequest struct {
	City    *string `json:"city"`
	Address *string `json:"address"`
}

// CreateShelfRequest is the payload for adding a shelf to a warehouse.
type CreateShelfRequest struct {
	Zone   string `json:"zone" binding:"required,len=1"`
	Code   int    `json:"code" binding:"required,min=1"`
	Levels int    `json:"levels" binding:"required,min=1"`
}

// CreateSlotRequest is the payload for adding a slot to a shelf.
type CreateSlotRequest struct {
	Level    int `json:"level" binding:"required,min=1"`
	Position int `json:"position" binding:"required,min=1"`
	Capacity int `json:"capacity" binding:"required,min=1"`
}

// UpdateSlotRequest carries the mutable slot fields. A nil field is left
// untouched; ProductCode set to an empty string clears the assignment.
type UpdateSlotRequest struct {
	Stock       *int    `json:"stock"`
	Capacity    *int    `json:"capacity"`
	ProductCode *string `json:"product_code"`
}

// CreateProductRequest is the payload for registering a product.
type CreateProductRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=0"`
}

// UpdateProductRequest carries the mutable product fields.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
}

// CreateOrderItemRequest is one line of a new order.
type CreateOrderItemRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	PaymentMethod PaymentMethod            `json:"payment_method" binding:"required"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest carries the target status for an order.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
