package replica

import (
	"time"

	"wms-service/internal/models"
)

// Denormalized documents mirrored into the replica store. Field names are
// contract-bound: external analytics tooling queries the replica directly.

// ProductDocument is the replica view of a product with every slot that
// holds it, warehouse path included.
type ProductDocument struct {
	PostgresID    string                 `json:"postgres_id"`
	Code          string                 `json:"codigo"`
	Name          string                 `json:"nombre"`
	Description   string                 `json:"descripcion"`
	Price         int64                  `json:"precio"`
	Locations     []ProductLocationEntry `json:"ubicaciones"`
	TotalStock    int                    `json:"stock_total"`
	LocationCount int                    `json:"num_ubicaciones"`
	SyncedAt      string                 `json:"sync_timestamp"`
}

// ProductLocationEntry is one slot of a product document.
type ProductLocationEntry struct {
	ID               uint   `json:"id"`
	WarehouseCode    string `json:"bodega_codigo"`
	WarehouseCity    string `json:"bodega_ciudad"`
	WarehouseAddress string `json:"bodega_direccion"`
	ShelfZone        string `json:"estanteria_zona"`
	ShelfCode        int    `json:"estanteria_codigo"`
	Level            int    `json:"nivel"`
	Position         int    `json:"codigo"`
	FullCode         string `json:"codigo_completo"`
	Capacity         int    `json:"capacidad"`
	Stock            int    `json:"stock"`
	UpdatedAt        string `json:"fecha_actualizacion"`
}

// WarehouseDocument is the replica view of a warehouse with its full shelf
// and slot tree.
type WarehouseDocument struct {
	PostgresID string                `json:"postgres_id"`
	Code       string                `json:"codigo"`
	City       string                `json:"ciudad"`
	Address    string                `json:"direccion"`
	Shelves    []WarehouseShelfEntry `json:"estanterias"`
	TotalSlots int                   `json:"total_ubicaciones"`
	TotalStock int                   `json:"total_stock"`
	SyncedAt   string                `json:"sync_timestamp"`
}

// WarehouseShelfEntry is one shelf of a warehouse document.
type WarehouseShelfEntry struct {
	Zone   string               `json:"zona"`
	Code   int                  `json:"codigo"`
	Levels int                  `json:"niveles"`
	Slots  []WarehouseSlotEntry `json:"ubicaciones"`
}

// WarehouseSlotEntry is one slot of a warehouse document. Product is nil for
// unassigned slots.
type WarehouseSlotEntry struct {
	ID        uint              `json:"id"`
	Level     int               `json:"nivel"`
	Position  int               `json:"codigo"`
	Capacity  int               `json:"capacidad"`
	Stock     int               `json:"stock"`
	UpdatedAt string            `json:"fecha_actualizacion"`
	Product   *SlotProductEntry `json:"producto,omitempty"`
}

// SlotProductEntry is the product summary embedded in a warehouse slot.
type SlotProductEntry struct {
	Code  string `json:"codigo"`
	Name  string `json:"nombre"`
	Price int64  `json:"precio"`
}

// OrderDocument is the replica view of an order with prices snapshotted at
// sync time.
type OrderDocument struct {
	PostgresID    uint             `json:"postgres_id"`
	Status        string           `json:"estado"`
	PaymentMethod string           `json:"metodo_pago"`
	CreatedAt     string           `json:"fecha_creacion"`
	UpdatedAt     string           `json:"fecha_actualizacion"`
	Items         []OrderItemEntry `json:"items"`
	Total         int64            `json:"total"`
	ItemCount     int              `json:"num_items"`
	SyncedAt      string           `json:"sync_timestamp"`
}

// OrderItemEntry is one line of an order document.
type OrderItemEntry struct {
	ID                 uint   `json:"id"`
	ProductCode        string `json:"producto_codigo"`
	ProductName        string `json:"producto_nombre"`
	ProductDescription string `json:"producto_descripcion"`
	ProductPrice       int64  `json:"producto_precio"`
	Quantity           int    `json:"cantidad"`
	Subtotal           int64  `json:"subtotal"`
}

// BuildProductDocument denormalizes a product and its slots. Slots must be
// preloaded with Shelf and Shelf.Warehouse.
func BuildProductDocument(p *models.Product, syncedAt time.Time) ProductDocument {
	doc := ProductDocument{
		PostgresID:  p.Code,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Locations:   make([]ProductLocationEntry, 0, len(p.Slots)),
		SyncedAt:    syncedAt.Format(time.RFC3339),
	}

	for i := range p.Slots {
		slot := &p.Slots[i]
		doc.TotalStock += slot.Stock

		entry := ProductLocationEntry{
			ID:        slot.ID,
			Level:     slot.Level,
			Position:  slot.Position,
			Capacity:  slot.Capacity,
			Stock:     slot.Stock,
			UpdatedAt: slot.UpdatedAt.Format(time.RFC3339),
			FullCode:  slot.FullCode(),
		}
		if slot.Shelf != nil {
			entry.ShelfZone = slot.Shelf.Zone
			entry.ShelfCode = slot.Shelf.Code
			if slot.Shelf.Warehouse != nil {
				entry.WarehouseCode = slot.Shelf.Warehouse.Code
				entry.WarehouseCity = slot.Shelf.Warehouse.City
				entry.WarehouseAddress = slot.Shelf.Warehouse.Address
			}
		}
		doc.Locations = append(doc.Locations, entry)
	}

	doc.LocationCount = len(doc.Locations)
	return doc
}

// BuildWarehouseDocument denormalizes a warehouse's full tree. Shelves must
// be preloaded with Slots and Slots.Product.
func BuildWarehouseDocument(w *models.Warehouse, syncedAt time.Time) WarehouseDocument {
	doc := WarehouseDocument{
		PostgresID: w.Code,
		Code:       w.Code,
		City:       w.City,
		Address:    w.Address,
		Shelves:    make([]WarehouseShelfEntry, 0, len(w.Shelves)),
		SyncedAt:   syncedAt.Format(time.RFC3339),
	}

	for i := range w.Shelves {
		shelf := &w.Shelves[i]
		entry := WarehouseShelfEntry{
			Zone:   shelf.Zone,
			Code:   shelf.Code,
			Levels: shelf.Levels,
			Slots:  make([]WarehouseSlotEntry, 0, len(shelf.Slots)),
		}

		for j := range shelf.Slots {
			slot := &shelf.Slots[j]
			doc.TotalSlots++
			doc.TotalStock += slot.Stock

			slotEntry := WarehouseSlotEntry{
				ID:        slot.ID,
				Level:     slot.Level,
				Position:  slot.Position,
				Capacity:  slot.Capacity,
				Stock:     slot.Stock,
				UpdatedAt: slot.UpdatedAt.Format(time.RFC3339),
			}
			if slot.Product != nil {
				slotEntry.Product = &SlotProductEntry{
					Code:  slot.Product.Code,
					Name:  slot.Product.Name,
					Price: slot.Product.Price,
				}
			}
			entry.Slots = append(entry.Slots, slotEntry)
		}

		doc.Shelves = append(doc.Shelves, entry)
	}

	return doc
}

// BuildOrderDocument denormalizes an order. Items must be preloaded with
// Product.
func BuildOrderDocument(o *models.Order, syncedAt time.Time) OrderDocument {
	doc := OrderDocument{
		PostgresID:    o.ID,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.Format(time.RFC3339),
		Items:         make([]OrderItemEntry, 0, len(o.Items)),
		SyncedAt:      syncedAt.Format(time.RFC3339),
	}

	for i := range o.Items {
		item := &o.Items[i]
		entry := OrderItemEntry{
			ID:          item.ID,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
		}
		if item.Product != nil {
			entry.ProductName = item.Product.Name
			entry.ProductDescription = item.Product.Description
			entry.ProductPrice = item.Product.Price
			entry.Subtotal = int64(item.Quantity) * item.Product.Price
		}
		doc.Total += entry.Subtotal
		doc.Items = append(doc.Items, entry)
	}

	doc.ItemCount = len(doc.Items)
	return doc
}
