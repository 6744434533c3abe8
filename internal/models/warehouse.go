package models

import (
	"fmt"
	"time"
)

// Warehouse represents a physical warehouse identified by its business code.
// The (city, address) pair is unique across warehouses.
type Warehouse struct {
	Code      string    `json:"code" gorm:"type:varchar(10);primaryKey"`
	City      string    `json:"city" gorm:"type:varchar(100);not null;uniqueIndex:idx_warehouses_city_address"`
	Address   string    `json:"address" gorm:"type:varchar(200);not null;uniqueIndex:idx_warehouses_city_address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Shelves []Shelf `json:"shelves,omitempty" gorm:"foreignKey:WarehouseCode;references:Code;constraint:OnDelete:CASCADE"`
}

// Shelf is a shelving unit inside a warehouse, addressed by zone letter and
// numeric code. (warehouse, zone, code) is unique.
type Shelf struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	WarehouseCode string    `json:"warehouseCode" gorm:"type:varchar(10);not null;uniqueIndex:idx_shelves_warehouse_zone_code"`
	Zone          string    `json:"zone" gorm:"type:varchar(1);not null;uniqueIndex:idx_shelves_warehouse_zone_code"`
	Code          int       `json:"code" gorm:"not null;uniqueIndex:idx_shelves_warehouse_zone_code"`
	Levels        int       `json:"levels" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Warehouse *Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseCode;references:Code"`
	Slots     []Slot     `json:"slots,omitempty" gorm:"foreignKey:ShelfID;constraint:OnDelete:CASCADE"`
}

// Slot is a single storage position on a shelf. At most one product occupies
// a slot; deleting the product clears the reference but keeps the slot.
// (shelf, level, position) is unique.
type Slot struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ShelfID     uint      `json:"shelfId" gorm:"not null;uniqueIndex:idx_slots_shelf_level_position"`
	Level       int       `json:"level" gorm:"not null;uniqueIndex:idx_slots_shelf_level_position"`
	Position    int       `json:"position" gorm:"not null;uniqueIndex:idx_slots_shelf_level_position"`
	Capacity    int       `json:"capacity" gorm:"not null"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	ProductCode *string   `json:"productCode,omitempty" gorm:"type:varchar(20);index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Shelf   *Shelf   `json:"shelf,omitempty" gorm:"foreignKey:ShelfID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductCode;references:Code;constraint:OnDelete:SET NULL"`
}

// FullCode returns the concatenated slot address used by downstream tooling:
// shelf zone + shelf code + level + position. Requires Shelf to be loaded.
func (s *Slot) FullCode() string {
	if s.Shelf == nil {
		return ""
	}
	return fmt.Sprintf("%s%d%d%d", s.Shelf.Zone, s.Shelf.Code, s.Level, s.Position)
}
