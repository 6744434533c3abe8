package repository

import (
	"fmt"

	"gorm.io/gorm"

	"wms-service/internal/models"
)

// WarehouseRepository defines the interface for warehouse data operations
type WarehouseRepository interface {
	Create(warehouse *models.Warehouse) error
	GetByCode(code string) (*models.Warehouse, error)
	// GetAggregate loads the warehouse with its full shelf/slot/product tree,
	// the shape the replica documents are built from.
	GetAggregate(code string) (*models.Warehouse, error)
	List() ([]models.Warehouse, error)
	ListCodes() ([]string, error)
	Update(warehouse *models.Warehouse) error
	Delete(code string) error

	CreateShelf(shelf *models.Shelf) error
	GetShelf(id uint) (*models.Shelf, error)
	CreateSlot(slot *models.Slot) error
	GetSlot(id uint) (*models.Slot, error)
	// GetSlotWithPath resolves the slot together with its shelf and
	// warehouse, used to fan a slot change out to the owning aggregates.
	GetSlotWithPath(id uint) (*models.Slot, error)
	UpdateSlot(slot *models.Slot) error
}

type warehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(warehouse *models.Warehouse) error {
	if err := r.db.Create(warehouse).Error; err != nil {
		return fmt.Errorf("failed to create warehouse: %w", err)
	}
	return nil
}

func (r *warehouseRepository) GetByCode(code string) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.Preload("Shelves").First(&warehouse, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("warehouse %s not found", code)
		}
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}
	return &warehouse, nil
}

func (r *warehouseRepository) GetAggregate(code string) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.
		Preload("Shelves").
		Preload("Shelves.Slots").
		Preload("Shelves.Slots.Product").
		First(&warehouse, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("warehouse %s not found", code)
		}
		return nil, fmt.Errorf("failed to get warehouse aggregate: %w", err)
	}
	return &warehouse, nil
}

func (r *warehouseRepository) List() ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := r.db.Order("code").Find(&warehouses).Error; err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return warehouses, nil
}

func (r *warehouseRepository) ListCodes() ([]string, error) {
	var codes []string
	if err := r.db.Model(&models.Warehouse{}).Order("code").Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list warehouse codes: %w", err)
	}
	return codes, nil
}

func (r *warehouseRepository) Update(warehouse *models.Warehouse) error {
	if err := r.db.Save(warehouse).Error; err != nil {
		return fmt.Errorf("failed to update warehouse: %w", err)
	}
	return nil
}

func (r *warehouseRepository) Delete(code string) error {
	result := r.db.Delete(&models.Warehouse{}, "code = ?", code)
	if result.Error != nil {
		return fmt.Errorf("failed to delete warehouse: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("warehouse %s not found", code)
	}
	return nil
}

func (r *warehouseRepository) CreateShelf(shelf *models.Shelf) error {
	if err := r.db.Create(shelf).Error; err != nil {
		return fmt.Errorf("failed to create shelf: %w", err)
	}
	return nil
}

func (r *warehouseRepository) GetShelf(id uint) (*models.Shelf, error) {
	var shelf models.Shelf
	err := r.db.Preload("Slots").First(&shelf, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shelf %d not found", id)
		}
		return nil, fmt.Errorf("failed to get shelf: %w", err)
	}
	return &shelf, nil
}

func (r *warehouseRepository) CreateSlot(slot *models.Slot) error {
	if err := r.db.Create(slot).Error; err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *warehouseRepository) GetSlot(id uint) (*models.Slot, error) {
	var slot models.Slot
	err := r.db.First(&slot, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("slot %d not found", id)
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *warehouseRepository) GetSlotWithPath(id uint) (*models.Slot, error) {
	var slot models.Slot
	err := r.db.
		Preload("Shelf").
		Preload("Shelf.Warehouse").
		Preload("Product").
		First(&slot, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("slot %d not found", id)
		}
		return nil, fmt.Errorf("failed to get slot path: %w", err)
	}
	return &slot, nil
}

func (r *warehouseRepository) UpdateSlot(slot *models.Slot) error {
	if err := r.db.Save(slot).Error; err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}
	return nil
}
