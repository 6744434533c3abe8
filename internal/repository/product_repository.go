package repository

import (
	"fmt"

	"gorm.io/gorm"

	"wms-service/internal/models"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByCode(code string) (*models.Product, error)
	// GetAggregate loads the product with its slots and their shelf and
	// warehouse path, the shape the replica documents are built from.
	GetAggregate(code string) (*models.Product, error)
	List() ([]models.Product, error)
	// ListAggregates is List with the slot/shelf/warehouse path preloaded,
	// so replica documents rebuilt from it carry the storage locations.
	ListAggregates() ([]models.Product, error)
	ListCodes() ([]string, error)
	Update(product *models.Product) error
	Delete(code string) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByCode(code string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %s not found", code)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) GetAggregate(code string) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Slots").
		Preload("Slots.Shelf").
		Preload("Slots.Shelf.Warehouse").
		First(&product, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %s not found", code)
		}
		return nil, fmt.Errorf("failed to get product aggregate: %w", err)
	}
	return &product, nil
}

func (r *productRepository) List() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("code").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListAggregates() ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Slots").
		Preload("Slots.Shelf").
		Preload("Slots.Shelf.Warehouse").
		Order("code").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list product aggregates: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListCodes() ([]string, error) {
	var codes []string
	if err := r.db.Model(&models.Product{}).Order("code").Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list product codes: %w", err)
	}
	return codes, nil
}

func (r *productRepository) Update(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes the product and clears the reference on any slot that held
// it. Slots themselves survive the delete.
func (r *productRepository) Delete(code string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Slot{}).
			Where("product_code = ?", code).
			Update("product_code", nil).Error; err != nil {
			return fmt.Errorf("failed to clear slot references: %w", err)
		}

		result := tx.Delete(&models.Product{}, "code = ?", code)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("product %s not found", code)
		}
		return nil
	})
}
