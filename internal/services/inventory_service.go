package services

import (
	"context"
	"fmt"
	"strconv"

	"wms-service/internal/events"
	"wms-service/internal/models"
	"wms-service/internal/repository"
)

// InventoryService orchestrates warehouse, shelf, slot and product
// writes. Every successful write dispatches a change event so the
// replica catches up; replication never blocks or fails the write.
type InventoryService interface {
	CreateWarehouse(ctx context.Context, req *models.CreateWarehouseRequest) (*models.Warehouse, error)
	GetWarehouse(ctx context.Context, code string) (*models.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, code string, req *models.UpdateWarehouseRequest) (*models.Warehouse, error)
	DeleteWarehouse(ctx context.Context, code string) error

	CreateShelf(ctx context.Context, warehouseCode string, req *models.CreateShelfRequest) (*models.Shelf, error)
	GetShelf(ctx context.Context, id uint) (*models.Shelf, error)

	CreateSlot(ctx context.Context, shelfID uint, req *models.CreateSlotRequest) (*models.Slot, error)
	GetSlot(ctx context.Context, id uint) (*models.Slot, error)
	UpdateSlot(ctx context.Context, id uint, req *models.UpdateSlotRequest) (*models.Slot, error)

	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, code string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, code string, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, code string) error
}

type inventoryService struct {
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	dispatcher    *events.Dispatcher
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	dispatcher *events.Dispatcher,
) InventoryService {
	return &inventoryService{
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		dispatcher:    dispatcher,
	}
}

func (s *inventoryService) CreateWarehouse(ctx context.Context, req *models.CreateWarehouseRequest) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{
		Code:    req.Code,
		City:    req.City,
		Address: req.Address,
	}

	if err := s.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntityWarehouse, Op: events.OpSaved, Key: warehouse.Code})
	return warehouse, nil
}

func (s *inventoryService) GetWarehouse(ctx context.Context, code string) (*models.Warehouse, error) {
	return s.warehouseRepo.GetByCode(code)
}

func (s *inventoryService) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	return s.warehouseRepo.List()
}

func (s *inventoryService) UpdateWarehouse(ctx context.Context, code string, req *models.UpdateWarehouseRequest) (*models.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if req.City != nil {
		warehouse.City = *req.City
	}
	if req.Address != nil {
		warehouse.Address = *req.Address
	}

	if err := s.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntityWarehouse, Op: events.OpSaved, Key: warehouse.Code})
	return warehouse, nil
}

func (s *inventoryService) DeleteWarehouse(ctx context.Context, code string) error {
	return s.warehouseRepo.Delete(code)
}

func (s *inventoryService) CreateShelf(ctx context.Context, warehouseCode string, req *models.CreateShelfRequest) (*models.Shelf, error) {
	if _, err := s.warehouseRepo.GetByCode(warehouseCode); err != nil {
		return nil, err
	}

	shelf := &models.Shelf{
		WarehouseCode: warehouseCode,
		Zone:          req.Zone,
		Code:          req.Code,
		Levels:        req.Levels,
	}

	if err := s.warehouseRepo.CreateShelf(shelf); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntityWarehouse, Op: events.OpSaved, Key: warehouseCode})
	return shelf, nil
}

func (s *inventoryService) GetShelf(ctx context.Context, id uint) (*models.Shelf, error) {
	return s.warehouseRepo.GetShelf(id)
}

func (s *inventoryService) CreateSlot(ctx context.Context, shelfID uint, req *models.CreateSlotRequest) (*models.Slot, error) {
	shelf, err := s.warehouseRepo.GetShelf(shelfID)
	if err != nil {
		return nil, err
	}
	if req.Level > shelf.Levels {
		return nil, fmt.Errorf("shelf %d has only %d levels", shelfID, shelf.Levels)
	}

	slot := &models.Slot{
		ShelfID:  shelfID,
		Level:    req.Level,
		Position: req.Position,
		Capacity: req.Capacity,
	}

	if err := s.warehouseRepo.CreateSlot(slot); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntitySlot, Op: events.OpSaved, Key: strconv.FormatUint(uint64(slot.ID), 10)})
	return slot, nil
}

func (s *inventoryService) GetSlot(ctx context.Context, id uint) (*models.Slot, error) {
	return s.warehouseRepo.GetSlotWithPath(id)
}

func (s *inventoryService) UpdateSlot(ctx context.Context, id uint, req *models.UpdateSlotRequest) (*models.Slot, error) {
	slot, err := s.warehouseRepo.GetSlot(id)
	if err != nil {
		return nil, err
	}

	// A slot change also resyncs the product it previously held, so a
	// reassignment updates both product documents.
	previousProduct := slot.ProductCode

	if req.Capacity != nil {
		slot.Capacity = *req.Capacity
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		slot.Stock = *req.Stock
	}
	if req.ProductCode != nil {
		if *req.ProductCode == "" {
			slot.ProductCode = nil
		} else {
			if _, err := s.productRepo.GetByCode(*req.ProductCode); err != nil {
				return nil, err
			}
			code := *req.ProductCode
			slot.ProductCode = &code
		}
	}
	if err := s.warehouseRepo.UpdateSlot(slot); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntitySlot, Op: events.OpSaved, Key: strconv.FormatUint(uint64(slot.ID), 10)})
	if previousProduct != nil && (slot.ProductCode == nil || *slot.ProductCode != *previousProduct) {
		s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntityProduct, Op: events.OpSaved, Key: *previousProduct})
	}
	return slot, nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntityProduct, Op: events.OpSaved, Key: product.Code})
	return product, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, code string) (*models.Product, error) {
	return s.productRepo.GetAggregate(code)
}

func (s *inventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List()
}

func (s *inventoryService) UpdateProduct(ctx context.Context, code string, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		product.Price = *req.Price
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntityProduct, Op: events.OpSaved, Key: product.Code})
	return product, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, code string) error {
	if err := s.productRepo.Delete(code); err != nil {
		return err
	}

	s.dispatcher.Dispatch(ctx, events.Event{Entity: events.EntityProduct, Op: events.OpDeleted, Key: code})
	return nil
}
