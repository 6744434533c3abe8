package sync

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"wms-service/internal/events"
	"wms-service/internal/replica"
	"wms-service/internal/repository"
)

// Engine replicates relational state into the document store. Every
// operation is best effort: it reports success with a bool and logs
// failures, and the relational write it follows is never rolled back.
type Engine struct {
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	store         replica.Store
	logger        *logrus.Entry
}

// ResyncSummary counts the outcome of a bulk resync run per category.
type ResyncSummary struct {
	Orders     CategorySummary
	Products   CategorySummary
	Warehouses CategorySummary
}

// CategorySummary is the per-entity tally of a bulk resync.
type CategorySummary struct {
	Total  int
	Synced int
}

// NewEngine creates a new sync engine
func NewEngine(
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	store replica.Store,
	logger *logrus.Logger,
) *Engine {
	return &Engine{
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		store:         store,
		logger:        logger.WithField("component", "sync_engine"),
	}
}

// RegisterHooks subscribes the engine to entity change events. A slot
// change fans out to the product stored in it (when one is assigned)
// and to the warehouse it belongs to, since both documents denormalize
// slot state.
func (e *Engine) RegisterHooks(dispatcher *events.Dispatcher) {
	dispatcher.Register(events.EntityProduct, events.OpSaved, func(ctx context.Context, ev events.Event) bool {
		return e.ResyncProduct(ctx, ev.Key)
	})
	dispatcher.Register(events.EntityProduct, events.OpDeleted, func(ctx context.Context, ev events.Event) bool {
		return e.DeleteProduct(ctx, ev.Key)
	})
	dispatcher.Register(events.EntityWarehouse, events.OpSaved, func(ctx context.Context, ev events.Event) bool {
		return e.ResyncWarehouse(ctx, ev.Key)
	})
	dispatcher.Register(events.EntitySlot, events.OpSaved, func(ctx context.Context, ev events.Event) bool {
		return e.resyncSlot(ctx, ev.Key)
	})
	dispatcher.Register(events.EntityOrder, events.OpSaved, func(ctx context.Context, ev events.Event) bool {
		id, err := strconv.ParseUint(ev.Key, 10, 32)
		if err != nil {
			e.logger.WithError(err).WithField("key", ev.Key).Error("Invalid order key in sync event")
			return false
		}
		return e.ResyncOrder(ctx, uint(id))
	})
	dispatcher.Register(events.EntityOrder, events.OpDeleted, func(ctx context.Context, ev events.Event) bool {
		id, err := strconv.ParseUint(ev.Key, 10, 32)
		if err != nil {
			e.logger.WithError(err).WithField("key", ev.Key).Error("Invalid order key in sync event")
			return false
		}
		return e.DeleteOrder(ctx, uint(id))
	})
}

// ResyncProduct rebuilds the product document from the relational store
// and replaces it in the replica.
func (e *Engine) ResyncProduct(ctx context.Context, code string) bool {
	product, err := e.productRepo.GetAggregate(code)
	if err != nil {
		e.logger.WithError(err).WithField("product_code", code).Error("Failed to load product for sync")
		return false
	}

	doc := replica.BuildProductDocument(product, time.Now().UTC())
	if err := e.store.UpsertProduct(ctx, doc); err != nil {
		e.logger.WithError(err).WithField("product_code", code).Warn("Failed to replicate product")
		return false
	}

	e.logger.WithField("product_code", code).Debug("Product replicated")
	return true
}

// ResyncWarehouse rebuilds the warehouse document and replaces it in
// the replica.
func (e *Engine) ResyncWarehouse(ctx context.Context, code string) bool {
	warehouse, err := e.warehouseRepo.GetAggregate(code)
	if err != nil {
		e.logger.WithError(err).WithField("warehouse_code", code).Error("Failed to load warehouse for sync")
		return false
	}

	doc := replica.BuildWarehouseDocument(warehouse, time.Now().UTC())
	if err := e.store.UpsertWarehouse(ctx, doc); err != nil {
		e.logger.WithError(err).WithField("warehouse_code", code).Warn("Failed to replicate warehouse")
		return false
	}

	e.logger.WithField("warehouse_code", code).Debug("Warehouse replicated")
	return true
}

// ResyncOrder rebuilds the order document and replaces it in the replica.
func (e *Engine) ResyncOrder(ctx context.Context, id uint) bool {
	order, err := e.orderRepo.GetByID(id)
	if err != nil {
		e.logger.WithError(err).WithField("order_id", id).Error("Failed to load order for sync")
		return false
	}

	doc := replica.BuildOrderDocument(order, time.Now().UTC())
	if err := e.store.UpsertOrder(ctx, doc); err != nil {
		e.logger.WithError(err).WithField("order_id", id).Warn("Failed to replicate order")
		return false
	}

	e.logger.WithField("order_id", id).Debug("Order replicated")
	return true
}

// DeleteProduct removes the product document from the replica.
func (e *Engine) DeleteProduct(ctx context.Context, code string) bool {
	if err := e.store.DeleteProduct(ctx, code); err != nil {
		e.logger.WithError(err).WithField("product_code", code).Warn("Failed to delete replicated product")
		return false
	}
	return true
}

// DeleteOrder removes the order document from the replica.
func (e *Engine) DeleteOrder(ctx context.Context, id uint) bool {
	if err := e.store.DeleteOrder(ctx, id); err != nil {
		e.logger.WithError(err).WithField("order_id", id).Warn("Failed to delete replicated order")
		return false
	}
	return true
}

// resyncSlot propagates a slot change to the documents that embed it.
func (e *Engine) resyncSlot(ctx context.Context, key string) bool {
	id, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		e.logger.WithError(err).WithField("key", key).Error("Invalid slot key in sync event")
		return false
	}

	slot, err := e.warehouseRepo.GetSlotWithPath(uint(id))
	if err != nil {
		e.logger.WithError(err).WithField("slot_id", id).Error("Failed to load slot for sync")
		return false
	}

	ok := true
	if slot.ProductCode != nil {
		ok = e.ResyncProduct(ctx, *slot.ProductCode)
	}
	if slot.Shelf != nil {
		ok = e.ResyncWarehouse(ctx, slot.Shelf.WarehouseCode) && ok
	}
	return ok
}

// ResyncAll pushes every order, product and warehouse into the replica.
// It fails fast when the replica itself is unreachable, otherwise it
// keeps going and tallies per-category results.
func (e *Engine) ResyncAll(ctx context.Context) (*ResyncSummary, error) {
	if err := e.store.Ping(ctx); err != nil {
		return nil, err
	}

	summary := &ResyncSummary{}

	orderIDs, err := e.orderRepo.ListIDs()
	if err != nil {
		return nil, err
	}
	summary.Orders.Total = len(orderIDs)
	for _, id := range orderIDs {
		if e.ResyncOrder(ctx, id) {
			summary.Orders.Synced++
		}
	}

	productCodes, err := e.productRepo.ListCodes()
	if err != nil {
		return nil, err
	}
	summary.Products.Total = len(productCodes)
	for _, code := range productCodes {
		if e.ResyncProduct(ctx, code) {
			summary.Products.Synced++
		}
	}

	warehouseCodes, err := e.warehouseRepo.ListCodes()
	if err != nil {
		return nil, err
	}
	summary.Warehouses.Total = len(warehouseCodes)
	for _, code := range warehouseCodes {
		if e.ResyncWarehouse(ctx, code) {
			summary.Warehouses.Synced++
		}
	}

	return summary, nil
}

// Available reports whether the replica answers within the request deadline.
func (e *Engine) Available(ctx context.Context) error {
	return e.store.Ping(ctx)
}
