package services

import (
	"context"
	"fmt"
	"strconv"

	"wms-service/internal/events"
	"wms-service/internal/models"
	"wms-service/internal/repository"
)

// OrderService orchestrates order writes and reads. Status transitions
// are recorded as requested; the transition table only feeds the
// valid-transitions endpoint and never rejects an update.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, filters repository.OrderFilters) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
	ValidTransitions(status models.OrderStatus) ([]models.OrderStatus, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	dispatcher  *events.Dispatcher
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	dispatcher *events.Dispatcher,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		dispatcher:  dispatcher,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("invalid payment method: %s", req.PaymentMethod)
	}

	order := &models.Order{
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		Items:         make([]models.OrderItem, 0, len(req.Items)),
	}

	for _, item := range req.Items {
		if _, err := s.productRepo.GetByCode(item.ProductCode); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.dispatchSaved(ctx, order.ID)
	return s.orderRepo.GetByID(order.ID)
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) ListOrders(ctx context.Context, filters repository.OrderFilters) ([]models.Order, int64, error) {
	return s.orderRepo.List(filters)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	s.dispatchSaved(ctx, id)
	return s.orderRepo.GetByID(id)
}

func (s *orderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}

	s.dispatcher.Dispatch(ctx, events.Event{
		Entity: events.EntityOrder,
		Op:     events.OpDeleted,
		Key:    strconv.FormatUint(uint64(id), 10),
	})
	return nil
}

// ValidTransitions lists the statuses an order in the given status may
// move to next.
func (s *orderService) ValidTransitions(status models.OrderStatus) ([]models.OrderStatus, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	return models.GetNextValidOrderStatuses(status), nil
}

func (s *orderService) dispatchSaved(ctx context.Context, id uint) {
	s.dispatcher.Dispatch(ctx, events.Event{
		Entity: events.EntityOrder,
		Op:     events.OpSaved,
		Key:    strconv.FormatUint(uint64(id), 10),
	})
}
