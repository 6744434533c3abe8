package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"wms-service/internal/models"
	"wms-service/internal/replica"
	"wms-service/internal/repository"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

// ReportService computes the aggregate reports from the relational
// store and serves the recent-activity views from the replica, falling
// back to relational queries when the replica misbehaves.
type ReportService interface {
	InventoryReport(ctx context.Context, warehouseCode string) (*models.InventoryReport, error)
	OrdersReport(ctx context.Context, filters models.ReportFilters) (*models.OrdersReport, error)
	TopProductsReport(ctx context.Context, limit int, filters models.ReportFilters) (*models.TopProductsReport, error)
	WarehouseCapacityReport(ctx context.Context) (*models.WarehouseCapacityReport, error)
	SalesByDateReport(ctx context.Context, groupBy string, filters models.ReportFilters) (*models.SalesByDateReport, error)
	RecentOrders(ctx context.Context, limit int) ([]replica.OrderDocument, error)
	RecentProducts(ctx context.Context, limit int) ([]replica.ProductDocument, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	store       replica.Store
	logger      *logrus.Entry
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	store replica.Store,
	logger *logrus.Logger,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		store:       store,
		logger:      logger.WithField("component", "report_service"),
	}
}

func (s *reportService) InventoryReport(ctx context.Context, warehouseCode string) (*models.InventoryReport, error) {
	report, err := s.reportRepo.InventorySummary(warehouseCode)
	if err != nil {
		return nil, err
	}
	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return report, nil
}

func (s *reportService) OrdersReport(ctx context.Context, filters models.ReportFilters) (*models.OrdersReport, error) {
	report, err := s.reportRepo.OrdersSummary(filters)
	if err != nil {
		return nil, err
	}
	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return report, nil
}

func (s *reportService) TopProductsReport(ctx context.Context, limit int, filters models.ReportFilters) (*models.TopProductsReport, error) {
	limit = clampLimit(limit)

	entries, err := s.reportRepo.TopProducts(limit, filters)
	if err != nil {
		return nil, err
	}

	return &models.TopProductsReport{
		Limit:       limit,
		Products:    entries,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *reportService) WarehouseCapacityReport(ctx context.Context) (*models.WarehouseCapacityReport, error) {
	entries, err := s.reportRepo.WarehouseCapacity()
	if err != nil {
		return nil, err
	}

	return &models.WarehouseCapacityReport{
		Warehouses:  entries,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *reportService) SalesByDateReport(ctx context.Context, groupBy string, filters models.ReportFilters) (*models.SalesByDateReport, error) {
	if groupBy == "" {
		groupBy = models.GroupByDay
	}

	entries, err := s.reportRepo.SalesByDate(groupBy, filters)
	if err != nil {
		return nil, err
	}

	return &models.SalesByDateReport{
		Sales:       entries,
		GroupBy:     groupBy,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// RecentOrders serves the latest orders from the replica. On any
// replica error it rebuilds the same documents from the relational
// store so the endpoint keeps answering.
func (s *reportService) RecentOrders(ctx context.Context, limit int) ([]replica.OrderDocument, error) {
	limit = clampLimit(limit)

	docs, err := s.store.RecentOrders(ctx, limit)
	if err == nil {
		return docs, nil
	}
	s.logger.WithError(err).Warn("Replica read failed, falling back to relational store")

	orders, _, err := s.orderRepo.List(repository.OrderFilters{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}

	docs = make([]replica.OrderDocument, 0, len(orders))
	now := time.Now().UTC()
	for i := range orders {
		docs = append(docs, replica.BuildOrderDocument(&orders[i], now))
	}
	return docs, nil
}

// RecentProducts is the product counterpart of RecentOrders.
func (s *reportService) RecentProducts(ctx context.Context, limit int) ([]replica.ProductDocument, error) {
	limit = clampLimit(limit)

	docs, err := s.store.RecentProducts(ctx, limit)
	if err == nil {
		return docs, nil
	}
	s.logger.WithError(err).Warn("Replica read failed, falling back to relational store")

	products, err := s.productRepo.ListAggregates()
	if err != nil {
		return nil, err
	}
	if len(products) > limit {
		products = products[:limit]
	}

	docs = make([]replica.ProductDocument, 0, len(products))
	now := time.Now().UTC()
	for i := range products {
		docs = append(docs, replica.BuildProductDocument(&products[i], now))
	}
	return docs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}
	if limit > maxTopLimit {
		return maxTopLimit
	}
	return limit
}
