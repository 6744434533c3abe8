package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wms-service/internal/models"
	"wms-service/internal/replica"
	"wms-service/internal/repository"
)

// stubStore serves canned documents or fails every call.
type stubStore struct {
	orders   []replica.OrderDocument
	products []replica.ProductDocument
	failing  bool
}

func (s *stubStore) UpsertProduct(ctx context.Context, doc replica.ProductDocument) error {
	return s.err()
}

func (s *stubStore) UpsertWarehouse(ctx context.Context, doc replica.WarehouseDocument) error {
	return s.err()
}

func (s *stubStore) UpsertOrder(ctx context.Context, doc replica.OrderDocument) error {
	return s.err()
}

func (s *stubStore) DeleteProduct(ctx context.Context, code string) error { return s.err() }
func (s *stubStore) DeleteOrder(ctx context.Context, id uint) error       { return s.err() }

func (s *stubStore) RecentOrders(ctx context.Context, limit int) ([]replica.OrderDocument, error) {
	if s.failing {
		return nil, replica.ErrUnavailable
	}
	if len(s.orders) > limit {
		return s.orders[:limit], nil
	}
	return s.orders, nil
}

func (s *stubStore) RecentProducts(ctx context.Context, limit int) ([]replica.ProductDocument, error) {
	if s.failing {
		return nil, replica.ErrUnavailable
	}
	if len(s.products) > limit {
		return s.products[:limit], nil
	}
	return s.products, nil
}

func (s *stubStore) Ping(ctx context.Context) error { return s.err() }

func (s *stubStore) err() error {
	if s.failing {
		return replica.ErrUnavailable
	}
	return nil
}

func reportServiceFixture(t *testing.T, store replica.Store) ReportService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Warehouse{},
		&models.Shelf{},
		&models.Slot{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	require.NoError(t, db.Create(&models.Product{Code: "PRD1", Name: "Tornillos", Price: 1000}).Error)
	require.NoError(t, db.Create(&models.Warehouse{Code: "BOG01", City: "Bogotá", Address: "Calle 1"}).Error)
	shelf := models.Shelf{WarehouseCode: "BOG01", Zone: "A", Code: 1, Levels: 3}
	require.NoError(t, db.Create(&shelf).Error)
	code := "PRD1"
	require.NoError(t, db.Create(&models.Slot{
		ShelfID: shelf.ID, Level: 1, Position: 1, Capacity: 10, Stock: 4, ProductCode: &code,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []models.OrderItem{{ProductCode: "PRD1", Quantity: 2}},
	}).Error)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewReportService(
		repository.NewReportRepository(db),
		repository.NewOrderRepository(db, nil),
		repository.NewProductRepository(db),
		store,
		log,
	)
}

func TestRecentOrders_ServedFromReplica(t *testing.T) {
	store := &stubStore{
		orders: []replica.OrderDocument{{PostgresID: 99, Status: "enviado"}},
	}
	svc := reportServiceFixture(t, store)

	docs, err := svc.RecentOrders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, uint(99), docs[0].PostgresID)
	assert.Equal(t, "enviado", docs[0].Status)
}

func TestRecentOrders_FallsBackToRelational(t *testing.T) {
	svc := reportServiceFixture(t, &stubStore{failing: true})

	docs, err := svc.RecentOrders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "pendiente", docs[0].Status)
	assert.Equal(t, int64(2000), docs[0].Total)
}

func TestRecentProducts_FallsBackToRelational(t *testing.T) {
	svc := reportServiceFixture(t, &stubStore{failing: true})

	docs, err := svc.RecentProducts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "PRD1", docs[0].Code)
	assert.Equal(t, int64(1000), docs[0].Price)

	// The rebuilt document carries the storage locations, same as a
	// replica-served one would.
	assert.Equal(t, 4, docs[0].TotalStock)
	assert.Equal(t, 1, docs[0].LocationCount)
	require.Len(t, docs[0].Locations, 1)
	assert.Equal(t, "BOG01", docs[0].Locations[0].WarehouseCode)
	assert.Equal(t, "Bogotá", docs[0].Locations[0].WarehouseCity)
	assert.Equal(t, 4, docs[0].Locations[0].Stock)
}

func TestTopProductsReport_ClampsLimit(t *testing.T) {
	svc := reportServiceFixture(t, &stubStore{})

	report, err := svc.TopProductsReport(context.Background(), 0, models.ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, 10, report.Limit)

	report, err = svc.TopProductsReport(context.Background(), 500, models.ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, 100, report.Limit)

	report, err = svc.TopProductsReport(context.Background(), 25, models.ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, 25, report.Limit)
}

func TestSalesByDateReport_DefaultsToDaily(t *testing.T) {
	svc := reportServiceFixture(t, &stubStore{})

	report, err := svc.SalesByDateReport(context.Background(), "", models.ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, models.GroupByDay, report.GroupBy)
	assert.NotEmpty(t, report.GeneratedAt)
}
