package repository

import (
	"fmt"

	"gorm.io/gorm"

	"wms-service/internal/models"
)

// ReportRepository computes the aggregate reports straight from the
// relational store. Aggregation always reads PostgreSQL; the document
// replica only backs the convenience views.
type ReportRepository interface {
	InventorySummary(warehouseCode string) (*models.InventoryReport, error)
	OrdersSummary(filters models.ReportFilters) (*models.OrdersReport, error)
	TopProducts(limit int, filters models.ReportFilters) ([]models.TopProductEntry, error)
	WarehouseCapacity() ([]models.WarehouseCapacityEntry, error)
	SalesByDate(groupBy string, filters models.ReportFilters) ([]models.SalesByDateEntry, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

type inventoryTotalsRow struct {
	TotalProducts   int64
	TotalWarehouses int64
	TotalShelves    int64
	TotalSlots      int64
	TotalStock      int64
	TotalCapacity   int64
}

func (r *reportRepository) InventorySummary(warehouseCode string) (*models.InventoryReport, error) {
	totalsQuery := `
		SELECT
			COUNT(DISTINCT p.code) AS total_products,
			COUNT(DISTINCT b.code) AS total_warehouses,
			COUNT(DISTINCT e.id) AS total_shelves,
			COUNT(u.id) AS total_slots,
			COALESCE(SUM(u.stock), 0) AS total_stock,
			COALESCE(SUM(u.capacity), 0) AS total_capacity
		FROM products p
		LEFT JOIN slots u ON p.code = u.product_code
		LEFT JOIN shelves e ON u.shelf_id = e.id
		LEFT JOIN warehouses b ON e.warehouse_code = b.code`

	var totals inventoryTotalsRow
	var err error
	if warehouseCode != "" {
		err = r.db.Raw(totalsQuery+" WHERE b.code = ?", warehouseCode).Scan(&totals).Error
	} else {
		err = r.db.Raw(totalsQuery).Scan(&totals).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate inventory totals: %w", err)
	}

	perWarehouseQuery := `
		SELECT
			b.code AS code,
			b.city AS city,
			b.address AS address,
			COUNT(DISTINCT u.product_code) AS product_count,
			COALESCE(SUM(u.stock), 0) AS total_stock,
			COALESCE(SUM(u.capacity), 0) AS total_capacity
		FROM warehouses b
		LEFT JOIN shelves e ON b.code = e.warehouse_code
		LEFT JOIN slots u ON e.id = u.shelf_id`

	type warehouseRow struct {
		Code          string
		City          string
		Address       string
		ProductCount  int64
		TotalStock    int64
		TotalCapacity int64
	}

	var rows []warehouseRow
	if warehouseCode != "" {
		err = r.db.Raw(perWarehouseQuery+" WHERE b.code = ? GROUP BY b.code, b.city, b.address", warehouseCode).Scan(&rows).Error
	} else {
		err = r.db.Raw(perWarehouseQuery + " GROUP BY b.code, b.city, b.address").Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate inventory per warehouse: %w", err)
	}

	report := &models.InventoryReport{
		TotalProducts:    totals.TotalProducts,
		TotalWarehouses:  totals.TotalWarehouses,
		TotalShelves:     totals.TotalShelves,
		TotalSlots:       totals.TotalSlots,
		TotalStock:       totals.TotalStock,
		TotalCapacity:    totals.TotalCapacity,
		OccupancyPercent: occupancyPercent(totals.TotalStock, totals.TotalCapacity),
		Warehouses:       make([]models.InventoryWarehouseEntry, 0, len(rows)),
	}

	for _, row := range rows {
		report.Warehouses = append(report.Warehouses, models.InventoryWarehouseEntry{
			Code:             row.Code,
			City:             row.City,
			Address:          row.Address,
			ProductCount:     row.ProductCount,
			TotalStock:       row.TotalStock,
			TotalCapacity:    row.TotalCapacity,
			OccupancyPercent: occupancyPercent(row.TotalStock, row.TotalCapacity),
		})
	}

	return report, nil
}

func (r *reportRepository) OrdersSummary(filters models.ReportFilters) (*models.OrdersReport, error) {
	countsQuery := `
		SELECT
			COUNT(p.id) AS total_orders,
			COUNT(CASE WHEN p.status = 'pendiente' THEN 1 END) AS pending,
			COUNT(CASE WHEN p.status = 'procesando' THEN 1 END) AS processing,
			COUNT(CASE WHEN p.status = 'enviado' THEN 1 END) AS shipped,
			COUNT(CASE WHEN p.status = 'entregado' THEN 1 END) AS delivered,
			COUNT(CASE WHEN p.status = 'cancelado' THEN 1 END) AS cancelled,
			COUNT(CASE WHEN p.payment_method = 'efectivo' THEN 1 END) AS cash,
			COUNT(CASE WHEN p.payment_method = 'transferencia' THEN 1 END) AS transfer
		FROM orders p
		WHERE 1=1`

	type countsRow struct {
		TotalOrders int64
		Pending     int64
		Processing  int64
		Shipped     int64
		Delivered   int64
		Cancelled   int64
		Cash        int64
		Transfer    int64
	}

	query, args := applyOrderFilters(countsQuery, filters)
	var counts countsRow
	if err := r.db.Raw(query, args...).Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate order counts: %w", err)
	}

	itemsQuery := `
		SELECT
			COUNT(i.id) AS total_items,
			COALESCE(SUM(i.quantity), 0) AS total_quantity,
			COALESCE(SUM(i.quantity * pr.price), 0) AS total_value
		FROM order_items i
		JOIN orders p ON i.order_id = p.id
		JOIN products pr ON i.product_code = pr.code
		WHERE 1=1`

	type itemsRow struct {
		TotalItems    int64
		TotalQuantity int64
		TotalValue    int64
	}

	query, args = applyOrderFilters(itemsQuery, filters)
	var items itemsRow
	if err := r.db.Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate order items: %w", err)
	}

	return &models.OrdersReport{
		TotalOrders: counts.TotalOrders,
		ByStatus: models.OrdersByStatus{
			Pending:    counts.Pending,
			Processing: counts.Processing,
			Shipped:    counts.Shipped,
			Delivered:  counts.Delivered,
			Cancelled:  counts.Cancelled,
		},
		ByPaymentMethod: models.OrdersByPayment{
			Cash:     counts.Cash,
			Transfer: counts.Transfer,
		},
		TotalItems:    items.TotalItems,
		TotalQuantity: items.TotalQuantity,
		TotalValue:    items.TotalValue,
	}, nil
}

func (r *reportRepository) TopProducts(limit int, filters models.ReportFilters) ([]models.TopProductEntry, error) {
	query := `
		SELECT
			pr.code AS code,
			pr.name AS name,
			pr.description AS description,
			pr.price AS price,
			COUNT(DISTINCT i.order_id) AS order_count,
			COALESCE(SUM(i.quantity), 0) AS total_quantity,
			COALESCE(SUM(i.quantity * pr.price), 0) AS total_value
		FROM products pr
		JOIN order_items i ON pr.code = i.product_code
		JOIN orders p ON i.order_id = p.id
		WHERE p.status != 'cancelado'`

	args := []interface{}{}
	if filters.DateFrom != "" {
		query += " AND p.created_at >= ?"
		args = append(args, filters.DateFrom)
	}
	if filters.DateTo != "" {
		query += " AND p.created_at <= ?"
		args = append(args, filters.DateTo)
	}

	query += `
		GROUP BY pr.code, pr.name, pr.description, pr.price
		ORDER BY total_quantity DESC
		LIMIT ?`
	args = append(args, limit)

	var entries []models.TopProductEntry
	if err := r.db.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}
	return entries, nil
}

func (r *reportRepository) WarehouseCapacity() ([]models.WarehouseCapacityEntry, error) {
	query := `
		SELECT
			b.code AS code,
			b.city AS city,
			b.address AS address,
			COUNT(DISTINCT e.id) AS total_shelves,
			COUNT(u.id) AS total_slots,
			COALESCE(SUM(u.capacity), 0) AS total_capacity,
			COALESCE(SUM(u.stock), 0) AS total_stock,
			COUNT(CASE WHEN u.stock = 0 THEN 1 END) AS empty_slots,
			COUNT(CASE WHEN u.stock >= u.capacity THEN 1 END) AS full_slots
		FROM warehouses b
		LEFT JOIN shelves e ON b.code = e.warehouse_code
		LEFT JOIN slots u ON e.id = u.shelf_id
		GROUP BY b.code, b.city, b.address
		ORDER BY b.code`

	type capacityRow struct {
		Code          string
		City          string
		Address       string
		TotalShelves  int64
		TotalSlots    int64
		TotalCapacity int64
		TotalStock    int64
		EmptySlots    int64
		FullSlots     int64
	}

	var rows []capacityRow
	if err := r.db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate warehouse capacity: %w", err)
	}

	entries := make([]models.WarehouseCapacityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.WarehouseCapacityEntry{
			Code:             row.Code,
			City:             row.City,
			Address:          row.Address,
			TotalShelves:     row.TotalShelves,
			TotalSlots:       row.TotalSlots,
			TotalCapacity:    row.TotalCapacity,
			TotalStock:       row.TotalStock,
			OccupancyPercent: occupancyPercent(row.TotalStock, row.TotalCapacity),
			EmptySlots:       row.EmptySlots,
			FullSlots:        row.FullSlots,
		})
	}

	return entries, nil
}

func (r *reportRepository) SalesByDate(groupBy string, filters models.ReportFilters) ([]models.SalesByDateEntry, error) {
	dateExpr, err := r.dateBucketExpr(groupBy)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			%s AS date,
			COUNT(DISTINCT p.id) AS total_orders,
			COUNT(i.id) AS total_items,
			COALESCE(SUM(i.quantity), 0) AS total_quantity,
			COALESCE(SUM(i.quantity * pr.price), 0) AS total_value
		FROM orders p
		LEFT JOIN order_items i ON p.id = i.order_id
		LEFT JOIN products pr ON i.product_code = pr.code
		WHERE p.status != 'cancelado'`, dateExpr)

	args := []interface{}{}
	if filters.DateFrom != "" {
		query += " AND p.created_at >= ?"
		args = append(args, filters.DateFrom)
	}
	if filters.DateTo != "" {
		query += " AND p.created_at <= ?"
		args = append(args, filters.DateTo)
	}

	query += fmt.Sprintf(" GROUP BY %s ORDER BY date DESC", dateExpr)

	var entries []models.SalesByDateEntry
	if err := r.db.Raw(query, args...).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by date: %w", err)
	}
	return entries, nil
}

// dateBucketExpr returns the bucketing expression for the active SQL
// dialect. Tests run on SQLite, production on PostgreSQL.
func (r *reportRepository) dateBucketExpr(groupBy string) (string, error) {
	sqlite := r.db.Dialector.Name() == "sqlite"

	switch groupBy {
	case models.GroupByDay:
		if sqlite {
			return "strftime('%Y-%m-%d', p.created_at)", nil
		}
		return "to_char(p.created_at, 'YYYY-MM-DD')", nil
	case models.GroupByMonth:
		if sqlite {
			return "strftime('%Y-%m-01', p.created_at)", nil
		}
		return "to_char(date_trunc('month', p.created_at), 'YYYY-MM-DD')", nil
	case models.GroupByYear:
		if sqlite {
			return "strftime('%Y-01-01', p.created_at)", nil
		}
		return "to_char(date_trunc('year', p.created_at), 'YYYY-MM-DD')", nil
	default:
		return "", fmt.Errorf("unsupported grouping %q", groupBy)
	}
}

func applyOrderFilters(query string, filters models.ReportFilters) (string, []interface{}) {
	args := []interface{}{}
	if filters.Status != "" {
		query += " AND p.status = ?"
		args = append(args, filters.Status)
	}
	if filters.DateFrom != "" {
		query += " AND p.created_at >= ?"
		args = append(args, filters.DateFrom)
	}
	if filters.DateTo != "" {
		query += " AND p.created_at <= ?"
		args = append(args, filters.DateTo)
	}
	return query, args
}

// occupancyPercent guards the zero-capacity case and rounds to 2 decimals.
func occupancyPercent(stock, capacity int64) float64 {
	if capacity <= 0 {
		return 0
	}
	pct := float64(stock) / float64(capacity) * 100
	return float64(int64(pct*100+0.5)) / 100
}
