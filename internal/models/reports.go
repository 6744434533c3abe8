package models

// Report payload types. The JSON field names here are part of the service's
// external contract: analytics tooling and the operations dashboard consume
// them as-is, so they keep the legacy Spanish naming.

// InventoryReport is the global inventory summary with a per-warehouse
// breakdown.
type InventoryReport struct {
	TotalProducts    int64                     `json:"total_productos"`
	TotalWarehouses  int64                     `json:"total_bodegas"`
	TotalShelves     int64                     `json:"total_estanterias"`
	TotalSlots       int64                     `json:"total_ubicaciones"`
	TotalStock       int64                     `json:"stock_total"`
	TotalCapacity    int64                     `json:"capacidad_total"`
	OccupancyPercent float64                   `json:"porcentaje_ocupacion"`
	Warehouses       []InventoryWarehouseEntry `json:"bodegas"`
	GeneratedAt      string                    `json:"fecha_generacion"`
}

// InventoryWarehouseEntry is one warehouse row of the inventory report.
type InventoryWarehouseEntry struct {
	Code             string  `json:"codigo"`
	City             string  `json:"ciudad"`
	Address          string  `json:"direccion"`
	ProductCount     int64   `json:"cantidad_productos"`
	TotalStock       int64   `json:"stock_total"`
	TotalCapacity    int64   `json:"capacidad_total"`
	OccupancyPercent float64 `json:"porcentaje_ocupacion"`
}

// OrdersReport aggregates orders by status and payment method plus item
// totals for the selected window.
type OrdersReport struct {
	TotalOrders     int64           `json:"total_pedidos"`
	ByStatus        OrdersByStatus  `json:"por_estado"`
	ByPaymentMethod OrdersByPayment `json:"por_metodo_pago"`
	TotalItems      int64           `json:"total_items"`
	TotalQuantity   int64           `json:"cantidad_total_productos"`
	TotalValue      int64           `json:"valor_total"`
	GeneratedAt     string          `json:"fecha_generacion"`
}

// OrdersByStatus carries per-status order counts.
type OrdersByStatus struct {
	Pending    int64 `json:"pendiente"`
	Processing int64 `json:"procesando"`
	Shipped    int64 `json:"enviado"`
	Delivered  int64 `json:"entregado"`
	Cancelled  int64 `json:"cancelado"`
}

// OrdersByPayment carries per-payment-method order counts.
type OrdersByPayment struct {
	Cash     int64 `json:"efectivo"`
	Transfer int64 `json:"transferencia"`
}

// TopProductsReport lists the best-selling products, cancelled orders
// excluded.
type TopProductsReport struct {
	Products    []TopProductEntry `json:"productos"`
	Limit       int               `json:"limite"`
	GeneratedAt string            `json:"fecha_generacion"`
}

// TopProductEntry is one product row of the top-sellers report.
type TopProductEntry struct {
	Code          string `json:"codigo"`
	Name          string `json:"nombre"`
	Description   string `json:"descripcion"`
	Price         int64  `json:"precio"`
	OrderCount    int64  `json:"veces_pedido"`
	TotalQuantity int64  `json:"cantidad_total"`
	TotalValue    int64  `json:"valor_total"`
}

// WarehouseCapacityReport lists occupancy per warehouse.
type WarehouseCapacityReport struct {
	Warehouses  []WarehouseCapacityEntry `json:"bodegas"`
	GeneratedAt string                   `json:"fecha_generacion"`
}

// WarehouseCapacityEntry is one warehouse row of the capacity report.
type WarehouseCapacityEntry struct {
	Code             string  `json:"codigo"`
	City             string  `json:"ciudad"`
	Address          string  `json:"direccion"`
	TotalShelves     int64   `json:"total_estanterias"`
	TotalSlots       int64   `json:"total_ubicaciones"`
	TotalCapacity    int64   `json:"capacidad_total"`
	TotalStock       int64   `json:"stock_total"`
	OccupancyPercent float64 `json:"porcentaje_ocupacion"`
	EmptySlots       int64   `json:"ubicaciones_vacias"`
	FullSlots        int64   `json:"ubicaciones_llenas"`
}

// SalesByDateReport buckets non-cancelled orders by day, month or year.
type SalesByDateReport struct {
	Sales       []SalesByDateEntry `json:"ventas"`
	GroupBy     string             `json:"agrupar_por"`
	GeneratedAt string             `json:"fecha_generacion"`
}

// SalesByDateEntry is one date bucket of the sales report.
type SalesByDateEntry struct {
	Date          string `json:"fecha"`
	TotalOrders   int64  `json:"total_pedidos"`
	TotalItems    int64  `json:"total_items"`
	TotalQuantity int64  `json:"cantidad_productos"`
	TotalValue    int64  `json:"valor_total"`
}

// ReportFilters are the common query filters for order-scoped reports.
// Dates are inclusive ISO YYYY-MM-DD strings; empty means unbounded.
type ReportFilters struct {
	Status    string
	DateFrom  string
	DateTo    string
	Warehouse string
}

// Sales grouping granularities accepted by the sales-by-date report.
const (
	GroupByDay   = "dia"
	GroupByMonth = "mes"
	GroupByYear  = "año"
)

// IsValidGroupBy reports whether the granularity is supported.
func IsValidGroupBy(g string) bool {
	return g == GroupByDay || g == GroupByMonth || g == GroupByYear
}
