package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"wms-service/internal/models"
)

// Generator renders the aggregate reports as PDF documents.
type Generator struct{}

// NewGenerator creates a new PDF generator
func NewGenerator() *Generator {
	return &Generator{}
}

func newMaroto() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()
	return maroto.New(cfg)
}

// InventoryPDF renders the inventory summary report.
func (g *Generator) InventoryPDF(report *models.InventoryReport) ([]byte, error) {
	m := newMaroto()
	addTitle(m, "Reporte de Inventario", report.GeneratedAt)

	addKeyValueRows(m, [][2]string{
		{"Total productos", fmt.Sprintf("%d", report.TotalProducts)},
		{"Total bodegas", fmt.Sprintf("%d", report.TotalWarehouses)},
		{"Total estanterías", fmt.Sprintf("%d", report.TotalShelves)},
		{"Total ubicaciones", fmt.Sprintf("%d", report.TotalSlots)},
		{"Stock total", fmt.Sprintf("%d", report.TotalStock)},
		{"Capacidad total", fmt.Sprintf("%d", report.TotalCapacity)},
		{"Ocupación", fmt.Sprintf("%.2f%%", report.OccupancyPercent)},
	})

	m.AddRow(5, line.NewCol(12))
	addTableHeader(m, []headerCell{
		{"Bodega", 2}, {"Ciudad", 3}, {"Productos", 2}, {"Stock", 2}, {"Capacidad", 2}, {"Ocupación", 1},
	})
	for _, w := range report.Warehouses {
		addTableRow(m, []headerCell{
			{w.Code, 2},
			{w.City, 3},
			{fmt.Sprintf("%d", w.ProductCount), 2},
			{fmt.Sprintf("%d", w.TotalStock), 2},
			{fmt.Sprintf("%d", w.TotalCapacity), 2},
			{fmt.Sprintf("%.2f%%", w.OccupancyPercent), 1},
		})
	}

	return generate(m)
}

// OrdersPDF renders the orders summary report.
func (g *Generator) OrdersPDF(report *models.OrdersReport) ([]byte, error) {
	m := newMaroto()
	addTitle(m, "Reporte de Pedidos", report.GeneratedAt)

	addKeyValueRows(m, [][2]string{
		{"Total pedidos", fmt.Sprintf("%d", report.TotalOrders)},
		{"Pendientes", fmt.Sprintf("%d", report.ByStatus.Pending)},
		{"En proceso", fmt.Sprintf("%d", report.ByStatus.Processing)},
		{"Enviados", fmt.Sprintf("%d", report.ByStatus.Shipped)},
		{"Entregados", fmt.Sprintf("%d", report.ByStatus.Delivered)},
		{"Cancelados", fmt.Sprintf("%d", report.ByStatus.Cancelled)},
		{"Pagos en efectivo", fmt.Sprintf("%d", report.ByPaymentMethod.Cash)},
		{"Pagos por transferencia", fmt.Sprintf("%d", report.ByPaymentMethod.Transfer)},
		{"Total items", fmt.Sprintf("%d", report.TotalItems)},
		{"Cantidad total de productos", fmt.Sprintf("%d", report.TotalQuantity)},
		{"Valor total", fmt.Sprintf("$%d", report.TotalValue)},
	})

	return generate(m)
}

// TopProductsPDF renders the top-sellers report.
func (g *Generator) TopProductsPDF(report *models.TopProductsReport) ([]byte, error) {
	m := newMaroto()
	addTitle(m, fmt.Sprintf("Productos Más Vendidos (Top %d)", report.Limit), report.GeneratedAt)

	addTableHeader(m, []headerCell{
		{"Código", 2}, {"Nombre", 4}, {"Precio", 2}, {"Pedidos", 1}, {"Cantidad", 1}, {"Valor", 2},
	})
	for _, p := range report.Products {
		addTableRow(m, []headerCell{
			{p.Code, 2},
			{p.Name, 4},
			{fmt.Sprintf("$%d", p.Price), 2},
			{fmt.Sprintf("%d", p.OrderCount), 1},
			{fmt.Sprintf("%d", p.TotalQuantity), 1},
			{fmt.Sprintf("$%d", p.TotalValue), 2},
		})
	}

	return generate(m)
}

// WarehouseCapacityPDF renders the per-warehouse capacity report.
func (g *Generator) WarehouseCapacityPDF(report *models.WarehouseCapacityReport) ([]byte, error) {
	m := newMaroto()
	addTitle(m, "Capacidad de Bodegas", report.GeneratedAt)

	addTableHeader(m, []headerCell{
		{"Bodega", 2}, {"Ciudad", 2}, {"Ubicaciones", 2}, {"Stock", 2}, {"Ocupación", 2}, {"Vacías", 1}, {"Llenas", 1},
	})
	for _, w := range report.Warehouses {
		addTableRow(m, []headerCell{
			{w.Code, 2},
			{w.City, 2},
			{fmt.Sprintf("%d", w.TotalSlots), 2},
			{fmt.Sprintf("%d / %d", w.TotalStock, w.TotalCapacity), 2},
			{fmt.Sprintf("%.2f%%", w.OccupancyPercent), 2},
			{fmt.Sprintf("%d", w.EmptySlots), 1},
			{fmt.Sprintf("%d", w.FullSlots), 1},
		})
	}

	return generate(m)
}

// SalesByDatePDF renders the sales-by-date report.
func (g *Generator) SalesByDatePDF(report *models.SalesByDateReport) ([]byte, error) {
	m := newMaroto()
	addTitle(m, fmt.Sprintf("Ventas por Fecha (%s)", report.GroupBy), report.GeneratedAt)

	addTableHeader(m, []headerCell{
		{"Fecha", 3}, {"Pedidos", 2}, {"Items", 2}, {"Cantidad", 2}, {"Valor", 3},
	})
	for _, s := range report.Sales {
		addTableRow(m, []headerCell{
			{s.Date, 3},
			{fmt.Sprintf("%d", s.TotalOrders), 2},
			{fmt.Sprintf("%d", s.TotalItems), 2},
			{fmt.Sprintf("%d", s.TotalQuantity), 2},
			{fmt.Sprintf("$%d", s.TotalValue), 3},
		})
	}

	return generate(m)
}

type headerCell struct {
	label string
	width int
}

func addTitle(m core.Maroto, title, generatedAt string) {
	m.AddRow(18,
		col.New(12).Add(
			text.New(title, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
			text.New(fmt.Sprintf("Generado: %s", generatedAt), props.Text{
				Size:  8,
				Top:   10,
				Align: align.Center,
			}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func addKeyValueRows(m core.Maroto, pairs [][2]string) {
	for _, pair := range pairs {
		m.AddRow(7,
			col.New(6).Add(text.New(pair[0], props.Text{
				Size:  10,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(pair[1], props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		)
	}
}

func addTableHeader(m core.Maroto, cells []headerCell) {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.width).Add(text.New(c.label, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Left,
		})))
	}
	m.AddRow(8, cols...)
	m.AddRow(2, line.NewCol(12))
}

func addTableRow(m core.Maroto, cells []headerCell) {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.width).Add(text.New(c.label, props.Text{
			Size:  9,
			Align: align.Left,
		})))
	}
	m.AddRow(6, cols...)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}
