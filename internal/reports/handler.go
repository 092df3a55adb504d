package reports

import (
	"fmt"
	"sort"
	"time"

	"taqueria-backend/internal/cashcut"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type DailySalesRow struct {
	Date          string `json:"date"`
	OrderCount    int    `json:"order_count"`
	TotalCash     string `json:"total_cash"`
	TotalCard     string `json:"total_card"`
	TotalTransfer string `json:"total_transfer"`
	TotalSales    string `json:"total_sales"`
}

type TopProductRow struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Total       string `json:"total"`
}

type SalesReportResponse struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	OrderCount    int             `json:"order_count"`
	TotalCash     string          `json:"total_cash"`
	TotalCard     string          `json:"total_card"`
	TotalTransfer string          `json:"total_transfer"`
	TotalSales    string          `json:"total_sales"`
	Daily         []DailySalesRow `json:"daily"`
	TopProducts   []TopProductRow `json:"top_products"`
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from y to son obligatorios (YYYY-MM-DD)")
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Fecha 'from' inválida, debe ser 'YYYY-MM-DD'")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Fecha 'to' inválida, debe ser 'YYYY-MM-DD'")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "'to' no puede ser anterior a 'from'")
	}
	return from, to, nil
}

func buildSalesReport(from, to time.Time) (SalesReportResponse, error) {
	var orders []models.Order
	if err := database.DB.
		Where("created_at >= ? AND created_at < ? AND status IN ?",
			from, to.AddDate(0, 0, 1),
			[]models.OrderStatus{models.OrderPagada, models.OrderEntregada}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		return SalesReportResponse{}, err
	}

	total := cashcut.Summarize(orders)

	// desglose por día
	byDay := make(map[string][]models.Order)
	for _, o := range orders {
		day := o.CreatedAt.Format("2006-01-02")
		byDay[day] = append(byDay[day], o)
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	daily := make([]DailySalesRow, 0, len(days))
	for _, d := range days {
		s := cashcut.Summarize(byDay[d])
		daily = append(daily, DailySalesRow{
			Date:          d,
			OrderCount:    s.OrderCount,
			TotalCash:     s.TotalCash.StringFixed(2),
			TotalCard:     s.TotalCard.StringFixed(2),
			TotalTransfer: s.TotalTransfer.StringFixed(2),
			TotalSales:    s.TotalSales.StringFixed(2),
		})
	}

	// productos más vendidos en el rango
	type topRow struct {
		Name     string          `gorm:"column:name"`
		Quantity int             `gorm:"column:quantity"`
		Total    decimal.Decimal `gorm:"column:total"`
	}
	var rows []topRow
	if err := database.DB.Model(&models.OrderItem{}).
		Select("products.name as name, SUM(order_items.quantity) as quantity, SUM(order_items.total_price) as total").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status IN ?",
			from, to.AddDate(0, 0, 1),
			[]models.OrderStatus{models.OrderPagada, models.OrderEntregada}).
		Group("products.name").
		Order("quantity desc").
		Limit(10).
		Scan(&rows).Error; err != nil {
		return SalesReportResponse{}, err
	}

	top := make([]TopProductRow, 0, len(rows))
	for _, r := range rows {
		top = append(top, TopProductRow{
			ProductName: r.Name,
			Quantity:    r.Quantity,
			Total:       r.Total.StringFixed(2),
		})
	}

	return SalesReportResponse{
		From:          from.Format("2006-01-02"),
		To:            to.Format("2006-01-02"),
		OrderCount:    total.OrderCount,
		TotalCash:     total.TotalCash.StringFixed(2),
		TotalCard:     total.TotalCard.StringFixed(2),
		TotalTransfer: total.TotalTransfer.StringFixed(2),
		TotalSales:    total.TotalSales.StringFixed(2),
		Daily:         daily,
		TopProducts:   top,
	}, nil
}

// -------------------------------------------------
// GET /api/reports/sales?from=2025-01-01&to=2025-01-31
// -------------------------------------------------
func SalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		report, err := buildSalesReport(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}
		return c.JSON(report)
	}
}

// -------------------------------------------------
// GET /api/reports/sales/export?from=2025-01-01&to=2025-01-31
// Descarga el reporte de ventas en formato Excel.
// -------------------------------------------------
func ExportSalesReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		report, err := buildSalesReport(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Ventas"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Fecha", "Órdenes", "Efectivo", "Tarjeta", "Transferencia", "Total"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for r, row := range report.Daily {
			values := []any{row.Date, row.OrderCount, row.TotalCash, row.TotalCard, row.TotalTransfer, row.TotalSales}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				f.SetCellValue(sheet, cell, v)
			}
		}
		totalRow := len(report.Daily) + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), report.OrderCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), report.TotalCash)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), report.TotalCard)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), report.TotalTransfer)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), report.TotalSales)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		filename := fmt.Sprintf("ventas_%s_%s.xlsx", report.From, report.To)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
