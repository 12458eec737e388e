// Package spreadsheet writes day-end reports as Excel workbooks.
package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SaleRow is one line of the Vendas sheet.
type SaleRow struct {
	Client       string
	SaleID       int
	Date         string
	Total        decimal.Decimal
	Method       string
	Installments int
	Paid         bool
	PaidAmount   decimal.Decimal
	Remaining    decimal.Decimal
}

// ProductRow is one line of the Produtos sheet.
type ProductRow struct {
	Name     string
	Quantity int
	Total    decimal.Decimal
}

// DayReport is the workbook content: a summary plus per-sale and per-product
// rows.
type DayReport struct {
	Date         string
	TotalSales   decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalPending decimal.Decimal
	Sales        []SaleRow
	Products     []ProductRow
}

func money(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func installmentsLabel(n int) string {
	if n > 1 {
		return fmt.Sprintf("%dx", n)
	}
	return "-"
}

func paidLabel(paid bool) string {
	if paid {
		return "Sim"
	}
	return "Não"
}

// WriteDayReport writes the workbook to path with three sheets: Resumo,
// Vendas and Produtos. Parent directories are created as needed.
func WriteDayReport(report *DayReport, path string) error {
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := "Resumo"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}
	summaryRows := [][]interface{}{
		{"Data", report.Date},
		{"Total de Vendas", money(report.TotalSales)},
		{"Total Pago", money(report.TotalPaid)},
		{"Total Pendente", money(report.TotalPending)},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}

	sales := "Vendas"
	if _, err := f.NewSheet(sales); err != nil {
		return err
	}
	header := []interface{}{"Cliente", "Venda", "Data", "Total", "Modalidade", "Parcelas", "Pago", "Valor Pago", "Pendente"}
	if err := f.SetSheetRow(sales, "A1", &header); err != nil {
		return err
	}
	for i, row := range report.Sales {
		values := []interface{}{
			row.Client,
			row.SaleID,
			row.Date,
			money(row.Total),
			row.Method,
			installmentsLabel(row.Installments),
			paidLabel(row.Paid),
			money(row.PaidAmount),
			money(row.Remaining),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sales, cell, &values); err != nil {
			return err
		}
	}

	products := "Produtos"
	if _, err := f.NewSheet(products); err != nil {
		return err
	}
	productHeader := []interface{}{"Produto", "Quantidade", "Total"}
	if err := f.SetSheetRow(products, "A1", &productHeader); err != nil {
		return err
	}
	for i, row := range report.Products {
		values := []interface{}{row.Name, row.Quantity, money(row.Total)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(products, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
