package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
	"github.com/cantina-ativa/canteen-api/pkg/spreadsheet"
)

// ProductRow aggregates quantity and revenue for one product across a day.
type ProductRow struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// ReportSummary carries the day's totals.
type ReportSummary struct {
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
}

// DayReport aggregates one calendar date's non-cancelled sales.
type DayReport struct {
	Date         string        `json:"date"`
	SalesRows    []SaleRow     `json:"sales_rows"`
	ProductsRows []ProductRow  `json:"products_rows"`
	Summary      ReportSummary `json:"summary"`
}

// BuildDayReport aggregates the given ledger snapshot for one date. Pure
// function: no persistence access, no side effects. Cancelled sales are
// excluded everywhere.
func BuildDayReport(ledger entity.Ledger, date string) (*DayReport, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperror.NewBadRequestError("Invalid report date, expected YYYY-MM-DD")
	}

	names := make([]string, 0, len(ledger))
	for name := range ledger {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &DayReport{
		Date:         date,
		SalesRows:    []SaleRow{},
		ProductsRows: []ProductRow{},
		Summary: ReportSummary{
			TotalSales:   decimal.Zero,
			TotalPaid:    decimal.Zero,
			TotalPending: decimal.Zero,
		},
	}

	productIndex := map[string]int{}

	for _, name := range names {
		client := ledger[name]
		for i := range client.Sales {
			sale := &client.Sales[i]
			if sale.Date != date || sale.Cancelled {
				continue
			}

			paidAmount := sale.SettledAmount()
			report.SalesRows = append(report.SalesRows, SaleRow{
				Client:        name,
				SaleID:        sale.ID,
				Date:          sale.Date,
				Total:         sale.Total,
				PaymentMethod: sale.MethodDisplay(),
				Installments:  sale.Installments,
				Paid:          sale.Paid,
				PaidAmount:    paidAmount,
				Remaining:     sale.Remaining(),
				Status:        sale.Status(),
			})
			report.Summary.TotalSales = report.Summary.TotalSales.Add(sale.Total)
			report.Summary.TotalPaid = report.Summary.TotalPaid.Add(paidAmount)

			for _, item := range sale.Items {
				if item.Name == "" {
					continue
				}
				lineTotal := item.LineTotal
				if lineTotal.IsZero() {
					lineTotal = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
				}
				idx, ok := productIndex[item.Name]
				if !ok {
					idx = len(report.ProductsRows)
					productIndex[item.Name] = idx
					report.ProductsRows = append(report.ProductsRows, ProductRow{Name: item.Name, Total: decimal.Zero})
				}
				report.ProductsRows[idx].Quantity += item.Quantity
				report.ProductsRows[idx].Total = report.ProductsRows[idx].Total.Add(lineTotal)
			}
		}
	}

	pending := report.Summary.TotalSales.Sub(report.Summary.TotalPaid)
	if pending.Sign() < 0 {
		pending = decimal.Zero
	}
	report.Summary.TotalPending = pending
	return report, nil
}

// ReportService builds and exports day-end reports.
type ReportService struct {
	clientRepo repository.ClientRepository
	exportDir  string
	logger     *zap.Logger
}

// NewReportService creates a new report service.
func NewReportService(clientRepo repository.ClientRepository, exportDir string, logger *zap.Logger) *ReportService {
	return &ReportService{clientRepo: clientRepo, exportDir: exportDir, logger: logger}
}

// DayReport builds the report for one date from the current ledger.
func (s *ReportService) DayReport(ctx context.Context, date string) (*DayReport, error) {
	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDayReport(ledger, date)
}

// ExportDayReport builds the report and writes it as a spreadsheet with the
// Resumo, Vendas and Produtos sheets. Returns the written file path.
func (s *ReportService) ExportDayReport(ctx context.Context, date string) (string, *DayReport, error) {
	report, err := s.DayReport(ctx, date)
	if err != nil {
		return "", nil, err
	}

	doc := &spreadsheet.DayReport{
		Date:         report.Date,
		TotalSales:   report.Summary.TotalSales,
		TotalPaid:    report.Summary.TotalPaid,
		TotalPending: report.Summary.TotalPending,
	}
	for _, row := range report.SalesRows {
		doc.Sales = append(doc.Sales, spreadsheet.SaleRow{
			Client:       row.Client,
			SaleID:       row.SaleID,
			Date:         row.Date,
			Total:        row.Total,
			Method:       row.PaymentMethod,
			Installments: row.Installments,
			Paid:         row.Paid,
			PaidAmount:   row.PaidAmount,
			Remaining:    row.Remaining,
		})
	}
	for _, row := range report.ProductsRows {
		doc.Products = append(doc.Products, spreadsheet.ProductRow{
			Name:     row.Name,
			Quantity: row.Quantity,
			Total:    row.Total,
		})
	}

	path := filepath.Join(s.exportDir, fmt.Sprintf("relatorio_%s.xlsx", date))
	if err := spreadsheet.WriteDayReport(doc, path); err != nil {
		s.logger.Error("failed to export day report", zap.String("path", path), zap.Error(err))
		return "", nil, err
	}
	s.logger.Info("day report exported", zap.String("path", path))
	return path, report, nil
}
