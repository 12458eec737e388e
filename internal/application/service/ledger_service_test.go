package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/enum"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
)

func money(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func newLedgerFixture(products []entity.Product, ledger entity.Ledger) (*LedgerService, *fakeProductRepo, *fakeClientRepo) {
	productRepo := &fakeProductRepo{products: products}
	clientRepo := &fakeClientRepo{ledger: ledger}
	catalog := NewCatalogService(productRepo, decimal.RequireFromString("999.99"), 5, testLogger())
	svc := NewLedgerService(clientRepo, catalog, testLogger())
	svc.now = fixedClock("2025-03-10 14:30:00")
	return svc, productRepo, clientRepo
}

func orderFor(items []entity.SaleItem, method enum.PaymentMethod, installments int) Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return Order{Items: items, Total: total, PaymentMethod: method, Installments: installments}
}

func saleItem(name, price string, qty int) entity.SaleItem {
	p := decimal.RequireFromString(price)
	return entity.SaleItem{
		Name:      name,
		Price:     p,
		Quantity:  qty,
		LineTotal: p.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestRecordSaleStoreCreditPartial(t *testing.T) {
	ledger := entity.Ledger{"Ana": {Credits: money(t, "10"), Sales: []entity.Sale{}, CreditHistory: []entity.CreditEntry{}}}
	svc, _, clientRepo := newLedgerFixture([]entity.Product{{Name: "Suco", Price: money(t, "25"), Stock: 10}}, ledger)

	result, err := svc.RecordSale(context.Background(), "Ana", orderFor([]entity.SaleItem{saleItem("Suco", "25", 1)}, enum.PaymentCredito, 1))
	require.NoError(t, err)

	assert.True(t, result.CreditUsed.Equal(money(t, "10")))
	assert.True(t, result.Remaining.Equal(money(t, "15")))
	assert.False(t, result.Paid)

	ana := clientRepo.ledger["Ana"]
	assert.True(t, ana.Credits.IsZero())
	require.Len(t, ana.Sales, 1)
	sale := ana.Sales[0]
	assert.False(t, sale.Paid)
	assert.True(t, sale.PaidAmount.Equal(money(t, "10")))
	assert.Equal(t, enum.SaleStatusPartiallyPaid, sale.Status())

	require.Len(t, ana.CreditHistory, 1)
	entry := ana.CreditHistory[0]
	assert.True(t, entry.Delta.Equal(money(t, "-10")))
	assert.Equal(t, "Pagamento de venda", entry.Reason)
	assert.Equal(t, "2025-03-10 14:30:00", entry.Timestamp)
}

func TestRecordSaleStoreCreditCoversTotal(t *testing.T) {
	ledger := entity.Ledger{"Bia": {Credits: money(t, "50"), Sales: []entity.Sale{}, CreditHistory: []entity.CreditEntry{}}}
	svc, _, clientRepo := newLedgerFixture([]entity.Product{{Name: "Pão", Price: money(t, "20"), Stock: 3}}, ledger)

	result, err := svc.RecordSale(context.Background(), "Bia", orderFor([]entity.SaleItem{saleItem("Pão", "20", 1)}, enum.PaymentCredito, 1))
	require.NoError(t, err)

	assert.True(t, result.Paid)
	assert.True(t, result.Remaining.IsZero())

	bia := clientRepo.ledger["Bia"]
	assert.True(t, bia.Credits.Equal(money(t, "30")))
	sale := bia.Sales[0]
	assert.True(t, sale.Paid)
	// Fully paid sales always record the full total.
	assert.True(t, sale.PaidAmount.Equal(sale.Total))
	assert.Equal(t, enum.SaleStatusPaid, sale.Status())
}

func TestRecordSaleImmediateMethods(t *testing.T) {
	for _, method := range []enum.PaymentMethod{enum.PaymentVista, enum.PaymentDebito, enum.PaymentPix, enum.PaymentCartaoCredito, enum.PaymentCartaoDebito} {
		t.Run(string(method), func(t *testing.T) {
			svc, _, clientRepo := newLedgerFixture([]entity.Product{{Name: "Bolo", Price: money(t, "8"), Stock: 5}}, entity.Ledger{})

			result, err := svc.RecordSale(context.Background(), "Caio", orderFor([]entity.SaleItem{saleItem("Bolo", "8", 2)}, method, 0))
			require.NoError(t, err)

			assert.True(t, result.Paid)
			assert.True(t, result.CreditUsed.IsZero())

			sale := clientRepo.ledger["Caio"].Sales[0]
			assert.True(t, sale.Paid)
			assert.True(t, sale.PaidAmount.Equal(money(t, "16")))
			assert.Equal(t, 1, sale.Installments)
		})
	}
}

func TestRecordSaleInstallmentsFullyDeferred(t *testing.T) {
	ledger := entity.Ledger{"Davi": {Credits: money(t, "100"), Sales: []entity.Sale{}, CreditHistory: []entity.CreditEntry{}}}
	svc, _, clientRepo := newLedgerFixture([]entity.Product{{Name: "Lanche", Price: money(t, "30"), Stock: 5}}, ledger)

	result, err := svc.RecordSale(context.Background(), "Davi", orderFor([]entity.SaleItem{saleItem("Lanche", "30", 1)}, enum.PaymentParcelado, 3))
	require.NoError(t, err)

	assert.False(t, result.Paid)
	assert.True(t, result.Remaining.Equal(money(t, "30")))

	davi := clientRepo.ledger["Davi"]
	// Installment sales never touch the prepaid balance.
	assert.True(t, davi.Credits.Equal(money(t, "100")))
	sale := davi.Sales[0]
	assert.False(t, sale.Paid)
	assert.True(t, sale.PaidAmount.IsZero())
	assert.Equal(t, 3, sale.Installments)
	assert.Empty(t, davi.CreditHistory)
}

func TestRecordSaleCreatesClientAndNumbersSales(t *testing.T) {
	svc, _, clientRepo := newLedgerFixture([]entity.Product{{Name: "Água", Price: money(t, "3"), Stock: 10}}, entity.Ledger{})

	first, err := svc.RecordSale(context.Background(), "Novo Cliente", orderFor([]entity.SaleItem{saleItem("Água", "3", 1)}, enum.PaymentVista, 1))
	require.NoError(t, err)
	second, err := svc.RecordSale(context.Background(), "Novo Cliente", orderFor([]entity.SaleItem{saleItem("Água", "3", 2)}, enum.PaymentVista, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, first.SaleID)
	assert.Equal(t, 2, second.SaleID)
	client := clientRepo.ledger["Novo Cliente"]
	require.NotNil(t, client)
	assert.True(t, client.Credits.IsZero())
}

func TestRecordSaleInsufficientStockAborts(t *testing.T) {
	svc, productRepo, clientRepo := newLedgerFixture([]entity.Product{{Name: "Chips", Price: money(t, "5"), Stock: 2}}, entity.Ledger{})

	_, err := svc.RecordSale(context.Background(), "Eva", orderFor([]entity.SaleItem{saleItem("Chips", "5", 3)}, enum.PaymentVista, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Estoque insuficiente para Chips. Disponível: 2.")

	// Nothing changed: no client record, stock untouched.
	assert.NotContains(t, clientRepo.ledger, "Eva")
	assert.Equal(t, 2, productRepo.products[0].Stock)
	assert.Equal(t, 0, clientRepo.saves)
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	svc, productRepo, _ := newLedgerFixture([]entity.Product{
		{Name: "Chips", Price: money(t, "5"), Stock: 4},
		{Name: "Suco", Price: money(t, "6"), Stock: 1},
	}, entity.Ledger{})

	_, err := svc.RecordSale(context.Background(), "Gil", orderFor([]entity.SaleItem{
		saleItem("Chips", "5", 3),
		saleItem("Suco", "6", 1),
	}, enum.PaymentVista, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, productRepo.products[0].Stock)
	assert.Equal(t, 0, productRepo.products[1].Stock)
}

func TestRecordSaleValidation(t *testing.T) {
	svc, _, _ := newLedgerFixture([]entity.Product{{Name: "Água", Price: money(t, "3"), Stock: 10}}, entity.Ledger{})
	items := []entity.SaleItem{saleItem("Água", "3", 1)}

	_, err := svc.RecordSale(context.Background(), "  ", orderFor(items, enum.PaymentVista, 1))
	assert.ErrorIs(t, err, apperror.ErrClientRequired)

	_, err = svc.RecordSale(context.Background(), "Ana", orderFor(nil, enum.PaymentVista, 1))
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)

	_, err = svc.RecordSale(context.Background(), "Ana", orderFor(items, enum.PaymentMethod("cheque"), 1))
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.RecordSale(context.Background(), "Ana", orderFor(items, enum.PaymentParcelado, 0))
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancelSaleRestoresStockOnce(t *testing.T) {
	ledger := entity.Ledger{"Hugo": {
		Credits: decimal.Zero,
		Sales: []entity.Sale{{
			ID:            1,
			Items:         []entity.SaleItem{saleItem("Chips", "5", 2)},
			Total:         money(t, "10"),
			Date:          "2025-03-10",
			PaymentMethod: enum.PaymentCredito,
			Installments:  1,
		}},
		CreditHistory: []entity.CreditEntry{},
	}}
	svc, productRepo, clientRepo := newLedgerFixture([]entity.Product{{Name: "Chips", Price: money(t, "5"), Stock: 3}}, ledger)

	cancelled, err := svc.CancelSale(context.Background(), "Hugo", 1)
	require.NoError(t, err)
	assert.True(t, cancelled)
	assert.Equal(t, 5, productRepo.products[0].Stock)

	sale := clientRepo.ledger["Hugo"].Sales[0]
	assert.True(t, sale.Cancelled)
	assert.True(t, sale.Paid)
	assert.True(t, sale.PaidAmount.IsZero())
	assert.Equal(t, enum.SaleStatusCancelled, sale.Status())

	// Cancelling again is a no-op and must not restore stock twice.
	cancelled, err = svc.CancelSale(context.Background(), "Hugo", 1)
	require.NoError(t, err)
	assert.False(t, cancelled)
	assert.Equal(t, 5, productRepo.products[0].Stock)
}

func TestCancelSaleNotFound(t *testing.T) {
	svc, _, _ := newLedgerFixture(nil, entity.Ledger{"Iris": entity.NewClient()})

	_, err := svc.CancelSale(context.Background(), "Ninguém", 1)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = svc.CancelSale(context.Background(), "Iris", 99)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestOwedExcludesCancelledSales(t *testing.T) {
	ledger := entity.Ledger{"João": {
		Credits: decimal.Zero,
		Sales: []entity.Sale{
			{ID: 1, Total: money(t, "40"), Date: "2025-03-10", PaymentMethod: enum.PaymentCredito, Installments: 1},
			{ID: 2, Total: money(t, "999"), Date: "2025-03-10", Cancelled: true, Paid: true, PaymentMethod: enum.PaymentCredito, Installments: 1},
		},
		CreditHistory: []entity.CreditEntry{},
	}}
	svc, _, _ := newLedgerFixture(nil, ledger)

	summaries, err := svc.ListClientSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].Owed.Equal(money(t, "40")))
	assert.False(t, summaries[0].Settled)
}

func TestAdjustCredit(t *testing.T) {
	ledger := entity.Ledger{"Lia": {Credits: money(t, "12"), Sales: []entity.Sale{}, CreditHistory: []entity.CreditEntry{}}}
	svc, _, clientRepo := newLedgerFixture(nil, ledger)

	credits, err := svc.AdjustCredit(context.Background(), "Lia", money(t, "20"))
	require.NoError(t, err)
	assert.True(t, credits.Equal(money(t, "20")))

	lia := clientRepo.ledger["Lia"]
	require.Len(t, lia.CreditHistory, 1)
	assert.True(t, lia.CreditHistory[0].Delta.Equal(money(t, "8")))
	assert.Equal(t, "Ajuste manual de crédito", lia.CreditHistory[0].Reason)

	// Negative input clamps to zero.
	credits, err = svc.AdjustCredit(context.Background(), "Lia", money(t, "-5"))
	require.NoError(t, err)
	assert.True(t, credits.IsZero())
	assert.True(t, lia.Credits.IsZero())

	// Setting the same value again records nothing.
	saves := clientRepo.saves
	_, err = svc.AdjustCredit(context.Background(), "Lia", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, saves, clientRepo.saves)
	assert.Len(t, lia.CreditHistory, 2)
}

func TestMarkClientPaid(t *testing.T) {
	ledger := entity.Ledger{"Mia": {
		Credits: decimal.Zero,
		Sales: []entity.Sale{
			{ID: 1, Total: money(t, "10"), Date: "2025-03-10", PaymentMethod: enum.PaymentCredito, Installments: 1},
			{ID: 2, Total: money(t, "7"), Date: "2025-03-10", Cancelled: true, Paid: true, PaymentMethod: enum.PaymentCredito, Installments: 1},
		},
		CreditHistory: []entity.CreditEntry{},
	}}
	svc, _, clientRepo := newLedgerFixture(nil, ledger)

	require.NoError(t, svc.MarkClientPaid(context.Background(), "Mia"))

	mia := clientRepo.ledger["Mia"]
	assert.True(t, mia.Sales[0].Paid)
	assert.True(t, mia.Sales[0].PaidAmount.Equal(money(t, "10")))
	// Cancelled sales keep their zero settled amount.
	assert.True(t, mia.Sales[1].PaidAmount.IsZero())
	assert.True(t, mia.Owed().IsZero())
}

func TestSettleAllDebts(t *testing.T) {
	ledger := entity.Ledger{
		"Rico": {
			Credits: money(t, "50"),
			Sales: []entity.Sale{
				{ID: 1, Total: money(t, "30"), Date: "2025-03-10", PaymentMethod: enum.PaymentCredito, Installments: 1},
			},
			CreditHistory: []entity.CreditEntry{},
		},
		"Sem Saldo": {
			Credits: money(t, "5"),
			Sales: []entity.Sale{
				{ID: 1, Total: money(t, "30"), Date: "2025-03-10", PaymentMethod: enum.PaymentCredito, Installments: 1},
			},
			CreditHistory: []entity.CreditEntry{},
		},
	}
	svc, _, clientRepo := newLedgerFixture(nil, ledger)

	settled, err := svc.SettleAllDebts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, settled)

	rico := clientRepo.ledger["Rico"]
	assert.True(t, rico.Credits.Equal(money(t, "20")))
	assert.True(t, rico.Sales[0].Paid)
	assert.True(t, rico.Sales[0].PaidAmount.Equal(money(t, "30")))
	require.Len(t, rico.CreditHistory, 1)
	assert.True(t, rico.CreditHistory[0].Delta.Equal(money(t, "-30")))
	assert.Equal(t, "Quitação de débitos", rico.CreditHistory[0].Reason)

	// The short client is skipped entirely; no partial settlement.
	skipped := clientRepo.ledger["Sem Saldo"]
	assert.True(t, skipped.Credits.Equal(money(t, "5")))
	assert.False(t, skipped.Sales[0].Paid)

	settled, err = svc.SettleAllDebts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, settled)
}

func TestSalesHistoryFilters(t *testing.T) {
	ledger := entity.Ledger{
		"Ana": {Credits: decimal.Zero, Sales: []entity.Sale{
			{ID: 1, Total: money(t, "10"), Date: "2025-03-10", PaymentMethod: enum.PaymentVista, Paid: true, PaidAmount: money(t, "10"), Installments: 1},
			{ID: 2, Total: money(t, "20"), Date: "2025-03-11", PaymentMethod: enum.PaymentCredito, Installments: 1},
		}, CreditHistory: []entity.CreditEntry{}},
		"Beto": {Credits: decimal.Zero, Sales: []entity.Sale{
			{ID: 1, Total: money(t, "5"), Date: "2025-03-10", PaymentMethod: enum.PaymentPix, Paid: true, PaidAmount: money(t, "5"), Installments: 1},
		}, CreditHistory: []entity.CreditEntry{}},
	}
	svc, _, _ := newLedgerFixture(nil, ledger)

	rows, err := svc.SalesHistory(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Clients come back in name order.
	assert.Equal(t, "Ana", rows[0].Client)
	assert.Equal(t, "Beto", rows[2].Client)

	rows, err = svc.SalesHistory(context.Background(), "Ana", "2025-03-11")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].SaleID)
	assert.Equal(t, enum.SaleStatusUnpaid, rows[0].Status)

	_, err = svc.SalesHistory(context.Background(), "", "11/03/2025")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSettledAmountNormalizesLegacyRecords(t *testing.T) {
	// Bulk settlements written before paid_amount was tracked left
	// paid=true with a zero amount.
	sale := entity.Sale{ID: 1, Total: money(t, "18"), Paid: true, PaidAmount: decimal.Zero}
	assert.True(t, sale.SettledAmount().Equal(money(t, "18")))
	assert.True(t, sale.Remaining().IsZero())
}
