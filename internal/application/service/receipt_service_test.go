package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/enum"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
)

func newReceiptFixture(t *testing.T, dir string) (*ReceiptService, *fakeClientRepo) {
	t.Helper()
	clientRepo := &fakeClientRepo{ledger: entity.Ledger{
		"Maria Silva": {Credits: decimal.Zero, Sales: []entity.Sale{
			{
				ID:            1,
				Items:         []entity.SaleItem{saleItem("Suco", "6.25", 2)},
				Total:         money(t, "12.50"),
				Paid:          true,
				PaidAmount:    money(t, "12.50"),
				Date:          "2025-03-10",
				PaymentMethod: enum.PaymentPix,
				Installments:  1,
			},
			{
				ID:            2,
				Items:         []entity.SaleItem{saleItem("Bolo", "9", 1)},
				Total:         money(t, "9"),
				Cancelled:     true,
				Paid:          true,
				Date:          "2025-03-10",
				PaymentMethod: enum.PaymentVista,
				Installments:  1,
			},
		}, CreditHistory: []entity.CreditEntry{}},
	}}
	companyRepo := &fakeCompanyRepo{profile: &entity.CompanyProfile{
		Name:    "Cantina Escolar",
		CNPJ:    "12345678000190",
		Phone:   "11987654321",
		Address: "Rua das Flores, 100",
	}}
	svc := NewReceiptService(clientRepo, companyRepo, dir, testLogger())
	svc.now = fixedClock("2025-03-10 16:00:00")
	return svc, clientRepo
}

func TestBuildReceipt(t *testing.T) {
	svc, _ := newReceiptFixture(t, t.TempDir())

	receipt, err := svc.BuildReceipt(context.Background(), "Maria Silva", 1)
	require.NoError(t, err)

	assert.Equal(t, "Cantina Escolar", receipt.Header.CompanyName)
	assert.Equal(t, "12.345.678/0001-90", receipt.Header.CNPJ)
	assert.Equal(t, "(11) 98765-4321", receipt.Header.Phone)
	assert.Equal(t, "Maria Silva", receipt.ClientName)
	assert.Equal(t, "PIX", receipt.PaymentMethod)
	assert.Equal(t, "doze reais e cinquenta centavos", receipt.AmountInWords)
	require.Len(t, receipt.Items, 1)
	assert.True(t, receipt.Items[0].Subtotal.Equal(money(t, "12.50")))
}

func TestBuildReceiptErrors(t *testing.T) {
	svc, _ := newReceiptFixture(t, t.TempDir())

	_, err := svc.BuildReceipt(context.Background(), "Ninguém", 1)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = svc.BuildReceipt(context.Background(), "Maria Silva", 99)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	// Cancelled sales have no payment to prove.
	_, err = svc.BuildReceipt(context.Background(), "Maria Silva", 2)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestGeneratePDFWritesFile(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newReceiptFixture(t, dir)

	path, err := svc.GeneratePDF(context.Background(), "Maria Silva", 1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "comprovante_Maria_Silva_1.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
