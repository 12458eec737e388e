package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/enum"
	"github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"

	reasonSalePayment  = "Pagamento de venda"
	reasonManualCredit = "Ajuste manual de crédito"
	reasonDebtSettled  = "Quitação de débitos"
)

// LedgerService owns the client ledger and implements the sale engine: how a
// cart becomes a persisted sale, how payment methods interact with store
// credit, and how cancellations and settlements reverse those effects.
type LedgerService struct {
	clientRepo repository.ClientRepository
	catalog    *CatalogService
	logger     *zap.Logger
	now        func() time.Time

	// Serializes ledger load-mutate-save cycles. Held before any catalog
	// call, so lock order is always ledger then catalog.
	mu sync.Mutex
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(clientRepo repository.ClientRepository, catalog *CatalogService, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		clientRepo: clientRepo,
		catalog:    catalog,
		logger:     logger,
		now:        time.Now,
	}
}

// Order is a checkout request handed to the sale engine.
type Order struct {
	Items         []entity.SaleItem
	Total         decimal.Decimal
	PaymentMethod enum.PaymentMethod
	Installments  int
}

// SettlementResult summarizes how a recorded sale was settled, for operator
// messaging.
type SettlementResult struct {
	SaleID     int             `json:"sale_id"`
	CreditUsed decimal.Decimal `json:"credit_used"`
	Remaining  decimal.Decimal `json:"remaining"`
	Paid       bool            `json:"paid"`
}

// GetLedger returns the full client ledger.
func (s *LedgerService) GetLedger(ctx context.Context) (entity.Ledger, error) {
	return s.clientRepo.GetAll(ctx)
}

// GetClient returns one client by name.
func (s *LedgerService) GetClient(ctx context.Context, name string) (*entity.Client, error) {
	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	client, ok := ledger[name]
	if !ok {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ClientSummary is one row of the client overview: balance, outstanding debt
// and whether the client is square.
type ClientSummary struct {
	Name    string          `json:"name"`
	Credits decimal.Decimal `json:"credits"`
	Owed    decimal.Decimal `json:"owed"`
	Settled bool            `json:"settled"`
}

// ListClientSummaries returns every client with the derived owed amount,
// sorted by name.
func (s *LedgerService) ListClientSummaries(ctx context.Context) ([]ClientSummary, error) {
	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]ClientSummary, 0, len(ledger))
	for name, client := range ledger {
		owed := client.Owed()
		summaries = append(summaries, ClientSummary{
			Name:    name,
			Credits: client.Credits,
			Owed:    owed,
			Settled: owed.IsZero(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

func validateOrder(clientName string, order *Order) error {
	if strings.TrimSpace(clientName) == "" {
		return apperror.ErrClientRequired
	}
	if len(order.Items) == 0 {
		return apperror.ErrEmptyCart
	}
	if !order.PaymentMethod.Valid() {
		return apperror.NewBadRequestError(fmt.Sprintf("Unknown payment method %q", order.PaymentMethod))
	}
	if order.Installments < 1 {
		return apperror.NewBadRequestError("Installments must be at least 1")
	}
	return nil
}

// RecordSale runs the checkout reconciliation: validates stock, applies the
// payment method against the client's balance, appends the sale to the
// client's history and decrements stock. The client is created implicitly on
// first sale.
func (s *LedgerService) RecordSale(ctx context.Context, clientName string, order Order) (*SettlementResult, error) {
	if !order.PaymentMethod.Deferred() {
		order.Installments = 1
	}
	if err := validateOrder(clientName, &order); err != nil {
		return nil, err
	}
	clientName = strings.TrimSpace(clientName)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Insufficient stock aborts before any state changes.
	for _, item := range order.Items {
		stock, found, err := s.catalog.StockFor(ctx, item.Name)
		if err != nil {
			return nil, err
		}
		if found && item.Quantity > stock {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Estoque insuficiente para %s. Disponível: %d.", item.Name, stock))
		}
	}

	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	client, ok := ledger[clientName]
	if !ok {
		client = entity.NewClient()
		ledger[clientName] = client
	}

	timestamp := s.now()
	method := order.PaymentMethod

	creditUsed := decimal.Zero
	remaining := order.Total
	paid := false

	switch {
	case method.UsesStoreCredit():
		creditUsed = decimal.Min(client.Credits, order.Total)
		remaining = order.Total.Sub(creditUsed)
		client.Credits = client.Credits.Sub(creditUsed)
		if client.Credits.Sign() < 0 {
			client.Credits = decimal.Zero
		}
		paid = remaining.IsZero()
		if creditUsed.Sign() > 0 {
			client.CreditHistory = append(client.CreditHistory, entity.CreditEntry{
				Timestamp: timestamp.Format(timestampLayout),
				Delta:     creditUsed.Neg(),
				Reason:    reasonSalePayment,
			})
		}
	case method.Immediate():
		paid = true
		remaining = decimal.Zero
	case method.Deferred():
		// Fully deferred; the installment count is stored for display only.
		paid = false
		remaining = order.Total
	}

	paidAmount := creditUsed
	if paid {
		// A sale that is fully paid always records the full total, so later
		// reporting never has to reconstruct it.
		paidAmount = order.Total
	}

	sale := entity.Sale{
		ID:                   len(client.Sales) + 1,
		Items:                order.Items,
		Total:                order.Total,
		Paid:                 paid,
		PaidAmount:           paidAmount,
		Date:                 timestamp.Format(dateLayout),
		Cancelled:            false,
		PaymentMethod:        method,
		PaymentMethodDisplay: method.Display(),
		Installments:         order.Installments,
	}
	client.Sales = append(client.Sales, sale)

	if err := s.clientRepo.SaveAll(ctx, ledger); err != nil {
		return nil, err
	}
	if err := s.catalog.AdjustStockForSale(ctx, order.Items); err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("client", clientName),
		zap.Int("sale_id", sale.ID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("payment_method", string(method)),
	)

	return &SettlementResult{
		SaleID:     sale.ID,
		CreditUsed: creditUsed,
		Remaining:  remaining,
		Paid:       paid,
	}, nil
}

// CancelSale marks a sale cancelled and restores its stock. Returns false
// without touching anything when the sale is already cancelled; cancelling
// twice never restores stock twice.
func (s *LedgerService) CancelSale(ctx context.Context, clientName string, saleID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	client, ok := ledger[clientName]
	if !ok {
		return false, apperror.NewNotFoundError("Client")
	}
	sale := client.FindSale(saleID)
	if sale == nil {
		return false, apperror.NewNotFoundError("Sale")
	}
	if sale.Cancelled {
		return false, nil
	}

	sale.Cancelled = true
	sale.Paid = true
	sale.PaidAmount = decimal.Zero

	if err := s.clientRepo.SaveAll(ctx, ledger); err != nil {
		return false, err
	}
	if err := s.catalog.RestoreStock(ctx, sale.Items); err != nil {
		return false, err
	}

	s.logger.Info("sale cancelled", zap.String("client", clientName), zap.Int("sale_id", saleID))
	return true, nil
}

// AdjustCredit sets a client's balance to the given value, clamping negatives
// to zero. A history entry with the signed delta is appended only when the
// value actually changed. Returns the stored balance.
func (s *LedgerService) AdjustCredit(ctx context.Context, clientName string, value decimal.Decimal) (decimal.Decimal, error) {
	if value.Sign() < 0 {
		value = decimal.Zero
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	client, ok := ledger[clientName]
	if !ok {
		return decimal.Zero, apperror.NewNotFoundError("Client")
	}

	if !value.Equal(client.Credits) {
		client.CreditHistory = append(client.CreditHistory, entity.CreditEntry{
			Timestamp: s.now().Format(timestampLayout),
			Delta:     value.Sub(client.Credits),
			Reason:    reasonManualCredit,
		})
		client.Credits = value
		if err := s.clientRepo.SaveAll(ctx, ledger); err != nil {
			return decimal.Zero, err
		}
		s.logger.Info("credit adjusted", zap.String("client", clientName), zap.String("credits", value.StringFixed(2)))
	}
	return value, nil
}

// MarkClientPaid marks every active sale of one client as fully paid,
// regardless of the credit balance. Cancelled sales are left alone.
func (s *LedgerService) MarkClientPaid(ctx context.Context, clientName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	client, ok := ledger[clientName]
	if !ok {
		return apperror.NewNotFoundError("Client")
	}
	changed := false
	for i := range client.Sales {
		sale := &client.Sales[i]
		if sale.Cancelled || sale.Paid {
			continue
		}
		sale.Paid = true
		sale.PaidAmount = sale.Total
		changed = true
	}
	if !changed {
		return nil
	}
	return s.clientRepo.SaveAll(ctx, ledger)
}

// SettleAllDebts walks every client and, where the credit balance covers the
// outstanding debt, deducts it and marks the unpaid sales fully paid.
// Returns the number of clients settled. Clients whose credits fall short are
// skipped entirely; no partial settlement happens here.
func (s *LedgerService) SettleAllDebts(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	settled := 0
	for name, client := range ledger {
		owed := client.Owed()
		if owed.Sign() <= 0 || client.Credits.LessThan(owed) {
			continue
		}
		client.Credits = client.Credits.Sub(owed)
		client.CreditHistory = append(client.CreditHistory, entity.CreditEntry{
			Timestamp: s.now().Format(timestampLayout),
			Delta:     owed.Neg(),
			Reason:    reasonDebtSettled,
		})
		for i := range client.Sales {
			sale := &client.Sales[i]
			if sale.Cancelled || sale.Paid {
				continue
			}
			sale.Paid = true
			sale.PaidAmount = sale.Total
		}
		settled++
		s.logger.Info("debts settled", zap.String("client", name), zap.String("amount", owed.StringFixed(2)))
	}

	if settled == 0 {
		return 0, nil
	}
	if err := s.clientRepo.SaveAll(ctx, ledger); err != nil {
		return 0, err
	}
	return settled, nil
}

// SaleRow is one row of the sales history listing.
type SaleRow struct {
	Client        string          `json:"client"`
	SaleID        int             `json:"sale_id"`
	Date          string          `json:"date"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Installments  int             `json:"installments"`
	Paid          bool            `json:"paid"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Status        enum.SaleStatus `json:"status"`
}

// SalesHistory lists sales across the ledger, optionally filtered by client
// name and by sale date (YYYY-MM-DD). Clients are walked in name order.
func (s *LedgerService) SalesHistory(ctx context.Context, clientFilter, dateFilter string) ([]SaleRow, error) {
	if dateFilter != "" {
		if _, err := time.Parse(dateLayout, dateFilter); err != nil {
			return nil, apperror.NewBadRequestError("Invalid date filter, expected YYYY-MM-DD")
		}
	}

	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ledger))
	for name := range ledger {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := []SaleRow{}
	for _, name := range names {
		if clientFilter != "" && name != clientFilter {
			continue
		}
		client := ledger[name]
		for i := range client.Sales {
			sale := &client.Sales[i]
			if dateFilter != "" && sale.Date != dateFilter {
				continue
			}
			rows = append(rows, SaleRow{
				Client:        name,
				SaleID:        sale.ID,
				Date:          sale.Date,
				Total:         sale.Total,
				PaymentMethod: sale.MethodDisplay(),
				Installments:  sale.Installments,
				Paid:          sale.Paid,
				PaidAmount:    sale.SettledAmount(),
				Remaining:     sale.Remaining(),
				Status:        sale.Status(),
			})
		}
	}
	return rows, nil
}
