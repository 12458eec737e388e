package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
	"github.com/cantina-ativa/canteen-api/pkg/brdoc"
	"github.com/cantina-ativa/canteen-api/pkg/extenso"
	"github.com/cantina-ativa/canteen-api/pkg/receiptpdf"
)

// ReceiptService composes payment proofs from ledger and company data.
type ReceiptService struct {
	clientRepo  repository.ClientRepository
	companyRepo repository.CompanyRepository
	exportDir   string
	logger      *zap.Logger
	now         func() time.Time
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(clientRepo repository.ClientRepository, companyRepo repository.CompanyRepository, exportDir string, logger *zap.Logger) *ReceiptService {
	return &ReceiptService{
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		exportDir:   exportDir,
		logger:      logger,
		now:         time.Now,
	}
}

// BuildReceipt assembles the receipt value object for one sale. Cancelled
// sales have no payment to prove.
func (s *ReceiptService) BuildReceipt(ctx context.Context, clientName string, saleID int) (*entity.Receipt, error) {
	ledger, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	client, ok := ledger[clientName]
	if !ok {
		return nil, apperror.NewNotFoundError("Client")
	}
	sale := client.FindSale(saleID)
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Cancelled {
		return nil, apperror.NewConflictError("Sale is cancelled; no receipt can be issued")
	}

	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ReceiptItem, len(sale.Items))
	for i, item := range sale.Items {
		subtotal := item.LineTotal
		if subtotal.IsZero() {
			subtotal = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		items[i] = entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Subtotal:  subtotal,
		}
	}

	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			CompanyName: company.Name,
			Address:     company.Address,
			CNPJ:        brdoc.FormatCNPJ(company.CNPJ),
			Phone:       brdoc.FormatPhone(company.Phone),
		},
		ClientName:    clientName,
		SaleID:        sale.ID,
		PaymentMethod: sale.MethodDisplay(),
		PaymentDate:   sale.Date,
		Amount:        sale.Total,
		AmountInWords: extenso.Reais(sale.Total),
		Items:         items,
		Total:         sale.Total,
		EmittedAt:     s.now(),
	}, nil
}

// GeneratePDF renders the sale's receipt into the export directory and
// returns the written file path.
func (s *ReceiptService) GeneratePDF(ctx context.Context, clientName string, saleID int) (string, error) {
	receipt, err := s.BuildReceipt(ctx, clientName, saleID)
	if err != nil {
		return "", err
	}

	doc := &receiptpdf.Receipt{
		CompanyName:   receipt.Header.CompanyName,
		Address:       receipt.Header.Address,
		CNPJ:          receipt.Header.CNPJ,
		Phone:         receipt.Header.Phone,
		ClientName:    receipt.ClientName,
		Amount:        receipt.Amount,
		AmountInWords: receipt.AmountInWords,
		PaymentMethod: receipt.PaymentMethod,
		PaymentDate:   receipt.PaymentDate,
		Total:         receipt.Total,
		EmittedAt:     receipt.EmittedAt,
	}
	for _, item := range receipt.Items {
		doc.Items = append(doc.Items, receiptpdf.Item{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	path := filepath.Join(s.exportDir, fmt.Sprintf("comprovante_%s_%d.pdf", sanitizeFilename(clientName), saleID))
	if err := receiptpdf.Render(doc, path); err != nil {
		s.logger.Error("failed to render receipt", zap.String("path", path), zap.Error(err))
		return "", err
	}
	s.logger.Info("receipt generated", zap.String("path", path))
	return path, nil
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
}
