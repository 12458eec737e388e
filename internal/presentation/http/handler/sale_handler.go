package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/domain/enum"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/response"
	"github.com/cantina-ativa/canteen-api/pkg/pagination"
)

// SaleHandler handles sale history and settlement HTTP requests
type SaleHandler struct {
	ledgerService *service.LedgerService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(ledgerService *service.LedgerService) *SaleHandler {
	return &SaleHandler{ledgerService: ledgerService}
}

// History handles listing sales filtered by client and date
func (h *SaleHandler) History(c *gin.Context) {
	rows, err := h.ledgerService.SalesHistory(c.Request.Context(), c.Query("client"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result := pagination.Paginate(rows, paginationParams(c))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Cancel handles cancelling a sale and restoring its stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	saleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale id")
		return
	}

	cancelled, err := h.ledgerService.CancelSale(c.Request.Context(), c.Param("name"), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !cancelled {
		response.OK(c, "Sale was already cancelled", gin.H{"cancelled": false})
		return
	}
	response.OK(c, "Sale cancelled successfully", gin.H{"cancelled": true})
}

// SettleAll handles settling debts for every client whose credits cover them
func (h *SaleHandler) SettleAll(c *gin.Context) {
	settled, err := h.ledgerService.SettleAllDebts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if settled == 0 {
		response.OK(c, "No clients with sufficient credits to settle", gin.H{"settled": 0})
		return
	}
	response.OK(c, "Debts settled successfully", gin.H{"settled": settled})
}

// PaymentMethods handles listing the accepted payment methods
func (h *SaleHandler) PaymentMethods(c *gin.Context) {
	methods := make([]gin.H, 0, len(enum.AllPaymentMethods()))
	for _, m := range enum.AllPaymentMethods() {
		methods = append(methods, gin.H{
			"value":   m,
			"display": m.Display(),
		})
	}
	response.OK(c, "Payment methods retrieved successfully", methods)
}
