package handler

import (
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles payment-receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Get handles building the receipt data for one sale
func (h *ReceiptHandler) Get(c *gin.Context) {
	saleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale id")
		return
	}

	receipt, err := h.receiptService.BuildReceipt(c.Request.Context(), c.Param("name"), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt generated successfully", receipt)
}

// Download handles rendering the receipt as a PDF download
func (h *ReceiptHandler) Download(c *gin.Context) {
	saleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale id")
		return
	}

	path, err := h.receiptService.GeneratePDF(c.Request.Context(), c.Param("name"), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
