package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/request"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/response"
	"github.com/cantina-ativa/canteen-api/pkg/pagination"
)

// ClientHandler handles client ledger HTTP requests
type ClientHandler struct {
	ledgerService *service.LedgerService
}

// NewClientHandler creates a new client handler
func NewClientHandler(ledgerService *service.LedgerService) *ClientHandler {
	return &ClientHandler{ledgerService: ledgerService}
}

func paginationParams(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		params.PerPage = perPage
	}
	params.Validate()
	return params
}

// List handles listing client summaries sorted by name
func (h *ClientHandler) List(c *gin.Context) {
	summaries, err := h.ledgerService.ListClientSummaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	result := pagination.Paginate(summaries, paginationParams(c))
	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Get handles fetching a single client record
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.ledgerService.GetClient(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Client retrieved successfully", client)
}

// AdjustCredit handles setting a client's credit balance
func (h *ClientHandler) AdjustCredit(c *gin.Context) {
	var req request.AdjustCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	credits, err := h.ledgerService.AdjustCredit(c.Request.Context(), c.Param("name"), req.Credits)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit updated successfully", gin.H{"credits": credits})
}

// MarkPaid handles marking all of a client's open sales as paid
func (h *ClientHandler) MarkPaid(c *gin.Context) {
	if err := h.ledgerService.MarkClientPaid(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Client marked as paid", nil)
}

// CreditHistory handles listing a client's credit movements
func (h *ClientHandler) CreditHistory(c *gin.Context) {
	client, err := h.ledgerService.GetClient(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit history retrieved successfully", client.CreditHistory)
}
