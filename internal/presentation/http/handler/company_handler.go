package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/request"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles company profile HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get handles fetching the company profile
func (h *CompanyHandler) Get(c *gin.Context) {
	profile, err := h.companyService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company profile retrieved successfully", profile)
}

// Update handles replacing the company profile
func (h *CompanyHandler) Update(c *gin.Context) {
	var req request.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.companyService.UpdateProfile(c.Request.Context(), entity.CompanyProfile{
		Name:    req.Name,
		CNPJ:    req.CNPJ,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company profile updated successfully", profile)
}
