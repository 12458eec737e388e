package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/config"
	"github.com/cantina-ativa/canteen-api/internal/infrastructure/repository"
	"github.com/cantina-ativa/canteen-api/internal/infrastructure/storage"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/handler"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true

	dir := t.TempDir()
	logger := zap.NewNop()
	store := storage.NewStore(logger)
	productRepo := repository.NewProductRepository(store, dir+"/products.json")
	clientRepo := repository.NewClientRepository(store, dir+"/clients.json")
	companyRepo := repository.NewCompanyRepository(store, dir+"/company.json")

	catalogService := service.NewCatalogService(productRepo, decimal.RequireFromString("999.99"), 5, logger)
	ledgerService := service.NewLedgerService(clientRepo, catalogService, logger)
	cartService := service.NewCartService(catalogService, ledgerService, logger)
	reportService := service.NewReportService(clientRepo, dir, logger)
	receiptService := service.NewReceiptService(clientRepo, companyRepo, dir, logger)
	companyService := service.NewCompanyService(companyRepo, logger)

	handlers := &Handlers{
		Product: handler.NewProductHandler(catalogService),
		Client:  handler.NewClientHandler(ledgerService),
		Sale:    handler.NewSaleHandler(ledgerService),
		Cart:    handler.NewCartHandler(cartService),
		Report:  handler.NewReportHandler(reportService),
		Receipt: handler.NewReceiptHandler(receiptService),
		Company: handler.NewCompanyHandler(companyService),
	}

	cfg := config.Load()
	return Setup(handlers, &Deps{Cfg: cfg, Logger: logger})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSaleFlowEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	// Create a product.
	w := doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{
		"name": "Suco", "price": 6.5, "stock": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Open a cart and add two units.
	w = doJSON(t, router, http.MethodPost, "/api/v1/carts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cartID, ok := decodeData(t, w)["id"].(string)
	require.True(t, ok)

	w = doJSON(t, router, http.MethodPost, "/api/v1/carts/"+cartID+"/items", gin.H{"product": "Suco"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/carts/"+cartID+"/items/increase", gin.H{"product": "Suco"})
	require.Equal(t, http.StatusOK, w.Code)

	// Checkout at sight; the sale settles in full.
	w = doJSON(t, router, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", gin.H{
		"client": "Maria", "payment_method": "vista",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["paid"])
	assert.Equal(t, float64(1), data["sale_id"])

	// Stock dropped to 8.
	w = doJSON(t, router, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock":8`)

	// History shows the sale.
	w = doJSON(t, router, http.MethodGet, "/api/v1/sales?client=Maria", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"client":"Maria"`)

	// A receipt can be issued for the paid sale.
	w = doJSON(t, router, http.MethodGet, "/api/v1/clients/Maria/sales/1/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "amount_in_words")

	// Cancel the sale; stock is restored.
	w = doJSON(t, router, http.MethodPost, "/api/v1/clients/Maria/sales/1/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["cancelled"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/products", nil)
	assert.Contains(t, w.Body.String(), `"stock":10`)

	// Cancelling again reports the no-op.
	w = doJSON(t, router, http.MethodPost, "/api/v1/clients/Maria/sales/1/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["cancelled"])

	// The cancelled sale no longer counts as debt.
	w = doJSON(t, router, http.MethodGet, "/api/v1/clients/Maria", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreditFlowEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{
		"name": "Pão", "price": 25, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/carts", nil)
	cartID := decodeData(t, w)["id"].(string)
	w = doJSON(t, router, http.MethodPost, "/api/v1/carts/"+cartID+"/items", gin.H{"product": "Pão"})
	require.Equal(t, http.StatusOK, w.Code)

	// Fiado checkout with no balance leaves the full amount owed.
	w = doJSON(t, router, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", gin.H{
		"client": "José", "payment_method": "credito",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["paid"])
	assert.Equal(t, float64(25), data["remaining"])

	// Load enough credit and settle everything.
	w = doJSON(t, router, http.MethodPut, "/api/v1/clients/José/credits", gin.H{"credits": 30})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/sales/settle-all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeData(t, w)["settled"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/clients/José", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"credits":5`)
	assert.Contains(t, w.Body.String(), "Quitação de débitos")
}

func TestValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Missing name fails binding.
	w := doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{"price": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Price above the cap fails domain validation.
	w = doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{
		"name": "Caro", "price": 1500,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown client is a 404.
	w = doJSON(t, router, http.MethodGet, "/api/v1/clients/Fantasma", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Malformed report date is a 400.
	w = doJSON(t, router, http.MethodGet, "/api/v1/reports/day/10-03-2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentMethodsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/sales/payment-methods", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, method := range []string{"vista", "credito", "parcelado", "pix"} {
		assert.Contains(t, w.Body.String(), fmt.Sprintf("%q", method))
	}
}
