package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-stock/internal/interfaces/http"
	"github.com/jhoicas/inventario-stock/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app   *fiber.App
	store *memory.Store
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	s := memory.New()
	_, err := auth.SeedUsers(context.Background(), s.Users(), []auth.SeedUser{
		{ID: testUserID, Email: testEmail, Password: "secreto123", FirstName: "Ana", LastName: "Pérez"},
	})
	require.NoError(t, err)

	m := metrics.New("test")
	mutator := inventory.NewStockMutator(s, nil, m, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockMutator:   mutator,
		HistoryUC:      inventory.NewHistoryUseCase(s.Products(), s.History(), pdf.NewLedgerPDF()),
		LowStockUC:     inventory.NewLowStockUseCase(s.Products(), inventory.DefaultLowStockThreshold),
		TotalsUC:       analytics.NewTotalsUseCase(s.Purchases(), s.Sales()),
		MonthlyUC:      analytics.NewMonthlyUseCase(s.Sales()),
		ProductUC:      usecase.NewProductUseCase(s.Products(), s, mutator),
		PurchaseUC:     usecase.NewPurchaseUseCase(s.Purchases(), s, mutator),
		SaleUC:         usecase.NewSaleUseCase(s.Sales(), s.Stores(), s, mutator),
		StoreUC:        usecase.NewStoreUseCase(s.Stores()),
		ShipmentUC:     usecase.NewShipmentUseCase(s.Shipments()),
		AuthUC:         auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		JWTSecret:      testJWTSecret,
		Idempotency:    memory.NewIdempotencyStore(),
		IdempotencyTTL: time.Hour,
		Metrics:        m,
	})
	return &testAPI{app: app, store: s, token: bearer(t, testUserID)}
}

// call lanza una petición con el token del usuario de prueba; body puede ser nil.
func (a *testAPI) call(t *testing.T, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", a.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

func (a *testAPI) createProduct(t *testing.T, stock int64) string {
	t.Helper()
	resp, body := a.call(t, http.MethodPost, "/api/product/add", map[string]any{
		"name": "Café molido", "manufacturer": "Sello Rojo", "stock": stock, "price": 18500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.ID
}

func (a *testAPI) stock(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := a.store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PostYGet(t *testing.T) {
	a := newTestAPI(t)
	a.token = ""

	resp, body := a.call(t, http.MethodPost, "/api/login", map[string]string{"email": "ANA@tienda.com", "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, testUserID, login.User.ID)

	resp, _ = a.call(t, http.MethodGet, "/api/login", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	a.token = "Bearer " + login.Token
	resp, body = a.call(t, http.MethodGet, "/api/login", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), testEmail)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	a := newTestAPI(t)
	resp, body := a.call(t, http.MethodPost, "/api/login", map[string]string{"email": testEmail, "password": "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_RemoveDentroDelStock(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 10)

	resp, body := a.call(t, http.MethodPost, "/api/stock/adjust", map[string]any{
		"productId": id, "type": "remove", "quantity": 3, "reason": "damage", "notes": "caja rota",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out struct {
		Message string `json:"message"`
		Product struct {
			Stock int64 `json:"stock"`
		} `json:"product"`
		StockHistory struct {
			Type     string `json:"type"`
			Quantity int64  `json:"quantity"`
			Reason   string `json:"reason"`
		} `json:"stockHistory"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, int64(7), out.Product.Stock)
	assert.Equal(t, "remove", out.StockHistory.Type)
	assert.Equal(t, int64(3), out.StockHistory.Quantity)
	assert.Equal(t, "damage", out.StockHistory.Reason)
	assert.Equal(t, int64(7), a.stock(t, id))
}

func TestAdjust_StockInsuficiente(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 2)

	resp, body := a.call(t, http.MethodPost, "/api/stock/adjust", map[string]any{
		"productId": id, "type": "remove", "quantity": 5, "reason": "other",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))
	assert.Equal(t, int64(2), a.stock(t, id))
}

func TestAdjust_Validaciones(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 2)

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"motivo inválido", map[string]any{"productId": id, "type": "add", "quantity": 1, "reason": "sale"}, http.StatusBadRequest, "VALIDATION"},
		{"tipo inválido", map[string]any{"productId": id, "type": "set", "quantity": 1, "reason": "other"}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", map[string]any{"productId": id, "type": "add", "quantity": 0, "reason": "other"}, http.StatusBadRequest, "VALIDATION"},
		{"producto inexistente", map[string]any{"productId": uuid.NewString(), "type": "add", "quantity": 1, "reason": "other"}, http.StatusNotFound, "NOT_FOUND"},
		{"otro usuario", map[string]any{"productId": id, "type": "add", "quantity": 1, "reason": "other", "userId": testOtherID}, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := a.call(t, http.MethodPost, "/api/stock/adjust", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
	assert.Equal(t, int64(2), a.stock(t, id))
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 10)
	resp, _ := a.call(t, http.MethodPost, "/api/stock/adjust", map[string]any{
		"productId": id, "type": "add", "quantity": 4, "reason": "return",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := a.call(t, http.MethodGet, "/api/stock/history/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []struct {
		Type    string `json:"type"`
		Reason  string `json:"reason"`
		Product struct {
			Name string `json:"name"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "return", entries[0].Reason)
	assert.Equal(t, "correction", entries[1].Reason)
	assert.Equal(t, "Café molido", entries[0].Product.Name)

	resp, body = a.call(t, http.MethodGet, "/api/stock/history/no-es-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestHistoryPDF(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 3)

	resp, body := a.call(t, http.MethodGet, "/api/stock/history/"+id+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestLowStock(t *testing.T) {
	a := newTestAPI(t)
	low := a.createProduct(t, 5)
	a.createProduct(t, 40)

	resp, body := a.call(t, http.MethodGet, "/api/stock/low-stock/"+testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, low, list[0].ID)

	resp, body = a.call(t, http.MethodGet, "/api/stock/low-stock/"+testUserID+"?threshold=100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 2)

	resp, _ = a.call(t, http.MethodGet, "/api/stock/low-stock/"+testUserID+"?threshold=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = a.call(t, http.MethodGet, "/api/stock/low-stock/"+testOtherID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras, ventas y totales
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchase_SumaStockYTotal(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 0)

	resp, body := a.call(t, http.MethodPost, "/api/purchase/add", map[string]any{
		"productID": id, "quantityPurchased": 12, "totalPurchaseAmount": 240000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, int64(12), a.stock(t, id))

	resp, body = a.call(t, http.MethodGet, "/api/purchase/get/"+testUserID+"/totalpurchaseamount?period=month", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var total struct {
		TotalPurchaseAmount float64 `json:"totalPurchaseAmount"`
	}
	require.NoError(t, json.Unmarshal(body, &total))
	assert.Equal(t, 240000.0, total.TotalPurchaseAmount)
}

func TestPurchase_IdempotencyKeyRepiteRespuesta(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 0)
	body := map[string]any{"productID": id, "quantityPurchased": 5, "totalPurchaseAmount": 100}

	resp1, out1 := a.call(t, http.MethodPost, "/api/purchase/add", body, apphttp.HeaderIdempotencyKey, "compra-1")
	require.Equal(t, http.StatusCreated, resp1.StatusCode)
	resp2, out2 := a.call(t, http.MethodPost, "/api/purchase/add", body, apphttp.HeaderIdempotencyKey, "compra-1")
	require.Equal(t, http.StatusCreated, resp2.StatusCode)

	assert.Equal(t, "true", resp2.Header.Get(apphttp.HeaderReplayed))
	assert.JSONEq(t, string(out1), string(out2))
	assert.Equal(t, int64(5), a.stock(t, id))
}

func TestSale_StockInsuficienteYMensual(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 4)

	resp, body := a.call(t, http.MethodPost, "/api/sales/add", map[string]any{
		"productID": id, "stockSold": 10, "totalSaleAmount": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	resp, body = a.call(t, http.MethodPost, "/api/sales/add", map[string]any{
		"productID": id, "stockSold": 3, "totalSaleAmount": 50, "saleDate": "2024-03-02",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, int64(1), a.stock(t, id))

	resp, body = a.call(t, http.MethodGet, "/api/sales/getmonthly", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var monthly struct {
		SalesAmount []float64 `json:"salesAmount"`
	}
	require.NoError(t, json.Unmarshal(body, &monthly))
	require.Len(t, monthly.SalesAmount, 12)
	assert.Equal(t, 50.0, monthly.SalesAmount[2])
	assert.Equal(t, 0.0, monthly.SalesAmount[0])
}

func TestProductDelete_CascadaYHistorialConservado(t *testing.T) {
	a := newTestAPI(t)
	id := a.createProduct(t, 1)
	resp, _ := a.call(t, http.MethodPost, "/api/purchase/add", map[string]any{
		"productID": id, "quantityPurchased": 2, "totalPurchaseAmount": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := a.call(t, http.MethodDelete, "/api/product/delete/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = a.call(t, http.MethodGet, "/api/purchase/get/"+testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))

	resp, body = a.call(t, http.MethodGet, "/api/stock/history/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Len(t, entries, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tiendas, envíos y ambiente
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_CrearYListar(t *testing.T) {
	a := newTestAPI(t)
	resp, body := a.call(t, http.MethodPost, "/api/store/add", map[string]any{
		"userId": testUserID, "name": "  Tienda Centro ", "category": "Abarrotes", "city": "Bogotá",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = a.call(t, http.MethodPost, "/api/store/add", map[string]any{"userId": testOtherID, "name": "Ajena"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = a.call(t, http.MethodGet, "/api/store/get/"+testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		Name   string `json:"name"`
		UserID string `json:"userID"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Tienda Centro", list[0].Name)
	assert.Equal(t, testUserID, list[0].UserID)
}

func TestShipment_CrearYListar(t *testing.T) {
	a := newTestAPI(t)
	resp, body := a.call(t, http.MethodPost, "/api/shipment/add/"+testUserID, map[string]any{
		"containerId":          "MSCU1234567",
		"trackingUrl":          "https://track.example.com/MSCU1234567",
		"expectedDeliveryDate": "2024-05-10",
		"description":          "Repuestos",
		"items":                []map[string]any{{"name": "Filtro", "quantity": 20}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = a.call(t, http.MethodGet, "/api/shipment/all/"+testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "in-transit", list[0].Status)

	resp, _ = a.call(t, http.MethodGet, "/api/shipment/all/"+testOtherID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHealthYMetrics(t *testing.T) {
	a := newTestAPI(t)
	a.token = ""

	resp, _ := a.call(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := a.call(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "test_http_requests_total")
}
