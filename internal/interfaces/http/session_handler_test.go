package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/capture"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/dto"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/session"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	apphttp "github.com/ERP-L/ERP-FRONT-sub000/internal/interfaces/http"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeSubmitter acepta todo movimiento y devuelve un acuse fijo.
type fakeSubmitter struct {
	lastReq *entity.MovementRequest
	err     error
}

func (f *fakeSubmitter) SubmitMovement(_ context.Context, req *entity.MovementRequest) (*entity.MovementReceipt, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &entity.MovementReceipt{
		MovementID:      5001,
		MovementDate:    time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		ReferenceNumber: req.ReferenceNumber,
	}, nil
}

// fakeReader sirve un catálogo mínimo: una bodega con dos estanterías.
type fakeReader struct{}

func (fakeReader) ListStock(_ context.Context, q catalog.StockQuery) (*catalog.StockPage, error) {
	return &catalog.StockPage{
		Items: []catalog.StockItem{{
			Product:  entity.Product{ID: 7, SKU: "TOR-001", Name: "Tornillo 3/8", AverageCost: decimal.NewFromInt(50)},
			Quantity: decimal.NewFromInt(120),
		}},
		Page: q.Page, Size: q.Size, Total: 1,
	}, nil
}

func (fakeReader) GetProductDetail(_ context.Context, productID int64, _ catalog.DetailQuery) (*catalog.ProductDetail, error) {
	return &catalog.ProductDetail{
		Product: entity.Product{ID: productID, SKU: "TOR-001", Name: "Tornillo 3/8", BatchControlled: true},
		Batches: []entity.Batch{{ID: 31, Number: "L-2025-01", OnHand: decimal.NewFromInt(40)}},
	}, nil
}

func (fakeReader) ListLocations(_ context.Context, warehouseID int64) ([]entity.Location, error) {
	return []entity.Location{
		{ID: 1, WarehouseID: warehouseID, Code: "EST-A1", AllowsStock: true},
		{ID: 2, WarehouseID: warehouseID, Code: "EST-B2", AllowsStock: true},
	}, nil
}

// fakeVoucher genera un PDF de mentira.
type fakeVoucher struct{}

func (fakeVoucher) GenerateMovementVoucher(*entity.MovementRequest, *entity.MovementReceipt, entity.Product) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func buildTestApp(sub session.Submitter) *fiber.App {
	sessions := session.NewManager(func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}, nil)
	captureUC := capture.NewUseCase(sessions, sub, fakeVoucher{}, logger.Nop())
	catalogUC := catalog.NewUseCase(fakeReader{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CaptureUC: captureUC,
		CatalogUC: catalogUC,
		Log:       logger.Nop(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	s := decodeBody[dto.SessionResponse](t, resp)
	require.NotEmpty(t, s.SessionID)
	require.Equal(t, "Idle", s.State)
	return s.SessionID
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo de captura por HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompletoRecepcionNormal(t *testing.T) {
	sub := &fakeSubmitter{}
	app := buildTestApp(sub)
	id := createSession(t, app)

	resp := doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/action", dto.ChooseActionRequest{Type: "IN"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ActionChosen", decodeBody[dto.SessionResponse](t, resp).State)

	resp = doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/product", dto.ChooseProductRequest{
		ID: 7, SKU: "TOR-001", Name: "Tornillo 3/8", AverageCost: decimal.NewFromInt(50),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	qty := decimal.NewFromInt(10)
	amount := decimal.NewFromInt(100)
	resp = doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/rows", dto.RowsUpdateRequest{
		ToWarehouseID: 3,
		Amount:        &amount,
		Normal:        &dto.NormalRowDTO{Quantity: qty, LocationCode: "est-a1"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "RowsEditing", decodeBody[dto.SessionResponse](t, resp).State)

	// Preview: la solicitud exacta que viajaría, con el costo prorrateado.
	resp = doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/preview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, "IN", wire["movementType"])
	assert.Equal(t, float64(3), wire["toWarehouseId"])
	lines := wire["lines"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, float64(10), line["quantity"])
	assert.Equal(t, float64(10), line["unitCost"]) // 100 / 10
	// El código digitado en minúsculas se canoniza contra la bodega destino.
	assert.Equal(t, "EST-A1", line["locationCode"])

	resp = doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/submit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	receipt := decodeBody[dto.ReceiptResponse](t, resp)
	assert.Equal(t, int64(5001), receipt.MovementID)
	assert.NotEmpty(t, receipt.ReferenceNumber, "sin referencia digitada se genera una")

	// La sesión regresó a Idle lista para otra captura.
	resp = doJSON(t, app, http.MethodGet, "/api/sessions/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Idle", decodeBody[dto.SessionResponse](t, resp).State)
}

func TestSubmitConComprobantePDF(t *testing.T) {
	sub := &fakeSubmitter{}
	app := buildTestApp(sub)
	id := createSession(t, app)

	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/action", dto.ChooseActionRequest{Type: "OUT"})
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/product", dto.ChooseProductRequest{ID: 7, SKU: "TOR-001"})
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/rows", dto.RowsUpdateRequest{
		FromWarehouseID: 3,
		Normal:          &dto.NormalRowDTO{Quantity: decimal.NewFromInt(2)},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/submit?voucher=pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestPreviewInvalidoDevuelve400YRetieneElError(t *testing.T) {
	sub := &fakeSubmitter{}
	app := buildTestApp(sub)
	id := createSession(t, app)

	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/action", dto.ChooseActionRequest{Type: "TRF"})
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/product", dto.ChooseProductRequest{ID: 7, SKU: "TOR-001"})
	// Traslado con la misma bodega en origen y destino.
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/rows", dto.RowsUpdateRequest{
		FromWarehouseID: 3,
		ToWarehouseID:   3,
		Normal:          &dto.NormalRowDTO{Quantity: decimal.NewFromInt(1)},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/preview", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errBody := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Nil(t, sub.lastReq, "una validación fallida nunca toca la red")

	// El error queda retenido en el estado de la sesión para mostrarlo.
	resp = doJSON(t, app, http.MethodGet, "/api/sessions/"+id, nil)
	s := decodeBody[dto.SessionResponse](t, resp)
	assert.Equal(t, "RowsEditing", s.State)
	assert.NotEmpty(t, s.LastError)
}

func TestSubmitFallidoDevuelve502YPermiteReintentar(t *testing.T) {
	sub := &fakeSubmitter{err: fmt.Errorf("%w: timeout", domain.ErrRemoteService)}
	app := buildTestApp(sub)
	id := createSession(t, app)

	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/action", dto.ChooseActionRequest{Type: "IN"})
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/product", dto.ChooseProductRequest{ID: 7, SKU: "TOR-001"})
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/rows", dto.RowsUpdateRequest{
		ToWarehouseID: 3,
		Normal:        &dto.NormalRowDTO{Quantity: decimal.NewFromInt(1)},
	})

	resp := doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/submit", nil)
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM", decodeBody[dto.ErrorResponse](t, resp).Code)

	// El operario corrige nada y reenvía: el segundo intento sale bien.
	sub.err = nil
	resp = doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/submit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCancelRegresaAIdle(t *testing.T) {
	app := buildTestApp(&fakeSubmitter{})
	id := createSession(t, app)

	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/action", dto.ChooseActionRequest{Type: "ADJ"})
	resp := doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/cancel", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Idle", decodeBody[dto.SessionResponse](t, resp).State)
}

func TestSesionInexistenteDevuelve404(t *testing.T) {
	app := buildTestApp(&fakeSubmitter{})
	resp := doJSON(t, app, http.MethodGet, "/api/sessions/no-existe", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody[dto.ErrorResponse](t, resp).Code)
}

func TestFillDownPorHTTP(t *testing.T) {
	app := buildTestApp(&fakeSubmitter{})
	id := createSession(t, app)

	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/action", dto.ChooseActionRequest{Type: "IN"})
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/product", dto.ChooseProductRequest{
		ID: 8, SKU: "LAP-001", Serialized: true,
	})
	total := 3
	doJSON(t, app, http.MethodPut, "/api/sessions/"+id+"/rows", dto.RowsUpdateRequest{
		ToWarehouseID: 3,
		SerialRows:    []dto.SerialRowDTO{{SerialNumber: "SN-1"}, {SerialNumber: "SN-2"}, {SerialNumber: "SN-3"}},
		SerialTotal:   &total,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/rows/fill-down", dto.FillDownRequest{
		Index: 0, Field: "location", Value: "EST-A1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// La ubicación propagada aparece en todas las líneas del preview.
	resp = doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/preview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var wire map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&wire))
	lines := wire["lines"].([]any)
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, "EST-A1", l.(map[string]any)["locationCode"])
	}

	resp = doJSON(t, app, http.MethodPost, "/api/sessions/"+id+"/rows/fill-down", dto.FillDownRequest{
		Index: 0, Field: "columna-rara", Value: "x",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCatalogoStockYUbicaciones(t *testing.T) {
	app := buildTestApp(&fakeSubmitter{})

	resp := doJSON(t, app, http.MethodGet, "/api/stock?warehouse_id=3&search=tornillo", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stock := decodeBody[dto.StockListResponse](t, resp)
	require.Len(t, stock.Items, 1)
	assert.Equal(t, "TOR-001", stock.Items[0].SKU)

	resp = doJSON(t, app, http.MethodGet, "/api/stock", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "warehouse_id es obligatorio")

	resp = doJSON(t, app, http.MethodGet, "/api/warehouses/3/locations", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	locs := decodeBody[[]dto.LocationDTO](t, resp)
	require.Len(t, locs, 2)
	assert.Equal(t, "EST-A1", locs[0].Code)

	resp = doJSON(t, app, http.MethodGet, "/api/products/7", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decodeBody[dto.ProductDetailResponse](t, resp)
	assert.Equal(t, "BATCH", detail.TrackingMode)
	require.Len(t, detail.Batches, 1)
}
