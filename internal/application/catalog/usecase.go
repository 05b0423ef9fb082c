package catalog

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// UseCase fachada de lectura para la consola: aplica valores por defecto de
// paginación y normaliza el texto de búsqueda antes de consultar el servicio.
type UseCase struct {
	reader Reader
}

// NewUseCase construye la fachada.
func NewUseCase(reader Reader) *UseCase {
	return &UseCase{reader: reader}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListStock lista producto/stock por bodega con filtros.
func (uc *UseCase) ListStock(ctx context.Context, q StockQuery) (*StockPage, error) {
	q.Search = NormalizeSearchText(q.Search)
	q.Page, q.Size = clampPage(q.Page, q.Size)
	return uc.reader.ListStock(ctx, q)
}

// GetProductDetail devuelve el producto con sus lotes y seriales paginados.
func (uc *UseCase) GetProductDetail(ctx context.Context, productID int64, q DetailQuery) (*ProductDetail, error) {
	q.BatchPage, q.BatchSize = clampPage(q.BatchPage, q.BatchSize)
	q.SerialPage, q.SerialSize = clampPage(q.SerialPage, q.SerialSize)
	if q.BatchSort == "" {
		q.BatchSort = "expirationDate"
	}
	if q.SerialSort == "" {
		q.SerialSort = "number"
	}
	return uc.reader.GetProductDetail(ctx, productID, q)
}

// ListLocations lista las ubicaciones de la bodega que permiten almacenar stock.
func (uc *UseCase) ListLocations(ctx context.Context, warehouseID int64) ([]entity.Location, error) {
	return uc.reader.ListLocations(ctx, warehouseID)
}

func clampPage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// stripAccents descompone y elimina las marcas diacríticas (á → a, ñ → n).
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearchText normaliza el texto libre de búsqueda del operario:
// sin tildes, en minúsculas y sin espacios sobrantes, para que "Bodegón"
// y "bodegon" consulten lo mismo.
func NormalizeSearchText(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}
