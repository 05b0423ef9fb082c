package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/movement"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = func() time.Time {
	return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

// fakeSubmitter frontera de envío controlable desde el test.
type fakeSubmitter struct {
	mu       sync.Mutex
	receipt  *entity.MovementReceipt
	err      error
	requests []*entity.MovementRequest
	release  chan struct{} // si no es nil, el envío se bloquea hasta cerrarlo
}

func (f *fakeSubmitter) SubmitMovement(_ context.Context, req *entity.MovementRequest) (*entity.MovementReceipt, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.receipt, f.err
}

func (f *fakeSubmitter) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func acuse() *entity.MovementReceipt {
	return &entity.MovementReceipt{MovementID: 42, MovementDate: fixedNow(), ReferenceNumber: "REM-001"}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// sesionConFilasNormales deja una sesión lista para enviar una recepción normal.
func sesionConFilasNormales(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(fixedNow, nil)
	require.NoError(t, s.ChooseAction(entity.MovementTypeIN))
	require.NoError(t, s.ChooseProduct(entity.Product{ID: 100, SKU: "SKU-100"}))
	require.NoError(t, s.UpdateRows(session.RowsUpdate{
		ToWarehouseID: 7,
		NormalRow:     &movement.NormalRow{Quantity: dec("10")},
	}))
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_CicloCompletoHastaEnvio(t *testing.T) {
	s := session.New(fixedNow, nil)
	assert.Equal(t, session.StateIdle, s.State())

	require.NoError(t, s.ChooseAction(entity.MovementTypeIN))
	assert.Equal(t, session.StateActionChosen, s.State())

	require.NoError(t, s.ChooseProduct(entity.Product{ID: 100}))
	assert.Equal(t, session.StateProductChosen, s.State())

	require.NoError(t, s.UpdateRows(session.RowsUpdate{
		ToWarehouseID: 7,
		NormalRow:     &movement.NormalRow{Quantity: dec("3")},
	}))
	assert.Equal(t, session.StateRowsEditing, s.State())

	req, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, session.StateValidated, s.State())
	assert.Len(t, req.Lines, 1)

	sub := &fakeSubmitter{receipt: acuse()}
	_, receipt, err := s.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, int64(42), receipt.MovementID)

	// El éxito regresa la sesión a Idle y descarta la captura.
	assert.Equal(t, session.StateIdle, s.State())
	assert.Nil(t, s.Input().NormalRow)
	require.NotNil(t, s.LastReceipt())
	assert.Equal(t, int64(42), s.LastReceipt().MovementID)
}

func TestSession_PreviewInvalido_QuedaEnEdicionConError(t *testing.T) {
	s := session.New(fixedNow, nil)
	require.NoError(t, s.ChooseAction(entity.MovementTypeTRF))
	require.NoError(t, s.ChooseProduct(entity.Product{ID: 100}))
	require.NoError(t, s.UpdateRows(session.RowsUpdate{
		FromWarehouseID: 4, // destino sin seleccionar
		NormalRow:       &movement.NormalRow{Quantity: dec("1")},
	}))

	_, err := s.Preview()
	assert.ErrorIs(t, err, domain.ErrMissingWarehouse)
	assert.Equal(t, session.StateRowsEditing, s.State())
	assert.ErrorIs(t, s.LastError(), domain.ErrMissingWarehouse)
}

func TestSession_ValidacionFallida_NoLlamaLaRed(t *testing.T) {
	s := session.New(fixedNow, nil)
	require.NoError(t, s.ChooseAction(entity.MovementTypeTRF))
	require.NoError(t, s.ChooseProduct(entity.Product{ID: 100}))
	require.NoError(t, s.UpdateRows(session.RowsUpdate{
		FromWarehouseID: 4,
		ToWarehouseID:   4, // misma bodega
		NormalRow:       &movement.NormalRow{Quantity: dec("1")},
	}))

	sub := &fakeSubmitter{receipt: acuse()}
	_, _, err := s.Submit(context.Background(), sub)
	assert.ErrorIs(t, err, domain.ErrSameWarehouse)
	assert.Zero(t, sub.sent(), "ninguna solicitud debe llegar a la frontera externa")
	assert.Equal(t, session.StateRowsEditing, s.State())
}

func TestSession_EnvioFallido_RetieneErrorYPermiteReintentar(t *testing.T) {
	s := sesionConFilasNormales(t)
	remoto := errors.New("bodega: 503")
	sub := &fakeSubmitter{err: remoto}

	_, _, err := s.Submit(context.Background(), sub)
	assert.ErrorIs(t, err, remoto)
	assert.Equal(t, session.StateRowsEditing, s.State(), "la falla regresa a edición")
	assert.ErrorIs(t, s.LastError(), remoto, "el error queda retenido para mostrar")

	// Reintento iniciado por el operario, sin reintentos automáticos.
	sub2 := &fakeSubmitter{receipt: acuse()}
	_, receipt, err := s.Submit(context.Background(), sub2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), receipt.MovementID)
}

func TestSession_CancelarDescartaCaptura(t *testing.T) {
	s := sesionConFilasNormales(t)
	s.Cancel()

	assert.Equal(t, session.StateIdle, s.State())
	assert.Nil(t, s.Input().NormalRow)
	assert.Empty(t, s.Input().Type)
}

func TestSession_TransicionesInvalidas(t *testing.T) {
	s := session.New(fixedNow, nil)

	err := s.ChooseProduct(entity.Product{ID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no hay acción elegida todavía")

	err = s.UpdateRows(session.RowsUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = s.Preview()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSession_ReferenciaVaciaSeGeneraAlEnviar(t *testing.T) {
	s := sesionConFilasNormales(t)
	sub := &fakeSubmitter{receipt: acuse()}

	req, _, err := s.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.NotEmpty(t, req.ReferenceNumber, "sin referencia digitada se genera una")
}

// ──────────────────────────────────────────────────────────────────────────────
// Un solo envío en vuelo / last write wins
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SegundoEnvioConUnoEnVuelo_Rechazado(t *testing.T) {
	s := sesionConFilasNormales(t)
	sub := &fakeSubmitter{receipt: acuse(), release: make(chan struct{})}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = s.Submit(context.Background(), sub)
	}()

	// Espera a que el primer envío quede en vuelo.
	require.Eventually(t, func() bool {
		return s.State() == session.StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, _, err := s.Submit(context.Background(), sub)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(sub.release)
	<-done
	assert.Equal(t, session.StateIdle, s.State())
}

func TestSession_CancelarConEnvioEnVuelo_DescartaResultado(t *testing.T) {
	s := sesionConFilasNormales(t)
	sub := &fakeSubmitter{receipt: acuse(), release: make(chan struct{})}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = s.Submit(context.Background(), sub)
	}()
	require.Eventually(t, func() bool {
		return s.State() == session.StateSubmitting
	}, time.Second, 5*time.Millisecond)

	// El operario abandona: la sesión vuelve a Idle de inmediato,
	// el envío en vuelo se deja terminar.
	s.Cancel()
	assert.Equal(t, session.StateIdle, s.State())

	close(sub.release)
	<-done

	// El resultado del envío abandonado no toca la sesión.
	assert.Equal(t, session.StateIdle, s.State())
	assert.Nil(t, s.LastReceipt(), "el acuse del envío abandonado se descarta")
}

func TestSession_ExitoDisparaRefetchDeStock(t *testing.T) {
	refetches := 0
	s := session.New(fixedNow, func() { refetches++ })
	require.NoError(t, s.ChooseAction(entity.MovementTypeIN))
	require.NoError(t, s.ChooseProduct(entity.Product{ID: 100}))
	require.NoError(t, s.UpdateRows(session.RowsUpdate{
		ToWarehouseID: 7,
		NormalRow:     &movement.NormalRow{Quantity: dec("1")},
	}))

	_, _, err := s.Submit(context.Background(), &fakeSubmitter{receipt: acuse()})
	require.NoError(t, err)
	assert.Equal(t, 1, refetches)
}

// ──────────────────────────────────────────────────────────────────────────────
// Manager
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_CrearObtenerYRemover(t *testing.T) {
	m := session.NewManager(fixedNow, nil)

	s := m.Create()
	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	m.Remove(s.ID())
	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_SesionesIndependientes(t *testing.T) {
	m := session.NewManager(fixedNow, nil)
	a := m.Create()
	b := m.Create()

	require.NoError(t, a.ChooseAction(entity.MovementTypeIN))
	assert.Equal(t, session.StateIdle, b.State(), "las sesiones no comparten estado")
}
