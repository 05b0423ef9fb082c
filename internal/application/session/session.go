// Package session implementa la sesión de captura de un movimiento: el ciclo
// Idle → acción → producto → filas → validado → enviando, con un solo envío en
// vuelo por sesión. La sesión compone snapshots para el motor de movimientos;
// nunca muta los catálogos compartidos que consulta.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/movement"
)

// State estado observable de la sesión de captura.
type State string

const (
	StateIdle          State = "Idle"
	StateActionChosen  State = "ActionChosen"
	StateProductChosen State = "ProductChosen"
	StateRowsEditing   State = "RowsEditing"
	StateValidated     State = "Validated"
	StateSubmitting    State = "Submitting"
)

// Los estados terminales del ciclo (Succeeded/Failed) no se observan como
// State: un envío exitoso regresa la sesión a Idle dejando LastReceipt, y un
// envío fallido regresa a RowsEditing reteniendo LastError para mostrarlo.

// Submitter es la frontera de envío hacia el servicio de bodega.
type Submitter interface {
	SubmitMovement(ctx context.Context, req *entity.MovementRequest) (*entity.MovementReceipt, error)
}

// Session es una sesión de captura de un movimiento. Flujo lógico único: los
// métodos se serializan con el mutex, y un segundo envío no puede iniciar
// mientras haya uno en vuelo.
type Session struct {
	mu sync.Mutex

	id         string
	state      State
	generation uint64 // avanza al cancelar o completar; invalida envíos en vuelo

	input       movement.BuildInput
	lastErr     error
	lastReceipt *entity.MovementReceipt

	now       func() time.Time
	onSuccess func() // dispara el re-fetch de stock tras un envío exitoso
}

// New crea una sesión en Idle. onSuccess puede ser nil.
func New(now func() time.Time, onSuccess func()) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:        uuid.NewString(),
		state:     StateIdle,
		now:       now,
		onSuccess: onSuccess,
	}
}

// ID identificador de la sesión.
func (s *Session) ID() string { return s.id }

// State devuelve el estado actual.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError devuelve el último error local o remoto retenido para mostrar.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LastReceipt devuelve el acuse del último envío exitoso de esta sesión.
func (s *Session) LastReceipt() *entity.MovementReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReceipt
}

// Input devuelve una copia del snapshot actual de captura.
func (s *Session) Input() movement.BuildInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// ChooseAction fija el tipo de movimiento e inicia una captura nueva.
// Descarta producto y filas previas; no se permite con un envío en vuelo.
func (s *Session) ChooseAction(movementType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return domain.ErrSubmissionInFlight
	}
	if _, err := movement.PolicyFor(movementType); err != nil {
		return err
	}
	s.input = movement.BuildInput{
		Type:         movementType,
		MovementDate: s.now(),
	}
	s.lastErr = nil
	s.state = StateActionChosen
	return nil
}

// ChooseProduct fija el producto de la captura. Limpia las filas porque el
// modo de seguimiento del producto decide la forma de las filas.
func (s *Session) ChooseProduct(p entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateActionChosen, StateProductChosen, StateRowsEditing, StateValidated:
	default:
		return domain.ErrInvalidTransition
	}
	s.input.Product = p
	s.input.NormalRow = nil
	s.input.BatchRows = nil
	s.input.SerialRows = nil
	s.state = StateProductChosen
	return nil
}

// RowsUpdate estado completo del formulario de filas; cada actualización
// reemplaza la captura anterior (la consola envía el formulario entero).
type RowsUpdate struct {
	FromWarehouseID int64
	ToWarehouseID   int64
	ReferenceNumber string
	MovementDate    *time.Time
	Amount          *decimal.Decimal
	Locations       []entity.Location
	NormalRow       *movement.NormalRow
	BatchRows       []movement.BatchRow
	SerialRows      []movement.SerialRow
	SerialTotal     *int // recepción de seriales: total declarado, ajusta las filas
}

// UpdateRows aplica el estado del formulario y deja la sesión en RowsEditing.
func (s *Session) UpdateRows(u RowsUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateProductChosen, StateRowsEditing, StateValidated:
	default:
		return domain.ErrInvalidTransition
	}
	s.input.FromWarehouseID = u.FromWarehouseID
	s.input.ToWarehouseID = u.ToWarehouseID
	s.input.ReferenceNumber = u.ReferenceNumber
	if u.MovementDate != nil {
		s.input.MovementDate = *u.MovementDate
	}
	s.input.Amount = u.Amount
	s.input.Locations = u.Locations
	s.input.NormalRow = u.NormalRow
	s.input.BatchRows = u.BatchRows
	s.input.SerialRows = u.SerialRows
	if u.SerialTotal != nil {
		s.input.SerialRows = movement.ResizeSerialRows(s.input.SerialRows, *u.SerialTotal)
	}
	s.state = StateRowsEditing
	return nil
}

// FillDown aplica el valor digitado en la fila index de la captura de seriales
// y lo propaga a las filas siguientes con esa columna vacía.
func (s *Session) FillDown(index int, field movement.SerialField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateProductChosen, StateRowsEditing, StateValidated:
	default:
		return domain.ErrInvalidTransition
	}
	s.input.SerialRows = movement.PropagateIfEmpty(s.input.SerialRows, index, field, value)
	s.state = StateRowsEditing
	return nil
}

// Preview construye y valida la solicitud sin enviarla. Si la validación pasa
// la sesión queda en Validated; si falla, permanece en RowsEditing con el
// error retenido. Nunca toca la red.
func (s *Session) Preview() (*entity.MovementRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateRowsEditing, StateValidated:
	default:
		return nil, domain.ErrInvalidTransition
	}
	req, err := movement.Build(s.input)
	if err != nil {
		s.lastErr = err
		s.state = StateRowsEditing
		return nil, err
	}
	s.lastErr = nil
	s.state = StateValidated
	return req, nil
}

// Submit valida, construye y envía la solicitud. A lo sumo un envío en vuelo
// por sesión: un segundo Submit falla de inmediato sin tocar el que corre.
//
// Si la sesión se cancela mientras el envío está en vuelo, el resultado se
// devuelve al llamador pero no toca el estado de la sesión (last write wins).
// No hay reintentos: una falla se reporta una vez y queda en manos del
// operario reenviar.
func (s *Session) Submit(ctx context.Context, submitter Submitter) (*entity.MovementRequest, *entity.MovementReceipt, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return nil, nil, domain.ErrSubmissionInFlight
	case StateRowsEditing, StateValidated:
	default:
		s.mu.Unlock()
		return nil, nil, domain.ErrInvalidTransition
	}
	req, err := movement.Build(s.input)
	if err != nil {
		s.lastErr = err
		s.state = StateRowsEditing
		s.mu.Unlock()
		return nil, nil, err
	}
	if req.ReferenceNumber == "" {
		req.ReferenceNumber = uuid.NewString()
	}
	gen := s.generation
	s.state = StateSubmitting
	s.mu.Unlock()

	receipt, err := submitter.SubmitMovement(ctx, req)

	s.mu.Lock()
	if s.generation != gen {
		// La sesión se canceló o avanzó mientras el envío estaba en vuelo:
		// el resultado se descarta para el estado de la sesión.
		s.mu.Unlock()
		return req, receipt, err
	}
	if err != nil {
		s.lastErr = err
		s.state = StateRowsEditing
		s.mu.Unlock()
		return req, nil, err
	}
	s.generation++
	s.lastErr = nil
	s.lastReceipt = receipt
	s.input = movement.BuildInput{}
	s.state = StateIdle
	onSuccess := s.onSuccess
	s.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	return req, receipt, nil
}

// Cancel abandona la captura desde cualquier estado no terminal y descarta
// todas las filas. Un envío en vuelo no se interrumpe: se deja terminar y su
// resultado se descarta.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.input = movement.BuildInput{}
	s.lastErr = nil
	s.state = StateIdle
}
