// Package capture orquesta las sesiones de captura de movimientos: delega la
// construcción/validación al motor de dominio a través de la sesión, entrega
// la solicitud a la frontera de envío y, si aplica, genera el comprobante PDF
// del movimiento aceptado.
package capture

import (
	"context"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/session"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/logger"
)

// VoucherGenerator genera el comprobante PDF de un movimiento aceptado.
type VoucherGenerator interface {
	GenerateMovementVoucher(req *entity.MovementRequest, receipt *entity.MovementReceipt, product entity.Product) ([]byte, error)
}

// UseCase caso de uso de captura y envío de movimientos.
type UseCase struct {
	sessions  *session.Manager
	submitter session.Submitter
	voucher   VoucherGenerator // nil = comprobantes deshabilitados
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(sessions *session.Manager, submitter session.Submitter, voucher VoucherGenerator, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{sessions: sessions, submitter: submitter, voucher: voucher, log: log}
}

// Sessions expone el administrador de sesiones (creación, consulta, edición).
func (uc *UseCase) Sessions() *session.Manager {
	return uc.sessions
}

// SubmitResult resultado de un envío exitoso.
type SubmitResult struct {
	Request *entity.MovementRequest
	Receipt *entity.MovementReceipt
	Voucher []byte // PDF; vacío si no se solicitó o no está habilitado
}

// Submit valida, construye y envía el movimiento de la sesión indicada.
// withVoucher genera el comprobante PDF del movimiento aceptado.
func (uc *UseCase) Submit(ctx context.Context, sessionID string, withVoucher bool) (*SubmitResult, error) {
	s, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	// El producto se toma antes del envío: el éxito reinicia la sesión.
	product := s.Input().Product

	req, receipt, err := s.Submit(ctx, uc.submitter)
	if err != nil {
		uc.log.Warn().Err(err).Str("session_id", sessionID).Msg("envío de movimiento rechazado o fallido")
		return nil, err
	}

	uc.log.Info().
		Str("session_id", sessionID).
		Str("type", req.Type).
		Str("line_mode", req.LineMode).
		Int("lines", len(req.Lines)).
		Int64("movement_id", receipt.MovementID).
		Msg("movimiento aceptado por el servicio de bodega")

	res := &SubmitResult{Request: req, Receipt: receipt}
	if withVoucher && uc.voucher != nil {
		pdf, err := uc.voucher.GenerateMovementVoucher(req, receipt, product)
		if err != nil {
			// El movimiento ya fue aceptado; el comprobante no bloquea el flujo.
			uc.log.Error().Err(err).Int64("movement_id", receipt.MovementID).Msg("generación del comprobante PDF")
		} else {
			res.Voucher = pdf
		}
	}
	return res, nil
}
