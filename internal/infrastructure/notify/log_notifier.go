// Package notify contiene adaptadores del puerto Notifier. El envío real de
// correo es un colaborador externo; este adaptador solo registra el evento
// (suficiente para desarrollo y tests).
package notify

import (
	"context"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

var _ transfer.Notifier = (*LogNotifier)(nil)

// LogNotifier implementa transfer.Notifier escribiendo al log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// TransferRequested registra la solicitud nueva.
func (n *LogNotifier) TransferRequested(_ context.Context, req *entity.TransferRequest) error {
	n.log.Info().
		Str("request_id", req.ID).
		Str("from", req.From).
		Str("to", req.To).
		Str("requested_by", req.RequestedBy).
		Int("products", len(req.Products)).
		Msg("solicitud de traslado creada")
	return nil
}
