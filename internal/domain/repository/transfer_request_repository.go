package repository

import "github.com/jhoicas/traslados-api/internal/domain/entity"

// TransferRequestRepository colección append-only de solicitudes de traslado.
// Las solicitudes nunca se borran desde este subsistema (auditoría); solo
// cambia su campo status. GetByID devuelve (nil, nil) si no existe.
type TransferRequestRepository interface {
	Create(req *entity.TransferRequest) error
	GetByID(id string) (*entity.TransferRequest, error)
	GetForUpdate(id string) (*entity.TransferRequest, error)
	// List filtra por status; vacío devuelve todas, más recientes primero.
	List(status string) ([]entity.TransferRequest, error)
	UpdateStatus(id, status string) error
}
