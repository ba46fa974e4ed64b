package repository

import "github.com/jhoicas/traslados-api/internal/domain/entity"

// BackorderRepository colección de remanentes pendientes de solicitudes
// aprobadas. Un backorder se borra al saldarse; nunca se persiste con todas
// las cantidades en cero. GetByID devuelve (nil, nil) si no existe.
type BackorderRepository interface {
	Create(b *entity.Backorder) error
	GetByID(id string) (*entity.Backorder, error)
	GetForUpdate(id string) (*entity.Backorder, error)
	ListOpen() ([]entity.Backorder, error)
	UpdateQuantities(id string, q entity.Quantities) error
	Delete(id string) error
}
