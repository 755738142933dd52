package repository

import "github.com/tu-usuario/freelanceflow/internal/domain/entity"

// ClientRepository puerto de persistencia para clientes.
// Todas las lecturas excluyen filas con soft delete.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByEmail(email string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	ListActive() ([]*entity.Client, error)
	SearchByName(name string) ([]*entity.Client, error)
	Count() (int, error)
	Update(client *entity.Client) error
	SoftDelete(id string) error
}
