package repository

import "github.com/tu-usuario/freelanceflow/internal/domain/entity"

// ProjectWithClient proyecto más el nombre del cliente (join de lectura).
type ProjectWithClient struct {
	entity.Project
	ClientName string
}

// ProjectRepository puerto de persistencia para proyectos.
// Todas las lecturas excluyen filas con soft delete.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	GetByIDWithClient(id string) (*ProjectWithClient, error)
	List(limit, offset int) ([]*ProjectWithClient, error)
	ListByClient(clientID string) ([]*ProjectWithClient, error)
	ListActive() ([]*ProjectWithClient, error)
	Update(project *entity.Project) error
	SoftDelete(id string) error
}
