package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository (usable con pool o tx).
// Todas las lecturas filtran is_deleted = FALSE.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `p.id, p.client_id, p.name, p.description, p.start_date, p.end_date,
	p.deadline_date, p.budget, p.actual_cost, p.status, p.priority,
	p.progress_percentage, p.is_active, p.notes, p.is_deleted, p.created_at, p.updated_at`

// joinClientName LEFT JOIN para traer el nombre del cliente incluso si el
// cliente fue borrado (soft) después de crear el proyecto.
const projectWithClientQuery = `
	SELECT ` + projectColumns + `, COALESCE(c.name, '')
	FROM projects p
	LEFT JOIN clients c ON c.id = p.client_id
	WHERE p.is_deleted = FALSE`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.ClientID, &p.Name, &p.Description, &p.StartDate, &p.EndDate,
		&p.DeadlineDate, &p.Budget, &p.ActualCost, &p.Status, &p.Priority,
		&p.ProgressPercentage, &p.IsActive, &p.Notes, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjectWithClient(row pgx.Row) (*repository.ProjectWithClient, error) {
	var out repository.ProjectWithClient
	p := &out.Project
	err := row.Scan(
		&p.ID, &p.ClientID, &p.Name, &p.Description, &p.StartDate, &p.EndDate,
		&p.DeadlineDate, &p.Budget, &p.ActualCost, &p.Status, &p.Priority,
		&p.ProgressPercentage, &p.IsActive, &p.Notes, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
		&out.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create persiste un proyecto nuevo.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (id, client_id, name, description, start_date, end_date, deadline_date,
			budget, actual_cost, status, priority, progress_percentage, is_active, notes,
			is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.ClientID, project.Name, project.Description, project.StartDate,
		project.EndDate, project.DeadlineDate, project.Budget, project.ActualCost,
		project.Status, project.Priority, project.ProgressPercentage, project.IsActive,
		project.Notes, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto vivo por ID.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p WHERE p.id = $1 AND p.is_deleted = FALSE`
	p, err := scanProject(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// GetByIDWithClient obtiene un proyecto vivo con el nombre de su cliente.
func (r *ProjectRepo) GetByIDWithClient(id string) (*repository.ProjectWithClient, error) {
	query := projectWithClientQuery + ` AND p.id = $1`
	row, err := scanProjectWithClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project with client: %w", err)
	}
	return row, nil
}

// List lista proyectos vivos con paginación, más recientes primero.
func (r *ProjectRepo) List(limit, offset int) ([]*repository.ProjectWithClient, error) {
	query := projectWithClientQuery + ` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	return r.queryProjects(query, limit, offset)
}

// ListByClient lista los proyectos vivos de un cliente.
func (r *ProjectRepo) ListByClient(clientID string) ([]*repository.ProjectWithClient, error) {
	query := projectWithClientQuery + ` AND p.client_id = $1 ORDER BY p.created_at DESC`
	return r.queryProjects(query, clientID)
}

// ListActive lista los proyectos vivos con is_active = TRUE.
func (r *ProjectRepo) ListActive() ([]*repository.ProjectWithClient, error) {
	query := projectWithClientQuery + ` AND p.is_active = TRUE ORDER BY p.created_at DESC`
	return r.queryProjects(query)
}

func (r *ProjectRepo) queryProjects(query string, args ...any) ([]*repository.ProjectWithClient, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*repository.ProjectWithClient
	for rows.Next() {
		p, err := scanProjectWithClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un proyecto.
func (r *ProjectRepo) Update(project *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, start_date = $4, end_date = $5, deadline_date = $6,
		    budget = $7, actual_cost = $8, status = $9, priority = $10,
		    progress_percentage = $11, is_active = $12, notes = $13, updated_at = $14
		WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.Description, project.StartDate, project.EndDate,
		project.DeadlineDate, project.Budget, project.ActualCost, project.Status,
		project.Priority, project.ProgressPercentage, project.IsActive, project.Notes,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// SoftDelete marca el proyecto como eliminado; sus facturas no se tocan.
func (r *ProjectRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE projects SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete project: %w", err)
	}
	return nil
}
