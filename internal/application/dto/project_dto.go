package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// CreateProjectRequest body para POST /api/projects.
// Las fechas van en formato YYYY-MM-DD.
type CreateProjectRequest struct {
	ClientID     string          `json:"client_id" validate:"required,uuid"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description,omitempty"`
	StartDate    string          `json:"start_date" validate:"required"`
	EndDate      string          `json:"end_date,omitempty"`
	DeadlineDate string          `json:"deadline_date,omitempty"`
	Budget       decimal.Decimal `json:"budget"`
	Priority     string          `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateProjectRequest body para PUT /api/projects/:id.
// IsActive es opcional; si se envía y el estado es planning o in_progress se rechaza,
// porque en esos estados la actividad se deriva del estado.
type UpdateProjectRequest struct {
	Name               string           `json:"name" validate:"required,min=1,max=200"`
	Description        string           `json:"description,omitempty"`
	StartDate          string           `json:"start_date" validate:"required"`
	EndDate            string           `json:"end_date,omitempty"`
	DeadlineDate       string           `json:"deadline_date,omitempty"`
	Budget             decimal.Decimal  `json:"budget"`
	ActualCost         *decimal.Decimal `json:"actual_cost,omitempty"`
	Status             string           `json:"status" validate:"required,oneof=planning in_progress on_hold completed cancelled"`
	Priority           string           `json:"priority" validate:"required,oneof=low medium high critical"`
	ProgressPercentage int              `json:"progress_percentage" validate:"min=0,max=100"`
	IsActive           *bool            `json:"is_active,omitempty"`
	Notes              string           `json:"notes,omitempty"`
}

// UpdateProjectStatusRequest body para PUT /api/projects/:id/status.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planning in_progress on_hold completed cancelled"`
}

// ProjectResponse proyecto en respuestas, con nombre de cliente si está disponible.
type ProjectResponse struct {
	ID                 string           `json:"id"`
	ClientID           string           `json:"client_id"`
	ClientName         string           `json:"client_name,omitempty"`
	Name               string           `json:"name"`
	Description        string           `json:"description,omitempty"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            *time.Time       `json:"end_date,omitempty"`
	DeadlineDate       *time.Time       `json:"deadline_date,omitempty"`
	Budget             decimal.Decimal  `json:"budget"`
	ActualCost         *decimal.Decimal `json:"actual_cost,omitempty"`
	Status             string           `json:"status"`
	Priority           string           `json:"priority"`
	ProgressPercentage int              `json:"progress_percentage"`
	IsActive           bool             `json:"is_active"`
	Notes              string           `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ProjectFromEntity convierte la entidad de dominio al DTO de salida.
func ProjectFromEntity(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:                 p.ID,
		ClientID:           p.ClientID,
		Name:               p.Name,
		Description:        p.Description,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		DeadlineDate:       p.DeadlineDate,
		Budget:             p.Budget,
		ActualCost:         p.ActualCost,
		Status:             p.Status,
		Priority:           p.Priority,
		ProgressPercentage: p.ProgressPercentage,
		IsActive:           p.IsActive,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ProjectFromRow convierte la proyección con nombre de cliente.
func ProjectFromRow(r *repository.ProjectWithClient) ProjectResponse {
	out := ProjectFromEntity(&r.Project)
	out.ClientName = r.ClientName
	return out
}

// ProjectsFromRows convierte un slice de proyecciones.
func ProjectsFromRows(rows []*repository.ProjectWithClient) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProjectFromRow(r))
	}
	return out
}
