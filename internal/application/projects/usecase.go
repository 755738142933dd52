package projects

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// UseCase casos de uso para proyectos.
type UseCase struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(projectRepo repository.ProjectRepository, clientRepo repository.ClientRepository) *UseCase {
	return &UseCase{projectRepo: projectRepo, clientRepo: clientRepo}
}

const dateLayout = "2006-01-02"

// parseDate parsea una fecha YYYY-MM-DD obligatoria.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// parseOptionalDate parsea una fecha opcional; vacía devuelve nil.
func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create crea un proyecto para un cliente activo.
// Arranca en planning, progreso 0 y activo.
func (uc *UseCase) Create(in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if !client.IsActive() {
		return nil, domain.ErrClientInactive
	}
	startDate, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	deadline, err := parseOptionalDate(in.DeadlineDate)
	if err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	project := &entity.Project{
		ID:                 uuid.New().String(),
		ClientID:           in.ClientID,
		Name:               name,
		Description:        in.Description,
		StartDate:          startDate,
		EndDate:            endDate,
		DeadlineDate:       deadline,
		Budget:             in.Budget,
		Status:             entity.ProjectStatusPlanning,
		Priority:           priority,
		ProgressPercentage: 0,
		IsActive:           true,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.projectRepo.Create(project); err != nil {
		return nil, err
	}
	resp := dto.ProjectFromEntity(project)
	resp.ClientName = client.Name
	return &resp, nil
}

// GetByID obtiene un proyecto con el nombre de su cliente.
func (uc *UseCase) GetByID(id string) (*dto.ProjectResponse, error) {
	row, err := uc.projectRepo.GetByIDWithClient(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ProjectFromRow(row)
	return &resp, nil
}

// List lista proyectos con paginación.
func (uc *UseCase) List(limit, offset int) ([]dto.ProjectResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := uc.projectRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return dto.ProjectsFromRows(rows), nil
}

// ListByClient lista los proyectos de un cliente.
func (uc *UseCase) ListByClient(clientID string) ([]dto.ProjectResponse, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.projectRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	return dto.ProjectsFromRows(rows), nil
}

// ListActive lista los proyectos con is_active = true.
func (uc *UseCase) ListActive() ([]dto.ProjectResponse, error) {
	rows, err := uc.projectRepo.ListActive()
	if err != nil {
		return nil, err
	}
	return dto.ProjectsFromRows(rows), nil
}

// Update actualiza los datos de un proyecto.
// El status nuevo deriva is_active. El override manual de is_active solo
// se acepta cuando el status resultante no es planning ni in_progress.
func (uc *UseCase) Update(id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidProjectStatus(in.Status) || !entity.ValidPriority(in.Priority) {
		return nil, domain.ErrInvalidInput
	}
	if in.ProgressPercentage < 0 || in.ProgressPercentage > 100 {
		return nil, domain.ErrInvalidInput
	}
	startDate, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	deadline, err := parseOptionalDate(in.DeadlineDate)
	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = in.Description
	project.StartDate = startDate
	project.EndDate = endDate
	project.DeadlineDate = deadline
	project.Budget = in.Budget
	project.ActualCost = in.ActualCost
	project.Status = in.Status
	project.Priority = in.Priority
	project.ProgressPercentage = in.ProgressPercentage
	project.IsActive = entity.DeriveActive(in.Status)
	project.Notes = in.Notes
	if in.IsActive != nil && *in.IsActive != project.IsActive {
		if in.Status == entity.ProjectStatusPlanning || in.Status == entity.ProjectStatusInProgress {
			return nil, domain.ErrProjectLocked
		}
		project.IsActive = *in.IsActive
	}
	project.UpdatedAt = time.Now()

	if err := uc.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// UpdateStatus cambia el status, deriva is_active y ajusta el progreso:
// planning vuelve a 0, in_progress sube a 10 si estaba en 0,
// completed salta a 100, on_hold y cancelled conservan el actual.
func (uc *UseCase) UpdateStatus(id, status string) (*dto.ProjectResponse, error) {
	if !entity.ValidProjectStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	project.Status = status
	project.IsActive = entity.DeriveActive(status)
	switch status {
	case entity.ProjectStatusPlanning:
		project.ProgressPercentage = 0
	case entity.ProjectStatusInProgress:
		if project.ProgressPercentage == 0 {
			project.ProgressPercentage = 10
		}
	case entity.ProjectStatusCompleted:
		project.ProgressPercentage = 100
	}
	project.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// UpdateActiveStatus fija is_active manualmente.
// Rechazado cuando el status actual es planning o in_progress, porque ahí
// is_active se deriva del status.
func (uc *UseCase) UpdateActiveStatus(id string, isActive bool) (*dto.ProjectResponse, error) {
	project, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if project.Status == entity.ProjectStatusPlanning || project.Status == entity.ProjectStatusInProgress {
		return nil, domain.ErrProjectLocked
	}
	project.IsActive = isActive
	project.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Delete hace soft delete del proyecto. Sus facturas no se tocan.
func (uc *UseCase) Delete(id string) error {
	project, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	return uc.projectRepo.SoftDelete(id)
}
