package projects_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/application/projects"
	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

const testClientID = "11111111-1111-1111-1111-111111111111"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	return c, nil
}
func (r *fakeClientRepo) GetByEmail(email string) (*entity.Client, error) {
	return nil, nil
}

func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}

func (r *fakeClientRepo) ListActive() ([]*entity.Client, error) {
	return nil, nil
}

func (r *fakeClientRepo) SearchByName(name string) ([]*entity.Client, error) {
	return nil, nil
}

func (r *fakeClientRepo) Count() (int, error) {
	return len(r.clients), nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}
func (r *fakeClientRepo) SoftDelete(id string) error {
	if c, ok := r.clients[id]; ok {
		c.IsDeleted = true
	}
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (r *fakeProjectRepo) Create(p *entity.Project) error { cp := *p; r.projects[p.ID] = &cp; return nil }
func (r *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProjectRepo) GetByIDWithClient(id string) (*repository.ProjectWithClient, error) {
	p, err := r.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	return &repository.ProjectWithClient{Project: *p, ClientName: "Cliente Test"}, nil
}
func (r *fakeProjectRepo) List(limit, offset int) ([]*repository.ProjectWithClient, error) {
	return nil, nil
}
func (r *fakeProjectRepo) ListByClient(clientID string) ([]*repository.ProjectWithClient, error) {
	out := []*repository.ProjectWithClient{}
	for _, p := range r.projects {
		if !p.IsDeleted && p.ClientID == clientID {
			out = append(out, &repository.ProjectWithClient{Project: *p})
		}
	}
	return out, nil
}
func (r *fakeProjectRepo) ListActive() ([]*repository.ProjectWithClient, error) {
	out := []*repository.ProjectWithClient{}
	for _, p := range r.projects {
		if !p.IsDeleted && p.IsActive {
			out = append(out, &repository.ProjectWithClient{Project: *p})
		}
	}
	return out, nil
}
func (r *fakeProjectRepo) Update(p *entity.Project) error { cp := *p; r.projects[p.ID] = &cp; return nil }
func (r *fakeProjectRepo) SoftDelete(id string) error {
	if p, ok := r.projects[id]; ok {
		p.IsDeleted = true
	}
	return nil
}

func buildUseCase(clients ...*entity.Client) (*projects.UseCase, *fakeProjectRepo) {
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{}}
	for _, c := range clients {
		clientRepo.clients[c.ID] = c
	}
	projectRepo := &fakeProjectRepo{projects: map[string]*entity.Project{}}
	return projects.NewUseCase(projectRepo, clientRepo), projectRepo
}

func activeClient() *entity.Client {
	return &entity.Client{ID: testClientID, Name: "Cliente Test", Email: "c@t.com", Status: entity.ClientStatusActive}
}

func validCreateRequest() dto.CreateProjectRequest {
	return dto.CreateProjectRequest{
		ClientID:  testClientID,
		Name:      "Rediseño web",
		StartDate: "2026-08-01",
		Budget:    decimal.RequireFromString("1500.00"),
	}
}

func createdProject(t *testing.T, uc *projects.UseCase) *dto.ProjectResponse {
	t.Helper()
	resp, err := uc.Create(validCreateRequest())
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProject_ArrancaEnPlanning(t *testing.T) {
	uc, _ := buildUseCase(activeClient())

	resp, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.ProjectStatusPlanning, resp.Status)
	assert.Equal(t, 0, resp.ProgressPercentage)
	assert.True(t, resp.IsActive)
	assert.Equal(t, entity.PriorityMedium, resp.Priority, "sin prioridad explícita se asume medium")
	assert.Equal(t, "Cliente Test", resp.ClientName)
}

func TestCreateProject_ClienteInactivo(t *testing.T) {
	client := activeClient()
	client.Status = entity.ClientStatusInactive
	uc, _ := buildUseCase(client)

	_, err := uc.Create(validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrClientInactive)
}

func TestCreateProject_ClienteInexistente(t *testing.T) {
	uc, _ := buildUseCase()

	_, err := uc.Create(validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateProject_FechaInvalida(t *testing.T) {
	uc, _ := buildUseCase(activeClient())

	in := validCreateRequest()
	in.StartDate = "01/08/2026"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProject_PrioridadInvalida(t *testing.T) {
	uc, _ := buildUseCase(activeClient())

	in := validCreateRequest()
	in.Priority = "urgentísima"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus: derivación de is_active y ajuste de progreso
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_InProgressSubeProgresoDesdeCero(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	resp, err := uc.UpdateStatus(created.ID, entity.ProjectStatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, 10, resp.ProgressPercentage, "pasar a in_progress con progreso 0 lo sube a 10")
	assert.True(t, resp.IsActive)
}

func TestUpdateStatus_InProgressConservaProgresoExistente(t *testing.T) {
	uc, repo := buildUseCase(activeClient())
	created := createdProject(t, uc)

	p, _ := repo.GetByID(created.ID)
	p.ProgressPercentage = 55
	require.NoError(t, repo.Update(p))

	resp, err := uc.UpdateStatus(created.ID, entity.ProjectStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, 55, resp.ProgressPercentage)
}

func TestUpdateStatus_CompletedFuerzaProgreso100(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	resp, err := uc.UpdateStatus(created.ID, entity.ProjectStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, 100, resp.ProgressPercentage)
	assert.False(t, resp.IsActive, "completed deriva is_active = false")
}

func TestUpdateStatus_PlanningReiniciaProgreso(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	_, err := uc.UpdateStatus(created.ID, entity.ProjectStatusInProgress)
	require.NoError(t, err)

	resp, err := uc.UpdateStatus(created.ID, entity.ProjectStatusPlanning)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ProgressPercentage)
}

func TestUpdateStatus_OnHoldConservaProgresoYSigueActivo(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	_, err := uc.UpdateStatus(created.ID, entity.ProjectStatusInProgress)
	require.NoError(t, err)

	resp, err := uc.UpdateStatus(created.ID, entity.ProjectStatusOnHold)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.ProgressPercentage)
	assert.True(t, resp.IsActive, "on_hold sigue contando como activo")
}

func TestUpdateStatus_StatusInvalido(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	_, err := uc.UpdateStatus(created.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Override manual de is_active
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateActiveStatus_RechazadoEnPlanning(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	_, err := uc.UpdateActiveStatus(created.ID, false)
	assert.ErrorIs(t, err, domain.ErrProjectLocked,
		"en planning is_active se deriva del status y no admite override")
}

func TestUpdateActiveStatus_RechazadoEnInProgress(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	_, err := uc.UpdateStatus(created.ID, entity.ProjectStatusInProgress)
	require.NoError(t, err)

	_, err = uc.UpdateActiveStatus(created.ID, false)
	assert.ErrorIs(t, err, domain.ErrProjectLocked)
}

func TestUpdateActiveStatus_PermitidoEnCompleted(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	_, err := uc.UpdateStatus(created.ID, entity.ProjectStatusCompleted)
	require.NoError(t, err)

	resp, err := uc.UpdateActiveStatus(created.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.IsActive, "en estado terminal el override manual sí aplica")
}

func TestUpdate_OverrideManualEnEstadoDerivado_Rechazado(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	inactive := false
	in := dto.UpdateProjectRequest{
		Name:      "Rediseño web",
		StartDate: "2026-08-01",
		Status:    entity.ProjectStatusInProgress,
		Priority:  entity.PriorityHigh,
		IsActive:  &inactive,
	}
	_, err := uc.Update(created.ID, in)
	assert.ErrorIs(t, err, domain.ErrProjectLocked)
}

func TestUpdate_DerivaActiveDelNuevoStatus(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	in := dto.UpdateProjectRequest{
		Name:               "Rediseño web",
		StartDate:          "2026-08-01",
		Status:             entity.ProjectStatusCancelled,
		Priority:           entity.PriorityLow,
		ProgressPercentage: 40,
	}
	resp, err := uc.Update(created.ID, in)
	require.NoError(t, err)
	assert.False(t, resp.IsActive, "cancelled deriva is_active = false")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProject_SoftDelete(t *testing.T) {
	uc, _ := buildUseCase(activeClient())
	created := createdProject(t, uc)

	require.NoError(t, uc.Delete(created.ID))

	_, err := uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProject_Inexistente(t *testing.T) {
	uc, _ := buildUseCase(activeClient())

	err := uc.Delete("00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
