package clients_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/freelanceflow/internal/application/clients"
	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
)

// fakeClientRepo repo en memoria con la misma semántica que el adaptador
// Postgres: lecturas excluyen soft delete, email único entre vivos sin
// distinguir mayúsculas.
type fakeClientRepo struct {
	clients  map[string]*entity.Client
	emailErr error // si está seteado, GetByEmail falla con este error
}

func newFakeRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*entity.Client{}}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) GetByEmail(email string) (*entity.Client, error) {
	if r.emailErr != nil {
		return nil, r.emailErr
	}
	for _, c := range r.clients {
		if !c.IsDeleted && strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	out := []*entity.Client{}
	for _, c := range r.clients {
		if !c.IsDeleted {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) ListActive() ([]*entity.Client, error) {
	out := []*entity.Client{}
	for _, c := range r.clients {
		if !c.IsDeleted && c.Status == entity.ClientStatusActive {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) SearchByName(name string) ([]*entity.Client, error) {
	out := []*entity.Client{}
	for _, c := range r.clients {
		if !c.IsDeleted && strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Count() (int, error) {
	n := 0
	for _, c := range r.clients {
		if !c.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) SoftDelete(id string) error {
	if c, ok := r.clients[id]; ok {
		c.IsDeleted = true
	}
	return nil
}

func createdClient(t *testing.T, uc *clients.UseCase, email string) *dto.ClientResponse {
	t.Helper()
	resp, err := uc.Create(dto.CreateClientRequest{Name: "Acme Studio", Email: email})
	require.NoError(t, err)
	return resp
}

func TestCreateClient_ArrancaActivo(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())

	resp, err := uc.Create(dto.CreateClientRequest{
		Name:    "  Acme Studio  ",
		Email:   "facturas@acme.com",
		Company: "Acme SAS",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Studio", resp.Name, "el nombre se guarda sin espacios sobrantes")
	assert.Equal(t, entity.ClientStatusActive, resp.Status)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateClient_EmailDuplicado(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	createdClient(t, uc, "facturas@acme.com")

	_, err := uc.Create(dto.CreateClientRequest{Name: "Otro", Email: "facturas@acme.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateClient_EmailDuplicadoOtraCapitalizacion(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	createdClient(t, uc, "facturas@acme.com")

	_, err := uc.Create(dto.CreateClientRequest{Name: "Otro", Email: "Facturas@Acme.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateClient_FalloDeLecturaDeEmail_Propagado(t *testing.T) {
	repo := newFakeRepo()
	repo.emailErr = errors.New("conexión perdida")
	uc := clients.NewUseCase(repo)

	_, err := uc.Create(dto.CreateClientRequest{Name: "Acme Studio", Email: "x@y.com"})
	assert.ErrorIs(t, err, repo.emailErr,
		"un fallo de lectura no debe interpretarse como email libre")
	assert.Empty(t, repo.clients, "nada debe persistirse")
}

func TestCreateClient_SinNombre(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())

	_, err := uc.Create(dto.CreateClientRequest{Name: "   ", Email: "x@y.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateClient_CambioDeEmailADuplicado(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	createdClient(t, uc, "uno@acme.com")
	second := createdClient(t, uc, "dos@acme.com")

	_, err := uc.Update(second.ID, dto.UpdateClientRequest{
		Name:   "Acme Studio",
		Email:  "uno@acme.com",
		Status: entity.ClientStatusActive,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateClient_FalloDeLecturaDeEmail_Propagado(t *testing.T) {
	repo := newFakeRepo()
	uc := clients.NewUseCase(repo)
	created := createdClient(t, uc, "uno@acme.com")

	repo.emailErr = errors.New("conexión perdida")
	_, err := uc.Update(created.ID, dto.UpdateClientRequest{
		Name:   "Acme Studio",
		Email:  "nuevo@acme.com",
		Status: entity.ClientStatusActive,
	})
	assert.ErrorIs(t, err, repo.emailErr)
}

func TestUpdateClient_MismoEmailOtraCapitalizacion_Permitido(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	created := createdClient(t, uc, "facturas@acme.com")

	resp, err := uc.Update(created.ID, dto.UpdateClientRequest{
		Name:   "Acme Studio",
		Email:  "FACTURAS@ACME.COM",
		Status: entity.ClientStatusActive,
	})
	require.NoError(t, err, "recapitalizar el propio email no es un duplicado")
	assert.Equal(t, "FACTURAS@ACME.COM", resp.Email)
}

func TestUpdateClient_StatusInvalido(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	created := createdClient(t, uc, "facturas@acme.com")

	_, err := uc.Update(created.ID, dto.UpdateClientRequest{
		Name:   "Acme Studio",
		Email:  "facturas@acme.com",
		Status: "archived",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_CambiaSoloElEstado(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	created := createdClient(t, uc, "facturas@acme.com")

	resp, err := uc.UpdateStatus(created.ID, entity.ClientStatusSuspended)
	require.NoError(t, err)

	assert.Equal(t, entity.ClientStatusSuspended, resp.Status)
	assert.Equal(t, created.Name, resp.Name)
	assert.Equal(t, created.Email, resp.Email)
}

func TestDeleteClient_LiberaElEmail(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	created := createdClient(t, uc, "facturas@acme.com")

	require.NoError(t, uc.Delete(created.ID))

	_, err := uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(dto.CreateClientRequest{Name: "Acme Reborn", Email: "facturas@acme.com"})
	assert.NoError(t, err, "el email de un cliente borrado queda libre")
}

func TestSearchClient_NombreVacio(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())

	_, err := uc.Search("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchClient_CoincidenciaParcial(t *testing.T) {
	uc := clients.NewUseCase(newFakeRepo())
	createdClient(t, uc, "facturas@acme.com")

	found, err := uc.Search("acme")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
