package clients

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

// UseCase casos de uso para clientes.
type UseCase struct {
	repo repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ClientRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crea un cliente nuevo en estado active.
// El email debe ser único entre los clientes vivos.
func (uc *UseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     in.Phone,
		Company:   in.Company,
		Address:   in.Address,
		TaxNumber: in.TaxNumber,
		Status:    entity.ClientStatusActive,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	resp := dto.ClientFromEntity(client)
	return &resp, nil
}

// GetByID obtiene un cliente por ID.
func (uc *UseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ClientFromEntity(client)
	return &resp, nil
}

// List lista clientes con paginación.
func (uc *UseCase) List(limit, offset int) ([]dto.ClientResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	clients, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return dto.ClientsFromEntities(clients), nil
}

// Count devuelve el total de clientes vivos, para los headers de paginación.
func (uc *UseCase) Count() (int, error) {
	return uc.repo.Count()
}

// ListActive lista solo clientes en estado active.
func (uc *UseCase) ListActive() ([]dto.ClientResponse, error) {
	clients, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	return dto.ClientsFromEntities(clients), nil
}

// Search busca clientes por nombre (coincidencia parcial, sin distinguir mayúsculas).
func (uc *UseCase) Search(name string) ([]dto.ClientResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	clients, err := uc.repo.SearchByName(name)
	if err != nil {
		return nil, err
	}
	return dto.ClientsFromEntities(clients), nil
}

// Update actualiza los datos de un cliente.
// Si el email cambia, el nuevo no puede pertenecer a otro cliente vivo.
func (uc *UseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || !entity.ValidClientStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if !strings.EqualFold(email, client.Email) {
		existing, err := uc.repo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != client.ID {
			return nil, domain.ErrDuplicate
		}
	}
	client.Name = name
	client.Email = email
	client.Phone = in.Phone
	client.Company = in.Company
	client.Address = in.Address
	client.TaxNumber = in.TaxNumber
	client.Status = in.Status
	client.Notes = in.Notes
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	resp := dto.ClientFromEntity(client)
	return &resp, nil
}

// UpdateStatus cambia solo el estado del cliente (active, inactive, suspended).
func (uc *UseCase) UpdateStatus(id, status string) (*dto.ClientResponse, error) {
	if !entity.ValidClientStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	client.Status = status
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	resp := dto.ClientFromEntity(client)
	return &resp, nil
}

// Delete hace soft delete del cliente. Sus proyectos y facturas no se tocan.
func (uc *UseCase) Delete(id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}
