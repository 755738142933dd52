package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/freelanceflow/internal/domain"
	"github.com/tu-usuario/freelanceflow/internal/domain/entity"
	"github.com/tu-usuario/freelanceflow/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
// Todas las lecturas filtran is_deleted = FALSE.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, email, phone, company, address, tax_number, status, notes, is_deleted, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.TaxNumber,
		&c.Status, &c.Notes, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone, company, address, tax_number, status, notes, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Email, client.Phone, client.Company, client.Address,
		client.TaxNumber, client.Status, client.Notes, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente vivo por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND is_deleted = FALSE`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByEmail obtiene un cliente vivo por email (sin distinguir mayúsculas).
func (r *ClientRepo) GetByEmail(email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE LOWER(email) = LOWER($1) AND is_deleted = FALSE`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by email: %w", err)
	}
	return c, nil
}

// List lista clientes vivos con paginación, ordenados por nombre.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE is_deleted = FALSE ORDER BY name LIMIT $1 OFFSET $2`
	return r.queryClients(query, limit, offset)
}

// ListActive lista clientes vivos en estado active.
func (r *ClientRepo) ListActive() ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE is_deleted = FALSE AND status = $1 ORDER BY name`
	return r.queryClients(query, entity.ClientStatusActive)
}

// SearchByName busca clientes vivos por coincidencia parcial de nombre.
func (r *ClientRepo) SearchByName(name string) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE is_deleted = FALSE AND name ILIKE '%' || $1 || '%' ORDER BY name`
	return r.queryClients(query, name)
}

func (r *ClientRepo) queryClients(query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count cuenta los clientes vivos.
func (r *ClientRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM clients WHERE is_deleted = FALSE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, company = $5, address = $6,
		    tax_number = $7, status = $8, notes = $9, updated_at = $10
		WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Email, client.Phone, client.Company, client.Address,
		client.TaxNumber, client.Status, client.Notes, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// SoftDelete marca el cliente como eliminado; sus proyectos y facturas no se tocan.
func (r *ClientRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}
	return nil
}
