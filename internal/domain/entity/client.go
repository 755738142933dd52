package entity

import "time"

// Estados válidos para Client.
const (
	ClientStatusActive    = "active"
	ClientStatusInactive  = "inactive"
	ClientStatusSuspended = "suspended"
)

// Client representa un cliente del freelancer (dueño de proyectos y facturas).
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	TaxNumber string
	Status    string // active, inactive, suspended
	Notes     string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el cliente puede recibir proyectos y facturas nuevos.
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// ValidClientStatus valida un status de cliente recibido por la API.
func ValidClientStatus(s string) bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusSuspended:
		return true
	}
	return false
}
