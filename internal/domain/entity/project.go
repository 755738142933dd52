package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Project.
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// Prioridades válidas para Project.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Project representa un proyecto de un cliente.
// IsActive se deriva del status: true para planning/in_progress/on_hold,
// false para completed/cancelled. Solo el override manual puede separarlos.
type Project struct {
	ID                 string
	ClientID           string
	Name               string
	Description        string
	StartDate          time.Time
	EndDate            *time.Time
	DeadlineDate       *time.Time
	Budget             decimal.Decimal
	ActualCost         *decimal.Decimal
	Status             string // planning, in_progress, on_hold, completed, cancelled
	Priority           string // low, medium, high, critical
	ProgressPercentage int    // 0..100
	IsActive           bool
	Notes              string
	IsDeleted          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DeriveActive devuelve el valor de IsActive que corresponde a un status.
func DeriveActive(status string) bool {
	switch status {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusOnHold:
		return true
	}
	return false
}

// ValidProjectStatus valida un status de proyecto recibido por la API.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// ValidPriority valida una prioridad recibida por la API.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
