// Package department holds the Department entity halls belong to.
package department

import (
	"time"

	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/domain"
)

// Department groups halls under an organizational unit.
type Department struct {
	id          uuid.UUID
	name        string
	description string
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewDepartment creates a new department with validated fields.
func NewDepartment(name, description string) (*Department, error) {
	if name == "" {
		return nil, domain.NewValidationError("department name is required")
	}

	now := time.Now().UTC()
	return &Department{
		id:          uuid.New(),
		name:        name,
		description: description,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Department from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, description string, version int64, createdAt, updatedAt time.Time) *Department {
	return &Department{
		id:          id,
		name:        name,
		description: description,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (d *Department) ID() uuid.UUID        { return d.id }
func (d *Department) Name() string         { return d.name }
func (d *Department) Description() string  { return d.description }
func (d *Department) Version() int64       { return d.version }
func (d *Department) CreatedAt() time.Time { return d.createdAt }
func (d *Department) UpdatedAt() time.Time { return d.updatedAt }

// Update applies partial updates to the department.
func (d *Department) Update(name, description string) {
	if name != "" {
		d.name = name
	}
	if description != "" {
		d.description = description
	}
	d.version++
	d.updatedAt = time.Now().UTC()
}
