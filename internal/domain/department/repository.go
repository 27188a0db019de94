package department

import (
	"context"

	"github.com/google/uuid"
)

// DepartmentRepository defines the persistence contract for departments.
type DepartmentRepository interface {
	// FindByID retrieves a department by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)

	// ListAll retrieves every department, alphabetically.
	ListAll(ctx context.Context) ([]*Department, error)

	// Save persists a new department.
	Save(ctx context.Context, dept *Department) error

	// Update persists changes to an existing department with optimistic
	// locking.
	Update(ctx context.Context, dept *Department) error
}
