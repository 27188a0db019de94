package hall

import (
	"context"

	"github.com/google/uuid"
)

// HallRepository defines the persistence contract for halls.
type HallRepository interface {
	// FindByID retrieves a hall by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Hall, error)

	// FindByDepartmentID retrieves halls owned by a department.
	// activeOnly restricts the result to halls accepting bookings.
	FindByDepartmentID(ctx context.Context, departmentID uuid.UUID, activeOnly bool) ([]*Hall, error)

	// ListAll retrieves every hall.
	ListAll(ctx context.Context, activeOnly bool) ([]*Hall, error)

	// Save persists a new hall.
	Save(ctx context.Context, hall *Hall) error

	// Update persists changes to an existing hall with optimistic locking.
	Update(ctx context.Context, hall *Hall) error
}
