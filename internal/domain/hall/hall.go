// Package hall holds the Hall entity: a bookable room owned by a
// department. Halls are referenced by bookings but never own them.
package hall

import (
	"time"

	"github.com/google/uuid"

	"github.com/campus-halls/service-booking/internal/domain"
)

// Hall is the aggregate root for a bookable hall.
type Hall struct {
	id              uuid.UUID
	departmentID    uuid.UUID
	name            string
	location        string
	capacity        int
	hasProjector    bool
	hasAirCon       bool
	imageURL        string
	active          bool
	version         int64
	createdAt       time.Time
	updatedAt       time.Time
}

// NewHall creates a new active hall with validated fields.
func NewHall(
	departmentID uuid.UUID,
	name, location string,
	capacity int,
	hasProjector, hasAirCon bool,
	imageURL string,
) (*Hall, error) {
	if departmentID == uuid.Nil {
		return nil, domain.NewValidationError("department ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("hall name is required")
	}
	if location == "" {
		return nil, domain.NewValidationError("hall location is required")
	}
	if capacity <= 0 {
		return nil, domain.NewValidationError("hall capacity must be positive")
	}

	now := time.Now().UTC()
	return &Hall{
		id:           uuid.New(),
		departmentID: departmentID,
		name:         name,
		location:     location,
		capacity:     capacity,
		hasProjector: hasProjector,
		hasAirCon:    hasAirCon,
		imageURL:     imageURL,
		active:       true,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Hall from persistence data (no validation).
func Reconstruct(
	id, departmentID uuid.UUID,
	name, location string,
	capacity int,
	hasProjector, hasAirCon bool,
	imageURL string,
	active bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Hall {
	return &Hall{
		id:           id,
		departmentID: departmentID,
		name:         name,
		location:     location,
		capacity:     capacity,
		hasProjector: hasProjector,
		hasAirCon:    hasAirCon,
		imageURL:     imageURL,
		active:       active,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (h *Hall) ID() uuid.UUID           { return h.id }
func (h *Hall) DepartmentID() uuid.UUID { return h.departmentID }
func (h *Hall) Name() string            { return h.name }
func (h *Hall) Location() string        { return h.location }
func (h *Hall) Capacity() int           { return h.capacity }
func (h *Hall) HasProjector() bool      { return h.hasProjector }
func (h *Hall) HasAirCon() bool         { return h.hasAirCon }
func (h *Hall) ImageURL() string        { return h.imageURL }
func (h *Hall) Active() bool            { return h.active }
func (h *Hall) Version() int64          { return h.version }
func (h *Hall) CreatedAt() time.Time    { return h.createdAt }
func (h *Hall) UpdatedAt() time.Time    { return h.updatedAt }

// --- Behavior ---

// Update applies partial updates to the hall's metadata.
func (h *Hall) Update(name, location string, capacity int, hasProjector, hasAirCon *bool, imageURL string) {
	if name != "" {
		h.name = name
	}
	if location != "" {
		h.location = location
	}
	if capacity > 0 {
		h.capacity = capacity
	}
	if hasProjector != nil {
		h.hasProjector = *hasProjector
	}
	if hasAirCon != nil {
		h.hasAirCon = *hasAirCon
	}
	if imageURL != "" {
		h.imageURL = imageURL
	}
	h.version++
	h.updatedAt = time.Now().UTC()
}

// SetActive toggles whether the hall accepts bookings. Deactivation is the
// soft-delete path; hall rows are never removed while bookings reference
// them.
func (h *Hall) SetActive(active bool) {
	h.active = active
	h.version++
	h.updatedAt = time.Now().UTC()
}
