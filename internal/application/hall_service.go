package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	hallDomain "github.com/campus-halls/service-booking/internal/domain/hall"
)

// CreateHallRequest is the request DTO for registering a hall.
type CreateHallRequest struct {
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	Capacity     int       `json:"capacity" binding:"required"`
	HasProjector bool      `json:"has_projector"`
	HasAirCon    bool      `json:"has_air_con"`
	ImageURL     string    `json:"image_url"`
}

// UpdateHallRequest is the request DTO for updating a hall. Zero values
// leave the corresponding field unchanged.
type UpdateHallRequest struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Capacity     int    `json:"capacity"`
	HasProjector *bool  `json:"has_projector"`
	HasAirCon    *bool  `json:"has_air_con"`
	ImageURL     string `json:"image_url"`
}

// HallDTO is the API response representation of a hall.
type HallDTO struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department_id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Capacity     int       `json:"capacity"`
	HasProjector bool      `json:"has_projector"`
	HasAirCon    bool      `json:"has_air_con"`
	ImageURL     string    `json:"image_url,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HallService implements hall browsing and admin management.
type HallService struct {
	repo   hallDomain.HallRepository
	logger *zap.Logger
}

// NewHallService creates a new HallService.
func NewHallService(repo hallDomain.HallRepository, logger *zap.Logger) *HallService {
	return &HallService{repo: repo, logger: logger}
}

// CreateHall registers a new hall (admin).
func (s *HallService) CreateHall(ctx context.Context, req CreateHallRequest) (*HallDTO, error) {
	hl, err := hallDomain.NewHall(
		req.DepartmentID,
		req.Name, req.Location,
		req.Capacity,
		req.HasProjector, req.HasAirCon,
		req.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, hl); err != nil {
		return nil, err
	}

	s.logger.Info("hall created",
		zap.String("hall_id", hl.ID().String()),
		zap.String("name", hl.Name()),
	)
	result := toHallDTO(hl)
	return &result, nil
}

// UpdateHall applies partial updates to a hall (admin).
func (s *HallService) UpdateHall(ctx context.Context, hallID uuid.UUID, req UpdateHallRequest) (*HallDTO, error) {
	hl, err := s.repo.FindByID(ctx, hallID)
	if err != nil {
		return nil, err
	}

	hl.Update(req.Name, req.Location, req.Capacity, req.HasProjector, req.HasAirCon, req.ImageURL)
	if err := s.repo.Update(ctx, hl); err != nil {
		return nil, err
	}

	result := toHallDTO(hl)
	return &result, nil
}

// SetHallActive activates or deactivates a hall (admin). Deactivation is
// the soft-delete path.
func (s *HallService) SetHallActive(ctx context.Context, hallID uuid.UUID, active bool) (*HallDTO, error) {
	hl, err := s.repo.FindByID(ctx, hallID)
	if err != nil {
		return nil, err
	}

	hl.SetActive(active)
	if err := s.repo.Update(ctx, hl); err != nil {
		return nil, err
	}

	s.logger.Info("hall active status changed",
		zap.String("hall_id", hallID.String()),
		zap.Bool("active", active),
	)
	result := toHallDTO(hl)
	return &result, nil
}

// GetHall retrieves a single hall.
func (s *HallService) GetHall(ctx context.Context, hallID uuid.UUID) (*HallDTO, error) {
	hl, err := s.repo.FindByID(ctx, hallID)
	if err != nil {
		return nil, err
	}
	result := toHallDTO(hl)
	return &result, nil
}

// ListHalls retrieves halls, optionally restricted to a department and to
// active halls only.
func (s *HallService) ListHalls(ctx context.Context, departmentID *uuid.UUID, activeOnly bool) ([]HallDTO, error) {
	var (
		halls []*hallDomain.Hall
		err   error
	)
	if departmentID != nil {
		halls, err = s.repo.FindByDepartmentID(ctx, *departmentID, activeOnly)
	} else {
		halls, err = s.repo.ListAll(ctx, activeOnly)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]HallDTO, len(halls))
	for i, h := range halls {
		dtos[i] = toHallDTO(h)
	}
	return dtos, nil
}

func toHallDTO(h *hallDomain.Hall) HallDTO {
	return HallDTO{
		ID:           h.ID(),
		DepartmentID: h.DepartmentID(),
		Name:         h.Name(),
		Location:     h.Location(),
		Capacity:     h.Capacity(),
		HasProjector: h.HasProjector(),
		HasAirCon:    h.HasAirCon(),
		ImageURL:     h.ImageURL(),
		Active:       h.Active(),
		CreatedAt:    h.CreatedAt(),
		UpdatedAt:    h.UpdatedAt(),
	}
}
