package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	deptDomain "github.com/campus-halls/service-booking/internal/domain/department"
)

// CreateDepartmentRequest is the request DTO for registering a department.
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateDepartmentRequest is the request DTO for updating a department.
type UpdateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DepartmentDTO is the API response representation of a department.
type DepartmentDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DepartmentService implements department browsing and admin management.
type DepartmentService struct {
	repo   deptDomain.DepartmentRepository
	logger *zap.Logger
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(repo deptDomain.DepartmentRepository, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{repo: repo, logger: logger}
}

// FindByID retrieves a department as a DTO. Satisfies DepartmentReader.
func (s *DepartmentService) FindByID(ctx context.Context, id uuid.UUID) (DepartmentDTO, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentDTO{}, err
	}
	return toDepartmentDTO(dept), nil
}

// CreateDepartment registers a new department (admin).
func (s *DepartmentService) CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*DepartmentDTO, error) {
	dept, err := deptDomain.NewDepartment(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, dept); err != nil {
		return nil, err
	}

	s.logger.Info("department created",
		zap.String("department_id", dept.ID().String()),
		zap.String("name", dept.Name()),
	)
	result := toDepartmentDTO(dept)
	return &result, nil
}

// UpdateDepartment applies partial updates to a department (admin).
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uuid.UUID, req UpdateDepartmentRequest) (*DepartmentDTO, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dept.Update(req.Name, req.Description)
	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, err
	}

	result := toDepartmentDTO(dept)
	return &result, nil
}

// ListDepartments retrieves every department.
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]DepartmentDTO, error) {
	depts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]DepartmentDTO, len(depts))
	for i, d := range depts {
		dtos[i] = toDepartmentDTO(d)
	}
	return dtos, nil
}

func toDepartmentDTO(d *deptDomain.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:          d.ID(),
		Name:        d.Name(),
		Description: d.Description(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
}
