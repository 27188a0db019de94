package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campus-halls/service-booking/internal/domain"
	deptDomain "github.com/campus-halls/service-booking/internal/domain/department"
)

// DepartmentModel is the GORM persistence model for departments.
type DepartmentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}

// GormDepartmentRepository implements department.DepartmentRepository
// backed by PostgreSQL.
type GormDepartmentRepository struct {
	db *gorm.DB
}

func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*deptDomain.Department, error) {
	var model DepartmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("department", id.String())
		}
		return nil, domain.NewStorageError("find department", err)
	}
	return toDomainDepartment(&model), nil
}

func (r *GormDepartmentRepository) ListAll(ctx context.Context) ([]*deptDomain.Department, error) {
	var models []DepartmentModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&models).Error; err != nil {
		return nil, domain.NewStorageError("list departments", err)
	}
	departments := make([]*deptDomain.Department, 0, len(models))
	for i := range models {
		departments = append(departments, toDomainDepartment(&models[i]))
	}
	return departments, nil
}

func (r *GormDepartmentRepository) Save(ctx context.Context, dept *deptDomain.Department) error {
	model := toDepartmentModel(dept)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewStorageError("create department", err)
	}
	return nil
}

// Update persists mutable fields with an optimistic version check.
func (r *GormDepartmentRepository) Update(ctx context.Context, dept *deptDomain.Department) error {
	expectedVersion := dept.Version() - 1
	result := r.db.WithContext(ctx).Model(&DepartmentModel{}).
		Where("id = ? AND version = ?", dept.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"name":        dept.Name(),
			"description": dept.Description(),
			"version":     dept.Version(),
			"updated_at":  dept.UpdatedAt(),
		})
	if result.Error != nil {
		return domain.NewStorageError("update department", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("department was modified concurrently")
	}
	return nil
}

func toDepartmentModel(dept *deptDomain.Department) *DepartmentModel {
	return &DepartmentModel{
		ID:          dept.ID(),
		Name:        dept.Name(),
		Description: dept.Description(),
		Version:     dept.Version(),
		CreatedAt:   dept.CreatedAt(),
		UpdatedAt:   dept.UpdatedAt(),
	}
}

func toDomainDepartment(model *DepartmentModel) *deptDomain.Department {
	return deptDomain.Reconstruct(
		model.ID,
		model.Name,
		model.Description,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
