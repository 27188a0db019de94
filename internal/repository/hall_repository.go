package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campus-halls/service-booking/internal/domain"
	hallDomain "github.com/campus-halls/service-booking/internal/domain/hall"
)

// HallModel is the GORM model for the halls table.
type HallModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"not null;size:120"`
	Location     string    `gorm:"not null;size:255"`
	Capacity     int       `gorm:"not null"`
	HasProjector bool      `gorm:"not null;default:false"`
	HasAirCon    bool      `gorm:"not null;default:false"`
	ImageURL     string    `gorm:"size:500"`
	Active       bool      `gorm:"not null;default:true;index"`
	Version      int64     `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (HallModel) TableName() string {
	return "halls"
}

// GormHallRepository is the GORM-based implementation of HallRepository.
type GormHallRepository struct {
	db *gorm.DB
}

// NewGormHallRepository creates a new GormHallRepository.
func NewGormHallRepository(db *gorm.DB) *GormHallRepository {
	return &GormHallRepository{db: db}
}

// FindByID retrieves a hall by its unique identifier.
func (r *GormHallRepository) FindByID(ctx context.Context, id uuid.UUID) (*hallDomain.Hall, error) {
	var model HallModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Hall", id.String())
		}
		return nil, domain.NewStorageError("find hall", err)
	}
	return toDomainHall(&model), nil
}

// FindByDepartmentID retrieves halls owned by a department.
func (r *GormHallRepository) FindByDepartmentID(ctx context.Context, departmentID uuid.UUID, activeOnly bool) ([]*hallDomain.Hall, error) {
	query := r.db.WithContext(ctx).Where("department_id = ?", departmentID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var models []HallModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, domain.NewStorageError("find department halls", err)
	}
	return toDomainHalls(models), nil
}

// ListAll retrieves every hall.
func (r *GormHallRepository) ListAll(ctx context.Context, activeOnly bool) ([]*hallDomain.Hall, error) {
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var models []HallModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, domain.NewStorageError("list halls", err)
	}
	return toDomainHalls(models), nil
}

// Save persists a new hall.
func (r *GormHallRepository) Save(ctx context.Context, hl *hallDomain.Hall) error {
	if err := r.db.WithContext(ctx).Create(toHallModel(hl)).Error; err != nil {
		return domain.NewStorageError("save hall", err)
	}
	return nil
}

// Update persists changes to an existing hall with optimistic locking.
func (r *GormHallRepository) Update(ctx context.Context, hl *hallDomain.Hall) error {
	model := toHallModel(hl)

	expectedVersion := hl.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&HallModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"location":      model.Location,
			"capacity":      model.Capacity,
			"has_projector": model.HasProjector,
			"has_air_con":   model.HasAirCon,
			"image_url":     model.ImageURL,
			"active":        model.Active,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return domain.NewStorageError("update hall", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("hall was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toHallModel(h *hallDomain.Hall) *HallModel {
	return &HallModel{
		ID:           h.ID(),
		DepartmentID: h.DepartmentID(),
		Name:         h.Name(),
		Location:     h.Location(),
		Capacity:     h.Capacity(),
		HasProjector: h.HasProjector(),
		HasAirCon:    h.HasAirCon(),
		ImageURL:     h.ImageURL(),
		Active:       h.Active(),
		Version:      h.Version(),
		CreatedAt:    h.CreatedAt(),
		UpdatedAt:    h.UpdatedAt(),
	}
}

func toDomainHall(m *HallModel) *hallDomain.Hall {
	return hallDomain.Reconstruct(
		m.ID,
		m.DepartmentID,
		m.Name,
		m.Location,
		m.Capacity,
		m.HasProjector,
		m.HasAirCon,
		m.ImageURL,
		m.Active,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainHalls(models []HallModel) []*hallDomain.Hall {
	halls := make([]*hallDomain.Hall, len(models))
	for i, m := range models {
		halls[i] = toDomainHall(&m)
	}
	return halls
}
