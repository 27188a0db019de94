package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	hallDomain "github.com/campus-halls/service-booking/internal/domain/hall"
)

// hallCacheRecord is the JSON shape cached in Redis. Only hall metadata is
// cached; booking rows never go through the cache, so the conflict check
// always reads the transactional store.
type hallCacheRecord struct {
	ID           uuid.UUID `json:"id"`
	DepartmentID uuid.UUID `json:"department_id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Capacity     int       `json:"capacity"`
	HasProjector bool      `json:"has_projector"`
	HasAirCon    bool      `json:"has_air_con"`
	ImageURL     string    `json:"image_url"`
	Active       bool      `json:"active"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CachedHallRepository decorates a HallRepository with a read-through
// Redis cache on FindByID. Cache errors degrade to the inner repository.
type CachedHallRepository struct {
	inner  hallDomain.HallRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedHallRepository wraps inner with a Redis cache.
func NewCachedHallRepository(inner hallDomain.HallRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedHallRepository {
	return &CachedHallRepository{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func hallCacheKey(id uuid.UUID) string {
	return "hall:" + id.String()
}

// FindByID retrieves a hall, serving from cache when possible.
func (r *CachedHallRepository) FindByID(ctx context.Context, id uuid.UUID) (*hallDomain.Hall, error) {
	raw, err := r.rdb.Get(ctx, hallCacheKey(id)).Bytes()
	if err == nil {
		var rec hallCacheRecord
		if jsonErr := json.Unmarshal(raw, &rec); jsonErr == nil {
			return fromCacheRecord(&rec), nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("hall cache read failed", zap.String("hall_id", id.String()), zap.Error(err))
	}

	hl, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, hl)
	return hl, nil
}

// FindByDepartmentID delegates to the inner repository; hall lists are not
// cached.
func (r *CachedHallRepository) FindByDepartmentID(ctx context.Context, departmentID uuid.UUID, activeOnly bool) ([]*hallDomain.Hall, error) {
	return r.inner.FindByDepartmentID(ctx, departmentID, activeOnly)
}

// ListAll delegates to the inner repository.
func (r *CachedHallRepository) ListAll(ctx context.Context, activeOnly bool) ([]*hallDomain.Hall, error) {
	return r.inner.ListAll(ctx, activeOnly)
}

// Save persists a new hall and primes the cache.
func (r *CachedHallRepository) Save(ctx context.Context, hl *hallDomain.Hall) error {
	if err := r.inner.Save(ctx, hl); err != nil {
		return err
	}
	r.store(ctx, hl)
	return nil
}

// Update persists changes and invalidates the cached entry before
// rewriting it, so readers never see the stale row after commit.
func (r *CachedHallRepository) Update(ctx context.Context, hl *hallDomain.Hall) error {
	if err := r.inner.Update(ctx, hl); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, hallCacheKey(hl.ID())).Err(); err != nil {
		r.logger.Warn("hall cache invalidation failed", zap.String("hall_id", hl.ID().String()), zap.Error(err))
	}
	r.store(ctx, hl)
	return nil
}

func (r *CachedHallRepository) store(ctx context.Context, hl *hallDomain.Hall) {
	rec := hallCacheRecord{
		ID:           hl.ID(),
		DepartmentID: hl.DepartmentID(),
		Name:         hl.Name(),
		Location:     hl.Location(),
		Capacity:     hl.Capacity(),
		HasProjector: hl.HasProjector(),
		HasAirCon:    hl.HasAirCon(),
		ImageURL:     hl.ImageURL(),
		Active:       hl.Active(),
		Version:      hl.Version(),
		CreatedAt:    hl.CreatedAt(),
		UpdatedAt:    hl.UpdatedAt(),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, hallCacheKey(hl.ID()), raw, r.ttl).Err(); err != nil {
		r.logger.Warn("hall cache write failed", zap.String("hall_id", hl.ID().String()), zap.Error(err))
	}
}

func fromCacheRecord(rec *hallCacheRecord) *hallDomain.Hall {
	return hallDomain.Reconstruct(
		rec.ID,
		rec.DepartmentID,
		rec.Name,
		rec.Location,
		rec.Capacity,
		rec.HasProjector,
		rec.HasAirCon,
		rec.ImageURL,
		rec.Active,
		rec.Version,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
}
