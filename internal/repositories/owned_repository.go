package repositories

import (
	"errors"
	"fmt"
	"time"

	"camarao/internal/apperrors"

	"gorm.io/gorm"
)

// ListOptions controls pagination, ordering and filtering of owner-scoped
// list queries. Column names come from code, never from the client.
type ListOptions struct {
	Page       int
	Limit      int
	SortColumn string
	SortDesc   bool
	// DateColumn with StartDate/EndDate applies a closed date-range filter.
	DateColumn string
	StartDate  *time.Time
	EndDate    *time.Time
	// Filters are exact-match conditions (e.g. tank_id, status, category).
	Filters map[string]interface{}
}

// OwnedRepository is the generic data-access contract for records carrying
// a created_by owner column. Every query is filtered by owner, so a record
// belonging to another user behaves exactly like a missing record.
type OwnedRepository[T any] interface {
	Create(rec *T) error
	GetByID(ownerID, id string) (*T, error)
	List(ownerID string, opts ListOptions) ([]T, int64, error)
	// All returns every matching record without pagination, for the
	// dashboard readers.
	All(ownerID string, opts ListOptions) ([]T, error)
	Latest(ownerID, dateColumn string) (*T, error)
	Updates(ownerID, id string, fields map[string]interface{}) (*T, error)
	Delete(ownerID, id string) error
	Count(ownerID string, filters map[string]interface{}) (int64, error)
}

// GORMOwnedRepository is the GORM implementation of OwnedRepository,
// instantiated once per resource kind.
type GORMOwnedRepository[T any] struct {
	db *gorm.DB
}

// NewGORMOwnedRepository creates an owner-scoped repository for T.
func NewGORMOwnedRepository[T any](db *gorm.DB) *GORMOwnedRepository[T] {
	return &GORMOwnedRepository[T]{
		db: db,
	}
}

// Create inserts the record. CreatedBy must already be set by the caller.
func (r *GORMOwnedRepository[T]) Create(rec *T) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// GetByID retrieves one record by ID scoped to the owner.
func (r *GORMOwnedRepository[T]) GetByID(ownerID, id string) (*T, error) {
	var rec T
	if err := r.scoped(ownerID).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record %s: %w", id, err)
	}
	return &rec, nil
}

// List returns one page of the owner's records plus the total count.
func (r *GORMOwnedRepository[T]) List(ownerID string, opts ListOptions) ([]T, int64, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}

	query := r.filtered(ownerID, opts)

	var total int64
	var model T
	if err := query.Model(&model).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	// Non-nil so an empty page serializes as [] rather than null.
	recs := []T{}
	if opts.SortColumn != "" {
		order := opts.SortColumn
		if opts.SortDesc {
			order += " desc"
		}
		query = query.Order(order)
	}
	if err := query.Limit(limit).Offset((page - 1) * limit).Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}
	return recs, total, nil
}

// All returns every record matching the options, ignoring pagination.
func (r *GORMOwnedRepository[T]) All(ownerID string, opts ListOptions) ([]T, error) {
	query := r.filtered(ownerID, opts)
	if opts.SortColumn != "" {
		order := opts.SortColumn
		if opts.SortDesc {
			order += " desc"
		}
		query = query.Order(order)
	}
	recs := []T{}
	if err := query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return recs, nil
}

// Latest returns the owner's most recent record by the given date column,
// or ErrNotFound when the owner has none.
func (r *GORMOwnedRepository[T]) Latest(ownerID, dateColumn string) (*T, error) {
	var rec T
	err := r.scoped(ownerID).Order(dateColumn + " desc").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest record: %w", err)
	}
	return &rec, nil
}

// Updates applies a partial update to the owner's record and returns the
// updated row. The created_by column is never part of the update map, so
// ownership is immutable. ErrNotFound covers both absent and foreign rows.
func (r *GORMOwnedRepository[T]) Updates(ownerID, id string, fields map[string]interface{}) (*T, error) {
	delete(fields, "created_by")
	if len(fields) == 0 {
		return r.GetByID(ownerID, id)
	}
	var model T
	res := r.scoped(ownerID).Model(&model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update record %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(ownerID, id)
}

// Delete removes the owner's record in a single owner-scoped statement.
func (r *GORMOwnedRepository[T]) Delete(ownerID, id string) error {
	var model T
	res := r.scoped(ownerID).Where("id = ?", id).Delete(&model)
	if res.Error != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count returns the number of the owner's records matching the filters.
func (r *GORMOwnedRepository[T]) Count(ownerID string, filters map[string]interface{}) (int64, error) {
	query := r.scoped(ownerID)
	for column, value := range filters {
		query = query.Where(column+" = ?", value)
	}
	var model T
	var total int64
	if err := query.Model(&model).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return total, nil
}

func (r *GORMOwnedRepository[T]) scoped(ownerID string) *gorm.DB {
	return r.db.Where("created_by = ?", ownerID)
}

func (r *GORMOwnedRepository[T]) filtered(ownerID string, opts ListOptions) *gorm.DB {
	query := r.scoped(ownerID)
	for column, value := range opts.Filters {
		query = query.Where(column+" = ?", value)
	}
	if opts.DateColumn != "" {
		if opts.StartDate != nil {
			query = query.Where(opts.DateColumn+" >= ?", *opts.StartDate)
		}
		if opts.EndDate != nil {
			query = query.Where(opts.DateColumn+" <= ?", *opts.EndDate)
		}
	}
	return query
}
