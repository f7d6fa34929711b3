package repositories

import (
	"fmt"
	"time"

	"camarao/internal/models"

	"gorm.io/gorm"
)

// CapacityStats aggregates tank capacities for the dashboard.
type CapacityStats struct {
	TotalCapacity float64 `json:"totalCapacity"`
	AvgCapacity   float64 `json:"avgCapacity"`
}

// TankRepository extends the generic owner-scoped contract with the
// aggregate queries the tank dashboard needs.
type TankRepository interface {
	OwnedRepository[models.Tank]
	CountExpiringSoon(ownerID string, within time.Duration) (int64, error)
	CapacityStats(ownerID string) (CapacityStats, error)
}

// GORMTankRepository is the GORM implementation of TankRepository.
type GORMTankRepository struct {
	*GORMOwnedRepository[models.Tank]
	db *gorm.DB
}

// NewGORMTankRepository creates a new instance of GORMTankRepository.
func NewGORMTankRepository(db *gorm.DB) *GORMTankRepository {
	return &GORMTankRepository{
		GORMOwnedRepository: NewGORMOwnedRepository[models.Tank](db),
		db:                  db,
	}
}

// CountExpiringSoon counts the owner's active tanks whose expiry date
// falls between now and now+within.
func (r *GORMTankRepository) CountExpiringSoon(ownerID string, within time.Duration) (int64, error) {
	now := time.Now()
	var total int64
	err := r.db.Model(&models.Tank{}).
		Where("created_by = ? AND status = ?", ownerID, "Ativo").
		Where("expiry_date >= ? AND expiry_date <= ?", now, now.Add(within)).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count expiring tanks: %w", err)
	}
	return total, nil
}

// CapacityStats sums and averages the owner's tank capacities. Both values
// are zero when the owner has no tanks.
func (r *GORMTankRepository) CapacityStats(ownerID string) (CapacityStats, error) {
	var stats CapacityStats
	err := r.db.Model(&models.Tank{}).
		Where("created_by = ?", ownerID).
		Select("COALESCE(SUM(capacity), 0) AS total_capacity, COALESCE(AVG(capacity), 0) AS avg_capacity").
		Scan(&stats).Error
	if err != nil {
		return CapacityStats{}, fmt.Errorf("failed to aggregate tank capacity: %w", err)
	}
	return stats, nil
}
