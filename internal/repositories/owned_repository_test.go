package repositories_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Tank{}))
	return db
}

func newTank(owner, name, status string) *models.Tank {
	return &models.Tank{
		Name:                 name,
		Capacity:             5000,
		Size:                 120,
		InstallationDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:           time.Now().Add(15 * 24 * time.Hour),
		FeedingType:          "Artificial",
		TechnicalResponsible: "Maria Silva",
		Status:               status,
		CreatedBy:            owner,
	}
}

func TestOwnedRepository_OwnerScoping(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOwnedRepository[models.Tank](db)

	aliceTank := newTank("alice", "Tanque da Alice", "Ativo")
	bobTank := newTank("bob", "Tanque do Bob", "Ativo")
	assert.NoError(t, repo.Create(aliceTank))
	assert.NoError(t, repo.Create(bobTank))
	assert.NotEmpty(t, aliceTank.ID)

	// The owner sees their record
	got, err := repo.GetByID("alice", aliceTank.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Tanque da Alice", got.Name)

	// A foreign record behaves exactly like a missing one
	_, err = repo.GetByID("bob", aliceTank.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.GetByID("alice", "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Listings never cross owner boundaries
	tanks, total, err := repo.List("alice", repositories.ListOptions{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, tanks, 1)
	assert.Equal(t, "alice", tanks[0].CreatedBy)

	// An owner with no records gets an empty slice, never nil
	none, total, err := repo.List("carol", repositories.ListOptions{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.NotNil(t, none)
	assert.Len(t, none, 0)

	all, err := repo.All("carol", repositories.ListOptions{})
	assert.NoError(t, err)
	assert.NotNil(t, all)
	assert.Len(t, all, 0)

	// Updates against a foreign record touch nothing
	_, err = repo.Updates("bob", aliceTank.ID, map[string]interface{}{"name": "Roubado"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	got, err = repo.GetByID("alice", aliceTank.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Tanque da Alice", got.Name)

	// Deletes against a foreign record touch nothing
	assert.ErrorIs(t, repo.Delete("bob", aliceTank.ID), apperrors.ErrNotFound)
	_, err = repo.GetByID("alice", aliceTank.ID)
	assert.NoError(t, err)
}

func TestOwnedRepository_UpdatesKeepOwnership(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOwnedRepository[models.Tank](db)

	tank := newTank("alice", "Tanque Norte", "Ativo")
	assert.NoError(t, repo.Create(tank))

	// created_by is stripped from the update map, so ownership cannot move
	updated, err := repo.Updates("alice", tank.ID, map[string]interface{}{
		"name":       "Tanque Renovado",
		"created_by": "bob",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Tanque Renovado", updated.Name)
	assert.Equal(t, "alice", updated.CreatedBy)

	// An empty update map is a no-op returning the current row
	unchanged, err := repo.Updates("alice", tank.ID, map[string]interface{}{})
	assert.NoError(t, err)
	assert.Equal(t, "Tanque Renovado", unchanged.Name)
}

func TestOwnedRepository_DeleteIsHard(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOwnedRepository[models.Tank](db)

	tank := newTank("alice", "Tanque Norte", "Ativo")
	assert.NoError(t, repo.Create(tank))
	assert.NoError(t, repo.Delete("alice", tank.ID))

	// The row is physically gone, not flagged
	var count int64
	assert.NoError(t, db.Model(&models.Tank{}).Where("id = ?", tank.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Deleting again reports NotFound
	assert.ErrorIs(t, repo.Delete("alice", tank.ID), apperrors.ErrNotFound)
}

func TestOwnedRepository_ListFilteringAndPaging(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOwnedRepository[models.Tank](db)

	for i := 0; i < 3; i++ {
		tank := newTank("alice", fmt.Sprintf("Tanque %d", i), "Ativo")
		assert.NoError(t, repo.Create(tank))
	}
	assert.NoError(t, repo.Create(newTank("alice", "Tanque Parado", "Inativo")))

	tanks, total, err := repo.List("alice", repositories.ListOptions{
		Page:    1,
		Limit:   2,
		Filters: map[string]interface{}{"status": "Ativo"},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, tanks, 2)

	tanks, total, err = repo.List("alice", repositories.ListOptions{
		Page:    2,
		Limit:   2,
		Filters: map[string]interface{}{"status": "Ativo"},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, tanks, 1)

	count, err := repo.Count("alice", map[string]interface{}{"status": "Inativo"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTankRepository_Aggregates(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMTankRepository(db)

	small := newTank("alice", "Tanque Pequeno", "Ativo")
	small.Capacity = 2000
	big := newTank("alice", "Tanque Grande", "Ativo")
	big.Capacity = 6000
	// Expires far in the future, outside the 30-day window
	big.ExpiryDate = time.Now().Add(365 * 24 * time.Hour)
	foreign := newTank("bob", "Tanque do Bob", "Ativo")
	foreign.Capacity = 9999
	assert.NoError(t, repo.Create(small))
	assert.NoError(t, repo.Create(big))
	assert.NoError(t, repo.Create(foreign))

	stats, err := repo.CapacityStats("alice")
	assert.NoError(t, err)
	assert.Equal(t, 8000.0, stats.TotalCapacity)
	assert.Equal(t, 4000.0, stats.AvgCapacity)

	expiring, err := repo.CountExpiringSoon("alice", 30*24*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), expiring)

	// An owner with no tanks gets zeroes
	stats, err = repo.CapacityStats("nobody")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, stats.TotalCapacity)
	assert.Equal(t, 0.0, stats.AvgCapacity)
}
