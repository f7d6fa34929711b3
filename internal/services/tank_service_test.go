package services_test

import (
	"fmt"
	"testing"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"
	"camarao/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTankRepository is a mock implementation of repositories.TankRepository
type MockTankRepository struct {
	mock.Mock
}

func (m *MockTankRepository) Create(tank *models.Tank) error {
	args := m.Called(tank)
	return args.Error(0)
}

func (m *MockTankRepository) GetByID(ownerID, id string) (*models.Tank, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tank), args.Error(1)
}

func (m *MockTankRepository) List(ownerID string, opts repositories.ListOptions) ([]models.Tank, int64, error) {
	args := m.Called(ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Tank), args.Get(1).(int64), args.Error(2)
}

func (m *MockTankRepository) All(ownerID string, opts repositories.ListOptions) ([]models.Tank, error) {
	args := m.Called(ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tank), args.Error(1)
}

func (m *MockTankRepository) Latest(ownerID, dateColumn string) (*models.Tank, error) {
	args := m.Called(ownerID, dateColumn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tank), args.Error(1)
}

func (m *MockTankRepository) Updates(ownerID, id string, fields map[string]interface{}) (*models.Tank, error) {
	args := m.Called(ownerID, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tank), args.Error(1)
}

func (m *MockTankRepository) Delete(ownerID, id string) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

func (m *MockTankRepository) Count(ownerID string, filters map[string]interface{}) (int64, error) {
	args := m.Called(ownerID, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTankRepository) CountExpiringSoon(ownerID string, within time.Duration) (int64, error) {
	args := m.Called(ownerID, within)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTankRepository) CapacityStats(ownerID string) (repositories.CapacityStats, error) {
	args := m.Called(ownerID)
	return args.Get(0).(repositories.CapacityStats), args.Error(1)
}

func validTankInput() services.TankInput {
	return services.TankInput{
		Name:                 "Tanque Norte",
		Capacity:             5000,
		Size:                 120,
		InstallationDate:     "2024-01-01",
		ExpiryDate:           "2025-01-01",
		FeedingType:          "Artificial",
		TechnicalResponsible: "Maria Silva",
	}
}

func TestTankService_Create(t *testing.T) {
	mockRepo := new(MockTankRepository)
	service := services.NewTankService(mockRepo)

	// Test successful creation
	mockRepo.On("Create", mock.AnythingOfType("*models.Tank")).Return(nil).Once()
	tank, err := service.Create("owner-1", validTankInput())
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", tank.CreatedBy)
	assert.Equal(t, "Ativo", tank.Status)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tank.InstallationDate)
	mockRepo.AssertExpectations(t)

	// Test missing required fields
	in := validTankInput()
	in.Name = ""
	_, err = service.Create("owner-1", in)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "obrigatórios")

	// Test expiry date not after installation date
	in = validTankInput()
	in.ExpiryDate = "2024-01-01"
	_, err = service.Create("owner-1", in)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "posterior")

	// Test invalid feeding type
	in = validTankInput()
	in.FeedingType = "Hidropônica"
	_, err = service.Create("owner-1", in)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Tipo de alimentação inválido")
}

func TestTankService_List(t *testing.T) {
	mockRepo := new(MockTankRepository)
	service := services.NewTankService(mockRepo)

	expected := []models.Tank{
		{ID: "t1", Name: "Tanque Norte", CreatedBy: "owner-1"},
		{ID: "t2", Name: "Tanque Sul", CreatedBy: "owner-1"},
	}
	opts := repositories.ListOptions{
		Page:       1,
		Limit:      10,
		SortColumn: "created_at",
		SortDesc:   true,
		Filters:    map[string]interface{}{"status": "Ativo"},
	}
	mockRepo.On("List", "owner-1", opts).Return(expected, int64(2), nil).Once()

	tanks, total, err := service.List("owner-1", services.TankListFilter{Page: 1, Limit: 10, Status: "Ativo"})
	assert.NoError(t, err)
	assert.Len(t, tanks, 2)
	assert.Equal(t, int64(2), total)
	mockRepo.AssertExpectations(t)
}

func TestTankService_Update(t *testing.T) {
	mockRepo := new(MockTankRepository)
	service := services.NewTankService(mockRepo)

	// Test partial update maps only the provided fields
	name := "Tanque Renovado"
	capacity := 7500.0
	expectedFields := map[string]interface{}{
		"name":     "Tanque Renovado",
		"capacity": 7500.0,
	}
	updated := &models.Tank{ID: "t1", Name: name, Capacity: capacity, CreatedBy: "owner-1"}
	mockRepo.On("Updates", "owner-1", "t1", expectedFields).Return(updated, nil).Once()

	tank, err := service.Update("owner-1", "t1", services.TankUpdate{Name: &name, Capacity: &capacity})
	assert.NoError(t, err)
	assert.Equal(t, updated, tank)
	mockRepo.AssertExpectations(t)

	// Test invalid status rejected before touching the repository
	badStatus := "Desligado"
	_, err = service.Update("owner-1", "t1", services.TankUpdate{Status: &badStatus})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Status inválido")

	// Test tank not found (or owned by someone else)
	mockRepo.On("Updates", "owner-1", "t99", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	otherName := "Qualquer"
	_, err = service.Update("owner-1", "t99", services.TankUpdate{Name: &otherName})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestTankService_Delete(t *testing.T) {
	mockRepo := new(MockTankRepository)
	service := services.NewTankService(mockRepo)

	mockRepo.On("Delete", "owner-1", "t1").Return(nil).Once()
	assert.NoError(t, service.Delete("owner-1", "t1"))

	mockRepo.On("Delete", "owner-1", "t99").Return(apperrors.ErrNotFound).Once()
	assert.ErrorIs(t, service.Delete("owner-1", "t99"), apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestTankService_DashboardStats(t *testing.T) {
	mockRepo := new(MockTankRepository)
	service := services.NewTankService(mockRepo)

	mockRepo.On("Count", "owner-1", map[string]interface{}(nil)).Return(int64(4), nil).Once()
	mockRepo.On("Count", "owner-1", map[string]interface{}{"status": "Ativo"}).Return(int64(3), nil).Once()
	mockRepo.On("Count", "owner-1", map[string]interface{}{"status": "Manutenção"}).Return(int64(1), nil).Once()
	mockRepo.On("CountExpiringSoon", "owner-1", 30*24*time.Hour).Return(int64(2), nil).Once()
	mockRepo.On("CapacityStats", "owner-1").Return(repositories.CapacityStats{TotalCapacity: 20000, AvgCapacity: 5000}, nil).Once()

	stats, err := service.DashboardStats("owner-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalTanks)
	assert.Equal(t, int64(3), stats.ActiveTanks)
	assert.Equal(t, int64(1), stats.MaintenanceTanks)
	assert.Equal(t, int64(2), stats.ExpiringSoon)
	assert.Equal(t, 20000.0, stats.CapacityStats.TotalCapacity)
	mockRepo.AssertExpectations(t)

	// Test repository failure propagates
	mockRepo.On("Count", "owner-1", map[string]interface{}(nil)).Return(int64(0), fmt.Errorf("database error")).Once()
	_, err = service.DashboardStats("owner-1")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
