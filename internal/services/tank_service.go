package services

import (
	"strings"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"
)

// TankInput is the payload to create a tank. Dates are accepted as
// strings and parsed here so the transport stays thin.
type TankInput struct {
	Name                 string  `json:"name"`
	Capacity             float64 `json:"capacity"`
	Size                 float64 `json:"size"`
	InstallationDate     string  `json:"installationDate"`
	ExpiryDate           string  `json:"expiryDate"`
	FeedingType          string  `json:"feedingType"`
	TechnicalResponsible string  `json:"technicalResponsible"`
	Status               string  `json:"status"`
	Notes                string  `json:"notes"`
}

// TankUpdate carries a partial update; nil fields are left unchanged.
type TankUpdate struct {
	Name                 *string  `json:"name"`
	Capacity             *float64 `json:"capacity"`
	Size                 *float64 `json:"size"`
	InstallationDate     *string  `json:"installationDate"`
	ExpiryDate           *string  `json:"expiryDate"`
	FeedingType          *string  `json:"feedingType"`
	TechnicalResponsible *string  `json:"technicalResponsible"`
	Status               *string  `json:"status"`
	Notes                *string  `json:"notes"`
}

// TankListFilter narrows the owner's tank listing.
type TankListFilter struct {
	Page   int
	Limit  int
	Status string
}

// TankStats is the tank dashboard summary. All values are zero when the
// owner has no tanks.
type TankStats struct {
	TotalTanks       int64                      `json:"totalTanks"`
	ActiveTanks      int64                      `json:"activeTanks"`
	MaintenanceTanks int64                      `json:"maintenanceTanks"`
	ExpiringSoon     int64                      `json:"expiringSoon"`
	CapacityStats    repositories.CapacityStats `json:"capacityStats"`
}

// TankService handles business logic for tanks.
type TankService struct {
	repo repositories.TankRepository
}

// NewTankService creates a new TankService.
func NewTankService(repo repositories.TankRepository) *TankService {
	return &TankService{
		repo: repo,
	}
}

// List returns one page of the owner's tanks, newest first.
func (s *TankService) List(ownerID string, filter TankListFilter) ([]models.Tank, int64, error) {
	opts := repositories.ListOptions{
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortColumn: "created_at",
		SortDesc:   true,
	}
	if filter.Status != "" {
		opts.Filters = map[string]interface{}{"status": filter.Status}
	}
	return s.repo.List(ownerID, opts)
}

// Get returns one of the owner's tanks by ID.
func (s *TankService) Get(ownerID, id string) (*models.Tank, error) {
	return s.repo.GetByID(ownerID, id)
}

// Create validates and persists a new tank owned by ownerID.
func (s *TankService) Create(ownerID string, in TankInput) (*models.Tank, error) {
	if in.Name == "" || in.Capacity == 0 || in.Size == 0 || in.InstallationDate == "" ||
		in.ExpiryDate == "" || in.FeedingType == "" || in.TechnicalResponsible == "" {
		return nil, apperrors.Validation("Todos os campos obrigatórios devem ser preenchidos")
	}

	installDate, err := parseDate(in.InstallationDate)
	if err != nil {
		return nil, apperrors.Validation("Data de instalação inválida")
	}
	expDate, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, apperrors.Validation("Data de validade inválida")
	}
	if !expDate.After(installDate) {
		return nil, apperrors.Validation("Data de validade deve ser posterior à data de instalação")
	}

	if !contains(models.TankFeedingTypes, in.FeedingType) {
		return nil, apperrors.Validation("Tipo de alimentação inválido")
	}

	status := in.Status
	if status == "" {
		status = "Ativo"
	}

	tank := &models.Tank{
		Name:                 strings.TrimSpace(in.Name),
		Capacity:             in.Capacity,
		Size:                 in.Size,
		InstallationDate:     installDate,
		ExpiryDate:           expDate,
		FeedingType:          in.FeedingType,
		TechnicalResponsible: strings.TrimSpace(in.TechnicalResponsible),
		Status:               status,
		Notes:                strings.TrimSpace(in.Notes),
		CreatedBy:            ownerID,
	}
	if err := s.repo.Create(tank); err != nil {
		return nil, err
	}
	return tank, nil
}

// Update applies a partial update to one of the owner's tanks.
func (s *TankService) Update(ownerID, id string, in TankUpdate) (*models.Tank, error) {
	fields := map[string]interface{}{}
	if in.Name != nil && *in.Name != "" {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Capacity != nil {
		fields["capacity"] = *in.Capacity
	}
	if in.Size != nil {
		fields["size"] = *in.Size
	}
	if in.InstallationDate != nil {
		d, err := parseDate(*in.InstallationDate)
		if err != nil {
			return nil, apperrors.Validation("Data de instalação inválida")
		}
		fields["installation_date"] = d
	}
	if in.ExpiryDate != nil {
		d, err := parseDate(*in.ExpiryDate)
		if err != nil {
			return nil, apperrors.Validation("Data de validade inválida")
		}
		fields["expiry_date"] = d
	}
	if in.FeedingType != nil {
		if !contains(models.TankFeedingTypes, *in.FeedingType) {
			return nil, apperrors.Validation("Tipo de alimentação inválido")
		}
		fields["feeding_type"] = *in.FeedingType
	}
	if in.TechnicalResponsible != nil && *in.TechnicalResponsible != "" {
		fields["technical_responsible"] = strings.TrimSpace(*in.TechnicalResponsible)
	}
	if in.Status != nil {
		if !contains(models.TankStatuses, *in.Status) {
			return nil, apperrors.Validation("Status inválido")
		}
		fields["status"] = *in.Status
	}
	if in.Notes != nil {
		fields["notes"] = strings.TrimSpace(*in.Notes)
	}
	return s.repo.Updates(ownerID, id, fields)
}

// Delete removes one of the owner's tanks.
func (s *TankService) Delete(ownerID, id string) error {
	return s.repo.Delete(ownerID, id)
}

// DashboardStats computes the tank summary for the dashboard.
func (s *TankService) DashboardStats(ownerID string) (*TankStats, error) {
	total, err := s.repo.Count(ownerID, nil)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.Count(ownerID, map[string]interface{}{"status": "Ativo"})
	if err != nil {
		return nil, err
	}
	maintenance, err := s.repo.Count(ownerID, map[string]interface{}{"status": "Manutenção"})
	if err != nil {
		return nil, err
	}
	expiring, err := s.repo.CountExpiringSoon(ownerID, 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	capacity, err := s.repo.CapacityStats(ownerID)
	if err != nil {
		return nil, err
	}

	return &TankStats{
		TotalTanks:       total,
		ActiveTanks:      active,
		MaintenanceTanks: maintenance,
		ExpiringSoon:     expiring,
		CapacityStats:    capacity,
	}, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
