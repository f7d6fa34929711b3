package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"
)

// FeedingInputPayload is the payload to record a feeding event.
type FeedingInputPayload struct {
	TankID               string                       `json:"tankId"`
	FeedingDate          string                       `json:"feedingDate"`
	FeedType             string                       `json:"feedType"`
	FeedQuantity         *float64                     `json:"feedQuantity"`
	FeedUnit             string                       `json:"feedUnit"`
	AerationTime         *float64                     `json:"aerationTime"`
	EquipmentMaintenance *models.EquipmentMaintenance `json:"equipmentMaintenance"`
	Inputs               *models.FeedingInputs        `json:"inputs"`
	WaterExchange        *models.WaterExchange        `json:"waterExchange"`
	Responsible          string                       `json:"responsible"`
	Notes                string                       `json:"notes"`
}

// FeedingUpdate carries a partial update; nil fields stay unchanged.
type FeedingUpdate struct {
	FeedingDate          *string                      `json:"feedingDate"`
	FeedType             *string                      `json:"feedType"`
	FeedQuantity         *float64                     `json:"feedQuantity"`
	FeedUnit             *string                      `json:"feedUnit"`
	AerationTime         *float64                     `json:"aerationTime"`
	EquipmentMaintenance *models.EquipmentMaintenance `json:"equipmentMaintenance"`
	Inputs               *models.FeedingInputs        `json:"inputs"`
	WaterExchange        *models.WaterExchange        `json:"waterExchange"`
	Responsible          *string                      `json:"responsible"`
	Notes                *string                      `json:"notes"`
}

// FeedingListFilter narrows the owner's feeding record listing.
type FeedingListFilter struct {
	Page      int
	Limit     int
	TankID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// FeedingService handles business logic for feeding records.
type FeedingService struct {
	repo     repositories.OwnedRepository[models.Feeding]
	tankRepo repositories.OwnedRepository[models.Tank]
}

// NewFeedingService creates a new FeedingService.
func NewFeedingService(repo repositories.OwnedRepository[models.Feeding], tankRepo repositories.OwnedRepository[models.Tank]) *FeedingService {
	return &FeedingService{
		repo:     repo,
		tankRepo: tankRepo,
	}
}

// List returns one page of the owner's feeding records, newest first.
func (s *FeedingService) List(ownerID string, filter FeedingListFilter) ([]models.Feeding, int64, error) {
	opts := repositories.ListOptions{
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortColumn: "feeding_date",
		SortDesc:   true,
		DateColumn: "feeding_date",
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}
	if filter.TankID != "" {
		opts.Filters = map[string]interface{}{"tank_id": filter.TankID}
	}
	return s.repo.List(ownerID, opts)
}

// ListByTank returns every feeding record of one caller-owned tank.
func (s *FeedingService) ListByTank(ownerID, tankID string) ([]models.Feeding, error) {
	if _, err := s.tankRepo.GetByID(ownerID, tankID); err != nil {
		return nil, err
	}
	return s.repo.All(ownerID, repositories.ListOptions{
		SortColumn: "feeding_date",
		SortDesc:   true,
		Filters:    map[string]interface{}{"tank_id": tankID},
	})
}

// Create validates and persists a new feeding record owned by ownerID.
func (s *FeedingService) Create(ownerID string, in FeedingInputPayload) (*models.Feeding, error) {
	if in.TankID == "" || in.FeedingDate == "" || in.FeedType == "" || in.FeedQuantity == nil ||
		in.AerationTime == nil || in.Responsible == "" {
		return nil, apperrors.Validation("Todos os campos obrigatórios devem ser preenchidos")
	}

	if _, err := s.tankRepo.GetByID(ownerID, in.TankID); err != nil {
		return nil, err
	}

	if *in.FeedQuantity <= 0 {
		return nil, apperrors.Validation("Quantidade de ração deve ser maior que 0")
	}
	if *in.AerationTime < 0 || *in.AerationTime > 24 {
		return nil, apperrors.Validation("Tempo de aeração deve estar entre 0 e 24 horas")
	}

	feedingDate, err := parseDate(in.FeedingDate)
	if err != nil {
		return nil, apperrors.Validation("Data de alimentação inválida")
	}

	feedUnit := in.FeedUnit
	if feedUnit == "" {
		feedUnit = "kg"
	} else if !contains(models.FeedUnits, feedUnit) {
		return nil, apperrors.Validation("Unidade de ração inválida")
	}

	feeding := &models.Feeding{
		TankID:       in.TankID,
		FeedingDate:  feedingDate,
		FeedType:     strings.TrimSpace(in.FeedType),
		FeedQuantity: *in.FeedQuantity,
		FeedUnit:     feedUnit,
		AerationTime: *in.AerationTime,
		Responsible:  strings.TrimSpace(in.Responsible),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedBy:    ownerID,
	}
	if in.EquipmentMaintenance != nil {
		feeding.EquipmentMaintenance = *in.EquipmentMaintenance
	}
	if in.Inputs != nil {
		feeding.Inputs = *in.Inputs
	}
	if in.WaterExchange != nil {
		feeding.WaterExchange = *in.WaterExchange
	}
	if err := s.repo.Create(feeding); err != nil {
		return nil, err
	}
	return feeding, nil
}

// Update applies a partial update to one of the owner's feeding records.
func (s *FeedingService) Update(ownerID, id string, in FeedingUpdate) (*models.Feeding, error) {
	fields := map[string]interface{}{}
	if in.FeedingDate != nil {
		d, err := parseDate(*in.FeedingDate)
		if err != nil {
			return nil, apperrors.Validation("Data de alimentação inválida")
		}
		fields["feeding_date"] = d
	}
	if in.FeedType != nil && *in.FeedType != "" {
		fields["feed_type"] = strings.TrimSpace(*in.FeedType)
	}
	if in.FeedQuantity != nil {
		if *in.FeedQuantity <= 0 {
			return nil, apperrors.Validation("Quantidade de ração deve ser maior que 0")
		}
		fields["feed_quantity"] = *in.FeedQuantity
	}
	if in.FeedUnit != nil {
		if !contains(models.FeedUnits, *in.FeedUnit) {
			return nil, apperrors.Validation("Unidade de ração inválida")
		}
		fields["feed_unit"] = *in.FeedUnit
	}
	if in.AerationTime != nil {
		if *in.AerationTime < 0 || *in.AerationTime > 24 {
			return nil, apperrors.Validation("Tempo de aeração deve estar entre 0 e 24 horas")
		}
		fields["aeration_time"] = *in.AerationTime
	}
	// The json serializer only runs on struct-based writes; a column map
	// must carry the already-encoded value.
	if in.EquipmentMaintenance != nil {
		encoded, err := encodeJSONColumn("equipment maintenance", *in.EquipmentMaintenance)
		if err != nil {
			return nil, err
		}
		fields["equipment_maintenance"] = encoded
	}
	if in.Inputs != nil {
		encoded, err := encodeJSONColumn("inputs", *in.Inputs)
		if err != nil {
			return nil, err
		}
		fields["inputs"] = encoded
	}
	if in.WaterExchange != nil {
		encoded, err := encodeJSONColumn("water exchange", *in.WaterExchange)
		if err != nil {
			return nil, err
		}
		fields["water_exchange"] = encoded
	}
	if in.Responsible != nil && *in.Responsible != "" {
		fields["responsible"] = strings.TrimSpace(*in.Responsible)
	}
	if in.Notes != nil {
		fields["notes"] = strings.TrimSpace(*in.Notes)
	}
	return s.repo.Updates(ownerID, id, fields)
}

// Delete removes one of the owner's feeding records.
func (s *FeedingService) Delete(ownerID, id string) error {
	return s.repo.Delete(ownerID, id)
}

func encodeJSONColumn(name string, value interface{}) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return string(encoded), nil
}
