package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"
)

// WaterQualityInput is the payload to record a water inspection. Numeric
// fields are pointers so an omitted field is distinguishable from zero.
type WaterQualityInput struct {
	PH             *float64 `json:"ph"`
	Temperature    *float64 `json:"temperature"`
	Oxygenation    *float64 `json:"oxygenation"`
	Nitrite        *float64 `json:"nitrite"`
	Ammonia        *float64 `json:"ammonia"`
	InspectionDate string   `json:"inspectionDate"`
	FeedingDate    string   `json:"feedingDate"`
	Responsible    string   `json:"responsible"`
	Notes          string   `json:"notes"`
}

// WaterQualityUpdate carries a partial update; nil fields stay unchanged.
type WaterQualityUpdate struct {
	PH             *float64 `json:"ph"`
	Temperature    *float64 `json:"temperature"`
	Oxygenation    *float64 `json:"oxygenation"`
	Nitrite        *float64 `json:"nitrite"`
	Ammonia        *float64 `json:"ammonia"`
	InspectionDate *string  `json:"inspectionDate"`
	FeedingDate    *string  `json:"feedingDate"`
	Responsible    *string  `json:"responsible"`
	Notes          *string  `json:"notes"`
}

// WaterQualityListFilter narrows the owner's reading list by date range.
type WaterQualityListFilter struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
}

// WaterAverages are the dashboard means, serialized as fixed-precision
// strings for direct display.
type WaterAverages struct {
	PH          string `json:"ph"`
	Temperature string `json:"temperature"`
	Oxygenation string `json:"oxygenation"`
	Nitrite     string `json:"nitrite"`
	Ammonia     string `json:"ammonia"`
}

// WaterDashboard is the 30-day water-quality summary.
type WaterDashboard struct {
	ChartData    []models.WaterQuality `json:"chartData"`
	LatestRecord *models.WaterQuality  `json:"latestRecord"`
	Averages     WaterAverages         `json:"averages"`
	TotalRecords int                   `json:"totalRecords"`
}

// WaterQualityService handles business logic for water inspections.
type WaterQualityService struct {
	repo repositories.OwnedRepository[models.WaterQuality]
}

// NewWaterQualityService creates a new WaterQualityService.
func NewWaterQualityService(repo repositories.OwnedRepository[models.WaterQuality]) *WaterQualityService {
	return &WaterQualityService{
		repo: repo,
	}
}

// List returns one page of the owner's readings, newest inspection first.
func (s *WaterQualityService) List(ownerID string, filter WaterQualityListFilter) ([]models.WaterQuality, int64, error) {
	opts := repositories.ListOptions{
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortColumn: "inspection_date",
		SortDesc:   true,
		DateColumn: "inspection_date",
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}
	return s.repo.List(ownerID, opts)
}

// Create validates and persists a new reading owned by ownerID.
func (s *WaterQualityService) Create(ownerID string, in WaterQualityInput) (*models.WaterQuality, error) {
	if in.PH == nil || in.Temperature == nil || in.Oxygenation == nil || in.Nitrite == nil ||
		in.Ammonia == nil || in.InspectionDate == "" || in.FeedingDate == "" || in.Responsible == "" {
		return nil, apperrors.Validation("Todos os campos obrigatórios devem ser preenchidos")
	}

	if *in.PH < 0 || *in.PH > 14 {
		return nil, apperrors.Validation("pH deve estar entre 0 e 14")
	}
	if *in.Temperature < 0 || *in.Temperature > 50 {
		return nil, apperrors.Validation("Temperatura deve estar entre 0°C e 50°C")
	}
	if *in.Oxygenation < 0 {
		return nil, apperrors.Validation("Oxigenação deve ser maior que 0")
	}
	if *in.Nitrite < 0 {
		return nil, apperrors.Validation("Nitrito deve ser maior que 0")
	}
	if *in.Ammonia < 0 {
		return nil, apperrors.Validation("Amônia deve ser maior que 0")
	}

	inspectionDate, err := parseDate(in.InspectionDate)
	if err != nil {
		return nil, apperrors.Validation("Data de inspeção inválida")
	}
	feedingDate, err := parseDate(in.FeedingDate)
	if err != nil {
		return nil, apperrors.Validation("Data de alimentação inválida")
	}

	reading := &models.WaterQuality{
		PH:             *in.PH,
		Temperature:    *in.Temperature,
		Oxygenation:    *in.Oxygenation,
		Nitrite:        *in.Nitrite,
		Ammonia:        *in.Ammonia,
		InspectionDate: inspectionDate,
		FeedingDate:    feedingDate,
		Responsible:    strings.TrimSpace(in.Responsible),
		Notes:          strings.TrimSpace(in.Notes),
		CreatedBy:      ownerID,
	}
	if err := s.repo.Create(reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// Update applies a partial update to one of the owner's readings.
func (s *WaterQualityService) Update(ownerID, id string, in WaterQualityUpdate) (*models.WaterQuality, error) {
	fields := map[string]interface{}{}
	if in.PH != nil {
		if *in.PH < 0 || *in.PH > 14 {
			return nil, apperrors.Validation("pH deve estar entre 0 e 14")
		}
		fields["ph"] = *in.PH
	}
	if in.Temperature != nil {
		if *in.Temperature < 0 || *in.Temperature > 50 {
			return nil, apperrors.Validation("Temperatura deve estar entre 0°C e 50°C")
		}
		fields["temperature"] = *in.Temperature
	}
	if in.Oxygenation != nil {
		fields["oxygenation"] = *in.Oxygenation
	}
	if in.Nitrite != nil {
		fields["nitrite"] = *in.Nitrite
	}
	if in.Ammonia != nil {
		fields["ammonia"] = *in.Ammonia
	}
	if in.InspectionDate != nil {
		d, err := parseDate(*in.InspectionDate)
		if err != nil {
			return nil, apperrors.Validation("Data de inspeção inválida")
		}
		fields["inspection_date"] = d
	}
	if in.FeedingDate != nil {
		d, err := parseDate(*in.FeedingDate)
		if err != nil {
			return nil, apperrors.Validation("Data de alimentação inválida")
		}
		fields["feeding_date"] = d
	}
	if in.Responsible != nil && *in.Responsible != "" {
		fields["responsible"] = strings.TrimSpace(*in.Responsible)
	}
	if in.Notes != nil {
		fields["notes"] = strings.TrimSpace(*in.Notes)
	}
	return s.repo.Updates(ownerID, id, fields)
}

// Delete removes one of the owner's readings.
func (s *WaterQualityService) Delete(ownerID, id string) error {
	return s.repo.Delete(ownerID, id)
}

// Dashboard summarizes the owner's readings from the last 30 days. An
// empty record set yields zero-valued averages, never an error.
func (s *WaterQualityService) Dashboard(ownerID string) (*WaterDashboard, error) {
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	readings, err := s.repo.All(ownerID, repositories.ListOptions{
		SortColumn: "inspection_date",
		DateColumn: "inspection_date",
		StartDate:  &thirtyDaysAgo,
	})
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.Latest(ownerID, "inspection_date")
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	dashboard := &WaterDashboard{
		ChartData:    readings,
		LatestRecord: latest,
		Averages: WaterAverages{
			PH:          "0.0",
			Temperature: "0.0",
			Oxygenation: "0.0",
			Nitrite:     "0.00",
			Ammonia:     "0.00",
		},
		TotalRecords: len(readings),
	}
	if len(readings) == 0 {
		return dashboard, nil
	}

	var ph, temperature, oxygenation, nitrite, ammonia float64
	for _, r := range readings {
		ph += r.PH
		temperature += r.Temperature
		oxygenation += r.Oxygenation
		nitrite += r.Nitrite
		ammonia += r.Ammonia
	}
	n := float64(len(readings))
	dashboard.Averages = WaterAverages{
		PH:          fmt.Sprintf("%.1f", ph/n),
		Temperature: fmt.Sprintf("%.1f", temperature/n),
		Oxygenation: fmt.Sprintf("%.1f", oxygenation/n),
		Nitrite:     fmt.Sprintf("%.2f", nitrite/n),
		Ammonia:     fmt.Sprintf("%.2f", ammonia/n),
	}
	return dashboard, nil
}
