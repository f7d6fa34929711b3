package services

import (
	"fmt"
	"math"
	"strings"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"
)

// ShrimpInput is the payload to record a shrimp batch evaluation.
type ShrimpInput struct {
	TankID             string   `json:"tankId"`
	ShrimpType         string   `json:"shrimpType"`
	StartDate          string   `json:"startDate"`
	DaysOfLife         int      `json:"daysOfLife"`
	EvaluationDate     string   `json:"evaluationDate"`
	Biometria          *float64 `json:"biometria"`
	Sobrevivencia      *float64 `json:"sobrevivencia"`
	FCR                *float64 `json:"fcr"`
	DensidadeEstocagem *float64 `json:"densidadeEstocagem"`
	Sanidade           string   `json:"sanidade"`
	Notes              string   `json:"notes"`
}

// ShrimpUpdate carries a partial update; nil fields stay unchanged.
type ShrimpUpdate struct {
	ShrimpType         *string  `json:"shrimpType"`
	StartDate          *string  `json:"startDate"`
	DaysOfLife         *int     `json:"daysOfLife"`
	EvaluationDate     *string  `json:"evaluationDate"`
	Biometria          *float64 `json:"biometria"`
	Sobrevivencia      *float64 `json:"sobrevivencia"`
	FCR                *float64 `json:"fcr"`
	DensidadeEstocagem *float64 `json:"densidadeEstocagem"`
	Sanidade           *string  `json:"sanidade"`
	Notes              *string  `json:"notes"`
	Status             *string  `json:"status"`
}

// ShrimpListFilter narrows the owner's shrimp record listing.
type ShrimpListFilter struct {
	Page   int
	Limit  int
	TankID string
}

// ShrimpDashboard is the biological summary, formatted for display. Fields
// without any measurement average to their zero string.
type ShrimpDashboard struct {
	AverageWeight   string `json:"averageWeight"`
	Survival        string `json:"survival"`
	FCR             string `json:"fcr"`
	StockingDensity string `json:"stockingDensity"`
	HealthStatus    string `json:"healthStatus"`
}

// ShrimpService handles business logic for shrimp batch records.
type ShrimpService struct {
	repo     repositories.OwnedRepository[models.Shrimp]
	tankRepo repositories.OwnedRepository[models.Tank]
}

// NewShrimpService creates a new ShrimpService.
func NewShrimpService(repo repositories.OwnedRepository[models.Shrimp], tankRepo repositories.OwnedRepository[models.Tank]) *ShrimpService {
	return &ShrimpService{
		repo:     repo,
		tankRepo: tankRepo,
	}
}

// List returns one page of the owner's records, newest start date first.
func (s *ShrimpService) List(ownerID string, filter ShrimpListFilter) ([]models.Shrimp, int64, error) {
	opts := repositories.ListOptions{
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortColumn: "start_date",
		SortDesc:   true,
	}
	if filter.TankID != "" {
		opts.Filters = map[string]interface{}{"tank_id": filter.TankID}
	}
	return s.repo.List(ownerID, opts)
}

// ListByTank returns every record of one caller-owned tank. The tank is
// resolved with the owner filter first, so a foreign tank is a NotFound.
func (s *ShrimpService) ListByTank(ownerID, tankID string) ([]models.Shrimp, error) {
	if _, err := s.tankRepo.GetByID(ownerID, tankID); err != nil {
		return nil, err
	}
	return s.repo.All(ownerID, repositories.ListOptions{
		SortColumn: "start_date",
		SortDesc:   true,
		Filters:    map[string]interface{}{"tank_id": tankID},
	})
}

// Create validates and persists a new shrimp record owned by ownerID.
func (s *ShrimpService) Create(ownerID string, in ShrimpInput) (*models.Shrimp, error) {
	if in.TankID == "" || in.ShrimpType == "" || in.StartDate == "" || in.DaysOfLife == 0 || in.EvaluationDate == "" {
		return nil, apperrors.Validation("Todos os campos obrigatórios devem ser preenchidos")
	}

	if _, err := s.tankRepo.GetByID(ownerID, in.TankID); err != nil {
		return nil, err
	}

	if in.DaysOfLife < 1 {
		return nil, apperrors.Validation("Dias de vida deve ser maior que 0")
	}

	startDate, err := parseDate(in.StartDate)
	if err != nil {
		return nil, apperrors.Validation("Data de início inválida")
	}
	evaluationDate, err := parseDate(in.EvaluationDate)
	if err != nil {
		return nil, apperrors.Validation("Data de avaliação inválida")
	}

	shrimp := &models.Shrimp{
		TankID:             in.TankID,
		ShrimpType:         strings.TrimSpace(in.ShrimpType),
		StartDate:          startDate,
		DaysOfLife:         in.DaysOfLife,
		EvaluationDate:     evaluationDate,
		Biometria:          in.Biometria,
		Sobrevivencia:      in.Sobrevivencia,
		FCR:                in.FCR,
		DensidadeEstocagem: in.DensidadeEstocagem,
		Sanidade:           strings.TrimSpace(in.Sanidade),
		Notes:              strings.TrimSpace(in.Notes),
		Status:             "Ativo",
		CreatedBy:          ownerID,
	}
	if err := s.repo.Create(shrimp); err != nil {
		return nil, err
	}
	return shrimp, nil
}

// Update applies a partial update to one of the owner's records.
func (s *ShrimpService) Update(ownerID, id string, in ShrimpUpdate) (*models.Shrimp, error) {
	fields := map[string]interface{}{}
	if in.ShrimpType != nil && *in.ShrimpType != "" {
		fields["shrimp_type"] = strings.TrimSpace(*in.ShrimpType)
	}
	if in.StartDate != nil {
		d, err := parseDate(*in.StartDate)
		if err != nil {
			return nil, apperrors.Validation("Data de início inválida")
		}
		fields["start_date"] = d
	}
	if in.DaysOfLife != nil {
		if *in.DaysOfLife < 1 {
			return nil, apperrors.Validation("Dias de vida deve ser maior que 0")
		}
		fields["days_of_life"] = *in.DaysOfLife
	}
	if in.EvaluationDate != nil {
		d, err := parseDate(*in.EvaluationDate)
		if err != nil {
			return nil, apperrors.Validation("Data de avaliação inválida")
		}
		fields["evaluation_date"] = d
	}
	if in.Biometria != nil {
		fields["biometria"] = *in.Biometria
	}
	if in.Sobrevivencia != nil {
		fields["sobrevivencia"] = *in.Sobrevivencia
	}
	if in.FCR != nil {
		fields["fcr"] = *in.FCR
	}
	if in.DensidadeEstocagem != nil {
		fields["densidade_estocagem"] = *in.DensidadeEstocagem
	}
	if in.Sanidade != nil {
		fields["sanidade"] = strings.TrimSpace(*in.Sanidade)
	}
	if in.Notes != nil {
		fields["notes"] = strings.TrimSpace(*in.Notes)
	}
	if in.Status != nil {
		if !contains(models.ShrimpStatuses, *in.Status) {
			return nil, apperrors.Validation("Status inválido")
		}
		fields["status"] = *in.Status
	}
	return s.repo.Updates(ownerID, id, fields)
}

// Delete removes one of the owner's records.
func (s *ShrimpService) Delete(ownerID, id string) error {
	return s.repo.Delete(ownerID, id)
}

// Dashboard averages the owner's biological metrics. Optional metrics only
// count records that carry them; the health status comes from the most
// recent record that has one.
func (s *ShrimpService) Dashboard(ownerID string) (*ShrimpDashboard, error) {
	records, err := s.repo.All(ownerID, repositories.ListOptions{
		SortColumn: "evaluation_date",
		SortDesc:   true,
	})
	if err != nil {
		return nil, err
	}

	dashboard := &ShrimpDashboard{
		AverageWeight:   "0.0",
		Survival:        "0.0",
		FCR:             "0.0",
		StockingDensity: "0",
		HealthStatus:    "Nenhum dado",
	}
	if len(records) == 0 {
		return dashboard, nil
	}

	if avg, ok := average(records, func(r models.Shrimp) *float64 { return r.Biometria }); ok {
		dashboard.AverageWeight = fmt.Sprintf("%.1f", avg)
	}
	if avg, ok := average(records, func(r models.Shrimp) *float64 { return r.Sobrevivencia }); ok {
		dashboard.Survival = fmt.Sprintf("%.1f", avg)
	}
	if avg, ok := average(records, func(r models.Shrimp) *float64 { return r.FCR }); ok {
		dashboard.FCR = fmt.Sprintf("%.2f", avg)
	}
	if avg, ok := average(records, func(r models.Shrimp) *float64 { return r.DensidadeEstocagem }); ok {
		dashboard.StockingDensity = fmt.Sprintf("%d", int64(math.Round(avg)))
	}
	for _, r := range records {
		if r.Sanidade != "" {
			dashboard.HealthStatus = r.Sanidade
			break
		}
	}
	return dashboard, nil
}

func average(records []models.Shrimp, field func(models.Shrimp) *float64) (float64, bool) {
	var sum float64
	var n int
	for _, r := range records {
		if v := field(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
