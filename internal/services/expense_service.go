package services

import (
	"sort"
	"strings"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"
)

// ExpenseInput is the payload to register an expense.
type ExpenseInput struct {
	TankID      string   `json:"tankId"`
	ExpenseDate string   `json:"expenseDate"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	UnitPrice   *float64 `json:"unitPrice"`
	Supplier    string   `json:"supplier"`
	Notes       string   `json:"notes"`
}

// ExpenseUpdate carries a partial update; nil fields stay unchanged.
type ExpenseUpdate struct {
	ExpenseDate *string  `json:"expenseDate"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	UnitPrice   *float64 `json:"unitPrice"`
	Supplier    *string  `json:"supplier"`
	Notes       *string  `json:"notes"`
}

// ExpenseListFilter narrows the owner's expense listing.
type ExpenseListFilter struct {
	Page      int
	Limit     int
	TankID    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseMetricsFilter narrows the financial metrics computation.
type ExpenseMetricsFilter struct {
	TankID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseTotal is a sum with its record count.
type ExpenseTotal struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// CategoryTotal is the expense sum for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// MonthlyTotal is the expense sum for one calendar month.
type MonthlyTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// TankTotal is the expense sum for one tank, with the tank's name
// resolved through the caller's own tanks.
type TankTotal struct {
	TankID   string  `json:"tankId"`
	TankName string  `json:"tankName"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// ExpenseMetrics is the financial dashboard payload. All groupings are
// empty slices (never null) and the total is zero when nothing matches.
type ExpenseMetrics struct {
	TotalExpenses      ExpenseTotal    `json:"totalExpenses"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
	MonthlyExpenses    []MonthlyTotal  `json:"monthlyExpenses"`
	ExpensesByTank     []TankTotal     `json:"expensesByTank"`
}

// ExpenseService handles business logic for tank expenses.
type ExpenseService struct {
	repo     repositories.OwnedRepository[models.Expense]
	tankRepo repositories.OwnedRepository[models.Tank]
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(repo repositories.OwnedRepository[models.Expense], tankRepo repositories.OwnedRepository[models.Tank]) *ExpenseService {
	return &ExpenseService{
		repo:     repo,
		tankRepo: tankRepo,
	}
}

// List returns one page of the owner's expenses, newest first.
func (s *ExpenseService) List(ownerID string, filter ExpenseListFilter) ([]models.Expense, int64, error) {
	opts := repositories.ListOptions{
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortColumn: "expense_date",
		SortDesc:   true,
		DateColumn: "expense_date",
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Filters:    map[string]interface{}{},
	}
	if filter.TankID != "" {
		opts.Filters["tank_id"] = filter.TankID
	}
	if filter.Category != "" {
		opts.Filters["category"] = filter.Category
	}
	return s.repo.List(ownerID, opts)
}

// Create validates and persists a new expense owned by ownerID.
func (s *ExpenseService) Create(ownerID string, in ExpenseInput) (*models.Expense, error) {
	if in.TankID == "" || in.Category == "" || in.Description == "" || in.Amount == nil {
		return nil, apperrors.Validation("Todos os campos obrigatórios devem ser preenchidos")
	}

	if _, err := s.tankRepo.GetByID(ownerID, in.TankID); err != nil {
		return nil, err
	}

	if *in.Amount < 0 {
		return nil, apperrors.Validation("Valor não pode ser negativo")
	}
	if !contains(models.ExpenseCategories, in.Category) {
		return nil, apperrors.Validation("Categoria inválida")
	}

	expenseDate := time.Now()
	if in.ExpenseDate != "" {
		var err error
		expenseDate, err = parseDate(in.ExpenseDate)
		if err != nil {
			return nil, apperrors.Validation("Data da despesa inválida")
		}
	}

	quantity := 1.0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	unitPrice := 0.0
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "unidade"
	}

	expense := &models.Expense{
		TankID:      in.TankID,
		ExpenseDate: expenseDate,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Amount:      *in.Amount,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Supplier:    strings.TrimSpace(in.Supplier),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedBy:   ownerID,
	}
	if err := s.repo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Update applies a partial update to one of the owner's expenses.
func (s *ExpenseService) Update(ownerID, id string, in ExpenseUpdate) (*models.Expense, error) {
	fields := map[string]interface{}{}
	if in.ExpenseDate != nil {
		d, err := parseDate(*in.ExpenseDate)
		if err != nil {
			return nil, apperrors.Validation("Data da despesa inválida")
		}
		fields["expense_date"] = d
	}
	if in.Category != nil && *in.Category != "" {
		if !contains(models.ExpenseCategories, *in.Category) {
			return nil, apperrors.Validation("Categoria inválida")
		}
		fields["category"] = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil && *in.Description != "" {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, apperrors.Validation("Valor não pode ser negativo")
		}
		fields["amount"] = *in.Amount
	}
	if in.Quantity != nil {
		fields["quantity"] = *in.Quantity
	}
	if in.Unit != nil && *in.Unit != "" {
		fields["unit"] = strings.TrimSpace(*in.Unit)
	}
	if in.UnitPrice != nil {
		fields["unit_price"] = *in.UnitPrice
	}
	if in.Supplier != nil {
		fields["supplier"] = strings.TrimSpace(*in.Supplier)
	}
	if in.Notes != nil {
		fields["notes"] = strings.TrimSpace(*in.Notes)
	}
	return s.repo.Updates(ownerID, id, fields)
}

// Delete removes one of the owner's expenses.
func (s *ExpenseService) Delete(ownerID, id string) error {
	return s.repo.Delete(ownerID, id)
}

// Metrics computes the financial summary over the owner's expenses.
// Grouping happens here rather than in the store so the same code path
// serves both SQL drivers; the matched sets are dashboard-sized.
func (s *ExpenseService) Metrics(ownerID string, filter ExpenseMetricsFilter) (*ExpenseMetrics, error) {
	opts := repositories.ListOptions{
		DateColumn: "expense_date",
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}
	if filter.TankID != "" {
		opts.Filters = map[string]interface{}{"tank_id": filter.TankID}
	}
	expenses, err := s.repo.All(ownerID, opts)
	if err != nil {
		return nil, err
	}

	metrics := &ExpenseMetrics{
		ExpensesByCategory: []CategoryTotal{},
		MonthlyExpenses:    []MonthlyTotal{},
		ExpensesByTank:     []TankTotal{},
	}

	byCategory := map[string]*CategoryTotal{}
	byMonth := map[string]*MonthlyTotal{}
	byTank := map[string]*TankTotal{}
	for _, e := range expenses {
		metrics.TotalExpenses.Total += e.Amount
		metrics.TotalExpenses.Count++

		c, ok := byCategory[e.Category]
		if !ok {
			c = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = c
		}
		c.Total += e.Amount
		c.Count++

		monthKey := e.ExpenseDate.Format("2006-01")
		m, ok := byMonth[monthKey]
		if !ok {
			m = &MonthlyTotal{Year: e.ExpenseDate.Year(), Month: int(e.ExpenseDate.Month())}
			byMonth[monthKey] = m
		}
		m.Total += e.Amount
		m.Count++

		t, ok := byTank[e.TankID]
		if !ok {
			t = &TankTotal{TankID: e.TankID}
			byTank[e.TankID] = t
		}
		t.Total += e.Amount
		t.Count++
	}

	for _, c := range byCategory {
		metrics.ExpensesByCategory = append(metrics.ExpensesByCategory, *c)
	}
	sort.Slice(metrics.ExpensesByCategory, func(i, j int) bool {
		return metrics.ExpensesByCategory[i].Total > metrics.ExpensesByCategory[j].Total
	})

	for _, m := range byMonth {
		metrics.MonthlyExpenses = append(metrics.MonthlyExpenses, *m)
	}
	sort.Slice(metrics.MonthlyExpenses, func(i, j int) bool {
		a, b := metrics.MonthlyExpenses[i], metrics.MonthlyExpenses[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Month > b.Month
	})
	if len(metrics.MonthlyExpenses) > 12 {
		metrics.MonthlyExpenses = metrics.MonthlyExpenses[:12]
	}

	// Tank names come from the caller's own tanks only, so another user's
	// tank metadata never leaks into the grouping.
	if len(byTank) > 0 {
		tanks, err := s.tankRepo.All(ownerID, repositories.ListOptions{})
		if err != nil {
			return nil, err
		}
		names := make(map[string]string, len(tanks))
		for _, t := range tanks {
			names[t.ID] = t.Name
		}
		for _, t := range byTank {
			t.TankName = names[t.TankID]
			metrics.ExpensesByTank = append(metrics.ExpensesByTank, *t)
		}
		sort.Slice(metrics.ExpensesByTank, func(i, j int) bool {
			return metrics.ExpensesByTank[i].Total > metrics.ExpensesByTank[j].Total
		})
	}

	return metrics, nil
}
