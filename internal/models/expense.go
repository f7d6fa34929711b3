package models

import "time"

// ExpenseCategories are the accepted expense categories.
var ExpenseCategories = []string{
	"Alimentação",
	"Manutenção",
	"Energia",
	"Água",
	"Produtos Químicos",
	"Equipamentos",
	"Mão de Obra",
	"Outros",
}

// Expense represents a cost entry attributed to a tank.
type Expense struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TankID      string    `json:"tankId" gorm:"type:varchar(36);index:idx_expenses_tank_date,priority:1" validate:"required"`
	ExpenseDate time.Time `json:"expenseDate" gorm:"index:idx_expenses_owner_date,priority:2,sort:desc;index:idx_expenses_tank_date,priority:2,sort:desc" validate:"required"`
	Category    string    `json:"category" gorm:"type:varchar(50);index" validate:"required"`
	Description string    `json:"description" gorm:"type:varchar(255)" validate:"required"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	Quantity    float64   `json:"quantity" gorm:"default:1" validate:"gte=0"`
	Unit        string    `json:"unit" gorm:"type:varchar(30);default:unidade"`
	UnitPrice   float64   `json:"unitPrice" validate:"gte=0"`
	Supplier    string    `json:"supplier" gorm:"type:varchar(100)"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedBy   string    `json:"createdBy" gorm:"type:varchar(36);index:idx_expenses_owner_date,priority:1" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
