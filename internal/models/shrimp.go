package models

import "time"

// ShrimpStatuses are the valid lifecycle states of a shrimp batch record.
var ShrimpStatuses = []string{"Ativo", "Finalizado", "Cancelado"}

// Shrimp represents a biological evaluation of a shrimp batch in a tank.
// Biometria, Sobrevivencia, FCR and DensidadeEstocagem are optional
// measurements; nil means not taken at this evaluation.
type Shrimp struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TankID             string     `json:"tankId" gorm:"type:varchar(36);index:idx_shrimp_owner_tank,priority:2" validate:"required"`
	ShrimpType         string     `json:"shrimpType" gorm:"type:varchar(100)" validate:"required"`
	StartDate          time.Time  `json:"startDate" gorm:"index:idx_shrimp_start,sort:desc" validate:"required"`
	DaysOfLife         int        `json:"daysOfLife" validate:"required,gte=1"`
	EvaluationDate     time.Time  `json:"evaluationDate" validate:"required"`
	Biometria          *float64   `json:"biometria" validate:"omitempty,gte=0"`
	Sobrevivencia      *float64   `json:"sobrevivencia" validate:"omitempty,gte=0,lte=100"`
	FCR                *float64   `json:"fcr" validate:"omitempty,gte=0"`
	DensidadeEstocagem *float64   `json:"densidadeEstocagem" validate:"omitempty,gte=0"`
	Sanidade           string     `json:"sanidade" gorm:"type:varchar(100)"`
	Notes              string     `json:"notes" gorm:"type:text"`
	Status             string     `json:"status" gorm:"type:varchar(20);default:Ativo"`
	CreatedBy          string     `json:"createdBy" gorm:"type:varchar(36);index:idx_shrimp_owner_tank,priority:1" validate:"required"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
