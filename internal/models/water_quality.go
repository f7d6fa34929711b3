package models

import "time"

// WaterQuality represents a single water inspection reading for a tank.
type WaterQuality struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PH             float64   `json:"ph" validate:"gte=0,lte=14"`
	Temperature    float64   `json:"temperature" validate:"gte=0,lte=50"`
	Oxygenation    float64   `json:"oxygenation" validate:"gte=0"`
	Nitrite        float64   `json:"nitrite" validate:"gte=0"`
	Ammonia        float64   `json:"ammonia" validate:"gte=0"`
	InspectionDate time.Time `json:"inspectionDate" gorm:"index:idx_water_owner_date,priority:2,sort:desc" validate:"required"`
	FeedingDate    time.Time `json:"feedingDate" validate:"required"`
	Responsible    string    `json:"responsible" gorm:"type:varchar(100)" validate:"required"`
	Notes          string    `json:"notes" gorm:"type:text"`
	CreatedBy      string    `json:"createdBy" gorm:"type:varchar(36);index:idx_water_owner_date,priority:1" validate:"required"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
