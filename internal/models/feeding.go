package models

import "time"

// FeedUnits are the accepted units for feed quantity.
var FeedUnits = []string{"kg", "g", "lbs"}

// EquipmentMaintenance records which equipment was serviced during a
// feeding/maintenance visit.
type EquipmentMaintenance struct {
	Pumps          bool   `json:"pumps"`
	Aerators       bool   `json:"aerators"`
	Filters        bool   `json:"filters"`
	OtherEquipment string `json:"otherEquipment"`
}

// FeedingInput is a measured quantity of a water treatment input.
type FeedingInput struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// NamedInput is a free-form input beyond the standard three.
type NamedInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// FeedingInputs groups the water treatment inputs applied at feeding time.
type FeedingInputs struct {
	Lime        FeedingInput `json:"lime"`
	Molasses    FeedingInput `json:"molasses"`
	Probiotics  FeedingInput `json:"probiotics"`
	OtherInputs []NamedInput `json:"otherInputs"`
}

// WaterExchange records a partial water renewal performed with the feeding.
type WaterExchange struct {
	Performed  bool    `json:"performed"`
	Volume     float64 `json:"volume"`
	VolumeUnit string  `json:"volumeUnit"`
	Reason     string  `json:"reason"`
}

// Feeding represents a feeding and tank-maintenance event.
type Feeding struct {
	ID                   string               `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TankID               string               `json:"tankId" gorm:"type:varchar(36);index:idx_feeding_tank_date,priority:1" validate:"required"`
	FeedingDate          time.Time            `json:"feedingDate" gorm:"index:idx_feeding_owner_date,priority:2,sort:desc;index:idx_feeding_tank_date,priority:2,sort:desc" validate:"required"`
	FeedType             string               `json:"feedType" gorm:"type:varchar(100)" validate:"required"`
	FeedQuantity         float64              `json:"feedQuantity" validate:"required,gt=0"`
	FeedUnit             string               `json:"feedUnit" gorm:"type:varchar(10);default:kg" validate:"omitempty,oneof=kg g lbs"`
	AerationTime         float64              `json:"aerationTime" validate:"gte=0,lte=24"`
	EquipmentMaintenance EquipmentMaintenance `json:"equipmentMaintenance" gorm:"serializer:json"`
	Inputs               FeedingInputs        `json:"inputs" gorm:"serializer:json"`
	WaterExchange        WaterExchange        `json:"waterExchange" gorm:"serializer:json"`
	Responsible          string               `json:"responsible" gorm:"type:varchar(100)" validate:"required"`
	Notes                string               `json:"notes" gorm:"type:text"`
	CreatedBy            string               `json:"createdBy" gorm:"type:varchar(36);index:idx_feeding_owner_date,priority:1" validate:"required"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}
