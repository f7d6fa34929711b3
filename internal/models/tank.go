package models

import "time"

// Valid values for Tank.FeedingType and Tank.Status.
var (
	TankFeedingTypes = []string{"Natural", "Artificial", "Mista"}
	TankStatuses     = []string{"Ativo", "Inativo", "Manutenção"}
)

// Tank represents a cultivation tank registered by an operator.
type Tank struct {
	ID                   string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                 string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Capacity             float64   `json:"capacity" validate:"required,gte=1"`
	Size                 float64   `json:"size" validate:"required,gte=0.1"`
	InstallationDate     time.Time `json:"installationDate" gorm:"index:idx_tanks_installation,sort:desc" validate:"required"`
	ExpiryDate           time.Time `json:"expiryDate" validate:"required"`
	FeedingType          string    `json:"feedingType" gorm:"type:varchar(20)" validate:"required,oneof=Natural Artificial Mista"`
	TechnicalResponsible string    `json:"technicalResponsible" gorm:"type:varchar(100)" validate:"required"`
	Status               string    `json:"status" gorm:"type:varchar(20);default:Ativo;index:idx_tanks_owner_status,priority:2"`
	Notes                string    `json:"notes" gorm:"type:text"`
	CreatedBy            string    `json:"createdBy" gorm:"type:varchar(36);index:idx_tanks_owner_status,priority:1" validate:"required"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
