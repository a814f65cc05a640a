package models

import "time"

// UserPlantAccess represents an access grant of one user to one plant.
// Lives in the central database and is the source of truth for plant
// authorization; this service only ever reads it.
type UserPlantAccess struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	UserID    uint      `gorm:"column:user_id;index:idx_user_plant" json:"user_id"`   // User the grant applies to
	PlantID   string    `gorm:"column:plant_id;index:idx_user_plant" json:"plant_id"` // Plant key, e.g. CAIRO
	Role      string    `gorm:"column:role" json:"role"`                              // viewer/operator/admin
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the static table name for GORM.
// Required to override GORM's default pluralization behavior.
func (UserPlantAccess) TableName() string {
	return "user_plant_access"
}
