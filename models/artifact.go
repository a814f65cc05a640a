package models

import "time"

// Artifact represents a generated artifact (chart, report, code block)
// attached to a chat session in a plant database.
type Artifact struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	SessionID    string    `gorm:"column:session_id;index" json:"session_id"`
	UserID       uint      `gorm:"column:user_id" json:"user_id"`
	MessageID    *uint     `gorm:"column:message_id" json:"message_id,omitempty"` // Chat message this artifact was produced for
	Title        string    `gorm:"column:title" json:"title"`
	Content      string    `gorm:"column:content;type:text" json:"content"`
	ArtifactType string    `gorm:"column:artifact_type;default:general" json:"artifact_type"`
	Metadata     *string   `gorm:"column:artifact_metadata;type:text" json:"artifact_metadata,omitempty"` // JSON-encoded free-form metadata
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the static table name for GORM.
func (Artifact) TableName() string {
	return "artifacts"
}
