package models

import "time"

// ChatSession represents one AI-chat conversation in a plant database.
type ChatSession struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	SessionID string    `gorm:"column:session_id;unique" json:"session_id"` // Stable UUID handed to clients
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`        // Creator of the session
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the static table name for GORM.
func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatMessage represents a single exchange inside a chat session. Query,
// Response and ExecutionTime are filled in by the AI/query collaborators and
// may be absent for plain messages.
type ChatMessage struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	SessionID     string    `gorm:"column:session_id;index" json:"session_id"`
	UserID        uint      `gorm:"column:user_id" json:"user_id"`
	Message       string    `gorm:"column:message;type:text" json:"message"`
	Query         *string   `gorm:"column:query" json:"query,omitempty"`                   // SQL produced for this message, if any
	Response      *string   `gorm:"column:response" json:"response,omitempty"`             // Generated answer, if any
	ExecutionTime *float64  `gorm:"column:execution_time" json:"execution_time,omitempty"` // Seconds spent executing the query
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the static table name for GORM.
func (ChatMessage) TableName() string {
	return "chat_messages"
}
