// Package domain contains the in-app notification model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Notification is a message delivered to a user's inbox when a claim
// transition concerns them.
type Notification struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;index" json:"user_id"`
	ClaimID   snowflake.ID `gorm:"not null;index" json:"claim_id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Body      string       `gorm:"type:text" json:"body"`
	ReadAt    *time.Time   `gorm:"" json:"read_at"`
	CreatedAt time.Time    `gorm:"not null;index" json:"created_at"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }
