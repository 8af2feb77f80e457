package models

import "time"

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ValidStatus reports whether s is one of the task status enum values.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"size:2048" json:"description"`
	Status      string `gorm:"size:32;not null" json:"status"`
	// OwnerID is fixed at creation and never updated afterwards.
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
