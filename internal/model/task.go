package model

import "time"

// Priority is the three-level task priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the allowed levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single todo item. UserID is stamped at creation and
// never changes afterwards.
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"index"`
	CategoryID  *uint `gorm:"index"`
	Title       string
	Description string
	IsCompleted bool     `gorm:"default:false"`
	Priority    Priority `gorm:"default:medium"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DaysUntilDue returns the whole days between now and the due date,
// rounded down, so a deadline one hour in the past already counts as -1.
// Nil when no due date is set.
func (t *Task) DaysUntilDue(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	delta := t.DueDate.Sub(now)
	days := int(delta / (24 * time.Hour))
	if delta < 0 && delta%(24*time.Hour) != 0 {
		days--
	}
	return &days
}
