package model

import "time"

// Category groups tasks by area (work, health, study, etc.). Names are
// unique per owner, not globally.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_user_category_name,unique"`
	Name      string `gorm:"index:idx_user_category_name,unique"`
	Color     string `gorm:"default:'#007AFF'"`
	Icon      string `gorm:"default:'📁'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
