package model

import "time"

// Session binds an opaque token to a user. A nil ExpiresAt means the
// token lives until explicit logout.
type Session struct {
	Token     string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"index"`
	CreatedAt time.Time
	ExpiresAt *time.Time `gorm:"index"`
}

// Expired reports whether the session is past its expiry, if any.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
