package models

import "time"

// Dyspozycyjność: which days of a month an employee declared as available.
// One row per (user, year, month).
type Availability struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_availability_user_month,priority:1"`
	Year          int       `json:"year" gorm:"not null;uniqueIndex:idx_availability_user_month,priority:2"`
	Month         int       `json:"month" gorm:"not null;uniqueIndex:idx_availability_user_month,priority:3"`
	AvailableDays []int     `json:"available_days" gorm:"serializer:json;type:text"`
	IsLocked      *bool     `json:"is_locked"` // NULL on legacy rows created before the flag existed
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Locked reports whether the record refuses employee edits.
// Legacy rows without the flag (NULL) count as locked.
func (a *Availability) Locked() bool {
	return a.IsLocked == nil || *a.IsLocked
}

// AvailabilityWithUser is the admin listing shape: the raw record joined
// with the owner's display identity.
type AvailabilityWithUser struct {
	Availability
	User struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}
