package models

import "time"

const (
	LocationBagiety = "bagiety"
	LocationWidok   = "widok"
)

// HourLog: hours an employee actually worked, one entry per
// (user, year, month, day, location). Owned and edited only by the employee.
type HourLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_hour_log_slot,priority:1"`
	Year      int       `json:"year" gorm:"not null;uniqueIndex:idx_hour_log_slot,priority:2"`
	Month     int       `json:"month" gorm:"not null;uniqueIndex:idx_hour_log_slot,priority:3"`
	Day       int       `json:"day" gorm:"not null;uniqueIndex:idx_hour_log_slot,priority:4"`
	Location  string    `json:"location" gorm:"size:20;not null;uniqueIndex:idx_hour_log_slot,priority:5"`
	Hours     float64   `json:"hours" gorm:"not null"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HourLogWithUser is the admin listing shape.
type HourLogWithUser struct {
	HourLog
	User struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}
