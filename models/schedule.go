package models

import "time"

// DayAssignment names at most one employee per location for one day.
// References are by user id only; display data is joined at read time.
type DayAssignment struct {
	Day     int   `json:"day"`
	Bagiety *uint `json:"bagiety"`
	Widok   *uint `json:"widok"`
}

// Grafik: the admin-authored month schedule. One row per (year, month);
// saves replace the whole assignment list.
type Schedule struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Year        int             `json:"year" gorm:"not null;uniqueIndex:idx_schedule_month,priority:1"`
	Month       int             `json:"month" gorm:"not null;uniqueIndex:idx_schedule_month,priority:2"`
	Assignments []DayAssignment `json:"assignments" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
