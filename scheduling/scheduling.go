// Package scheduling is the single source of truth for the assignment
// rules, the display projection and the per-employee statistics of a month
// schedule. It is pure: no storage, no HTTP.
package scheduling

import (
	"fmt"
	"time"

	"github.com/branegg/dyspo/models"
)

// HoursPerDay is the fixed business rule: every assigned day counts as a
// 10-hour shift.
const HoursPerDay = 10

// RuleError is a semantic rule violation. The whole submission is rejected;
// nothing is written.
type RuleError struct {
	Day    int
	Reason string
}

func (e *RuleError) Error() string { return e.Reason }

// Validate cleans and checks a month's worth of proposed assignments.
//
// Entries whose day falls outside 1..31 are dropped silently (defensive
// data-cleaning, same as the original POST behavior). Rule violations abort
// on the first one found and return a *RuleError.
func Validate(year, month int, in []models.DayAssignment) ([]models.DayAssignment, error) {
	out := make([]models.DayAssignment, 0, len(in))
	for _, a := range in {
		if a.Day < 1 || a.Day > 31 {
			continue
		}
		if a.Bagiety != nil && a.Widok != nil && *a.Bagiety == *a.Widok {
			return nil, &RuleError{
				Day:    a.Day,
				Reason: fmt.Sprintf("same employee cannot work both locations on day %d", a.Day),
			}
		}
		if a.Bagiety != nil && weekday(year, month, a.Day) == time.Tuesday {
			return nil, &RuleError{
				Day:    a.Day,
				Reason: fmt.Sprintf("Bagiety cannot be staffed on Tuesday (day %d)", a.Day),
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// weekday is the only weekday computation in the codebase. The original
// client code had three disagreeing conventions; do not add another.
func weekday(year, month, day int) time.Weekday {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
}

// UserRef is the display identity resolved from the users table.
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SlotView is one staffed location slot, with identity inlined.
type SlotView struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type DayView struct {
	Day     int       `json:"day"`
	Bagiety *SlotView `json:"bagiety"`
	Widok   *SlotView `json:"widok"`
}

type ScheduleView struct {
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Assignments []DayView `json:"assignments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReferencedUserIDs collects every distinct user id a schedule points at,
// so callers can resolve them in one batch query.
func ReferencedUserIDs(s *models.Schedule) []uint {
	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(s.Assignments))
	add := func(p *uint) {
		if p == nil {
			return
		}
		if _, ok := seen[*p]; ok {
			return
		}
		seen[*p] = struct{}{}
		ids = append(ids, *p)
	}
	for _, a := range s.Assignments {
		add(a.Bagiety)
		add(a.Widok)
	}
	return ids
}

// Project joins raw assignments with resolved identities. Ids missing from
// the map (employee deleted after being scheduled) project to a nil slot;
// the projection is total and never errors.
func Project(s *models.Schedule, users map[uint]UserRef) *ScheduleView {
	view := &ScheduleView{
		Year:        s.Year,
		Month:       s.Month,
		Assignments: make([]DayView, 0, len(s.Assignments)),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	for _, a := range s.Assignments {
		view.Assignments = append(view.Assignments, DayView{
			Day:     a.Day,
			Bagiety: slot(a.Bagiety, users),
			Widok:   slot(a.Widok, users),
		})
	}
	return view
}

func slot(id *uint, users map[uint]UserRef) *SlotView {
	if id == nil {
		return nil
	}
	ref, ok := users[*id]
	if !ok {
		return nil
	}
	return &SlotView{UserID: *id, Name: ref.Name, Email: ref.Email}
}

type StatsView struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
}

// Stats counts the days on which the employee occupies either slot.
func Stats(userID uint, s *models.Schedule) StatsView {
	var days int
	for _, a := range s.Assignments {
		if (a.Bagiety != nil && *a.Bagiety == userID) || (a.Widok != nil && *a.Widok == userID) {
			days++
		}
	}
	return StatsView{Days: days, Hours: days * HoursPerDay}
}
