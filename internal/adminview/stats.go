package adminview

import (
	"time"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// Stats are the time-bucketed submission counters shown on the admin
// dashboard, always computed over the full unfiltered record set.
type Stats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
}

// ComputeStats counts records against calendar-local bucket boundaries:
// today's midnight, midnight minus 7 days, and the first of the current
// month at midnight. All boundaries are inclusive.
func ComputeStats(subs []*model.ContactSubmission, now time.Time) Stats {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := midnight.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	s := Stats{Total: len(subs)}
	for _, sub := range subs {
		t := sub.SubmittedAt
		if !t.Before(midnight) {
			s.Today++
		}
		if !t.Before(weekStart) {
			s.ThisWeek++
		}
		if !t.Before(monthStart) {
			s.ThisMonth++
		}
	}
	return s
}
