package service

import (
	"sort"
	"time"

	"naebak/models"
)

// evaluationTime returns the instant a complaint's age is measured against:
// the resolution time once resolved, otherwise the supplied instant. Callers
// pass an explicit asOf instead of sampling the clock so results are
// reproducible.
func evaluationTime(c *models.Complaint, asOf time.Time) time.Time {
	if c.ResolvedAt.Valid {
		return c.ResolvedAt.Time
	}
	return asOf
}

// AgeInDays returns the whole days elapsed between the complaint's creation
// and its evaluation time.
func AgeInDays(c *models.Complaint, asOf time.Time) int {
	age := evaluationTime(c, asOf).Sub(c.CreatedAt)
	if age < 0 {
		return 0
	}
	return int(age.Hours() / 24)
}

// IsOverdue reports whether the complaint has exceeded its type's SLA window
// at the given instant. Resolved and closed complaints are never overdue.
// A complaint exactly at the SLA boundary (age == slaDays) is not overdue.
func IsOverdue(c *models.Complaint, slaDays int, asOf time.Time) bool {
	if c.Status == models.StatusResolved || c.Status == models.StatusClosed {
		return false
	}
	return AgeInDays(c, asOf) > slaDays
}

// RankWorklist orders complaints for handler worklists: highest priority
// weight first, oldest first within the same priority. FIFO within priority,
// never the reverse.
func RankWorklist(complaints []models.Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		wi, wj := complaints[i].Priority.Weight(), complaints[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return complaints[i].CreatedAt.Before(complaints[j].CreatedAt)
	})
}
