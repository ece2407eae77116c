package store

import (
	"math"
	"sort"
	"time"

	"college-tracker/internal/models"
)

const maxUpcoming = 5

// Stats summarises the tracked colleges.
type Stats struct {
	Total          int                          `json:"total"`
	ByStatus       map[models.CollegeStatus]int `json:"byStatus"`
	CompletionRate float64                      `json:"completionRate"` // percent submitted
	TotalFees      float64                      `json:"totalFees"`
	Upcoming       []UpcomingDeadline           `json:"upcoming"`
}

type UpcomingDeadline struct {
	CollegeID     string `json:"collegeId"`
	Name          string `json:"name"`
	Deadline      string `json:"deadline"`
	DaysRemaining int    `json:"daysRemaining"`
}

func (s *Store) Stats() Stats {
	return ComputeStats(s.Colleges(), s.now())
}

// ComputeStats counts colleges per status and lists up to five future
// deadlines of colleges not yet submitted, soonest first. Deadlines that are
// not YYYY-MM-DD dates are skipped.
func ComputeStats(colleges []models.College, now time.Time) Stats {
	st := Stats{
		Total:    len(colleges),
		ByStatus: make(map[models.CollegeStatus]int, len(models.CollegeStatuses)),
		Upcoming: []UpcomingDeadline{},
	}
	for _, status := range models.CollegeStatuses {
		st.ByStatus[status] = 0
	}

	type dated struct {
		c  models.College
		at time.Time
	}
	var future []dated

	for _, c := range colleges {
		st.ByStatus[c.Status]++
		st.TotalFees += c.ApplicationFee

		if c.Status == models.StatusSubmitted || c.ApplicationDeadline == "" {
			continue
		}
		at, err := time.Parse(dateLayout, c.ApplicationDeadline)
		if err != nil || !at.After(now) {
			continue
		}
		future = append(future, dated{c: c, at: at})
	}

	if st.Total > 0 {
		st.CompletionRate = float64(st.ByStatus[models.StatusSubmitted]) / float64(st.Total) * 100
	}

	sort.SliceStable(future, func(i, j int) bool { return future[i].at.Before(future[j].at) })
	if len(future) > maxUpcoming {
		future = future[:maxUpcoming]
	}
	for _, d := range future {
		st.Upcoming = append(st.Upcoming, UpcomingDeadline{
			CollegeID:     d.c.ID,
			Name:          d.c.Name,
			Deadline:      d.c.ApplicationDeadline,
			DaysRemaining: int(math.Ceil(d.at.Sub(now).Hours() / 24)),
		})
	}
	return st
}
