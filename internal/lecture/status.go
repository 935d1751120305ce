package lecture

import (
	"sort"
	"time"

	"unidash/internal/models"
)

const clockLayout = "15:04"

// parseClock parses a local "HH:MM" clock time and returns it normalized
// to zero-padded form.
func parseClock(s string) (string, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(clockLayout), nil
}

// durationMinutes computes end-start in minutes. Both inputs must already
// be normalized clock strings.
func durationMinutes(start, end string) int {
	s, _ := time.Parse(clockLayout, start)
	e, _ := time.Parse(clockLayout, end)
	return int(e.Sub(s).Minutes())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// beforeDate reports whether a falls on an earlier calendar day than b.
func beforeDate(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() < b.Year()
	}
	if a.Month() != b.Month() {
		return a.Month() < b.Month()
	}
	return a.Day() < b.Day()
}

// DeriveStatus projects the display status of a lecture at the given
// instant. A scheduled lecture whose date is today and whose time window
// contains now is shown as ongoing; everything else keeps its stored
// status. The projection is read-only: a completed transition is never
// inferred, only an explicit end action persists it.
func DeriveStatus(l models.Lecture, now time.Time) string {
	if l.Status == models.StatusScheduled && sameDate(l.Date, now) {
		clock := now.Format(clockLayout)
		if l.StartTime <= clock && clock <= l.EndTime {
			return models.StatusOngoing
		}
	}
	return l.Status
}

// Buckets groups lectures for the dashboard.
type Buckets struct {
	Live     []models.Lecture `json:"live"`
	Upcoming []models.Lecture `json:"upcoming"`
	Past     []models.Lecture `json:"past"`
}

// Bucketize partitions lectures into live, upcoming and past buckets.
// A lecture that was never started and whose date has passed lands in
// past with its stored status untouched. Buckets are disjoint and ordered
// ascending by (date, start time).
func Bucketize(lectures []models.Lecture, now time.Time) Buckets {
	var b Buckets
	for _, l := range lectures {
		switch derived := DeriveStatus(l, now); {
		case derived == models.StatusOngoing:
			b.Live = append(b.Live, l)
		case derived == models.StatusScheduled && !beforeDate(l.Date, now):
			b.Upcoming = append(b.Upcoming, l)
		default:
			b.Past = append(b.Past, l)
		}
	}
	sortLectures(b.Live)
	sortLectures(b.Upcoming)
	sortLectures(b.Past)
	return b
}

func sortLectures(ls []models.Lecture) {
	sort.SliceStable(ls, func(i, j int) bool {
		if !sameDate(ls[i].Date, ls[j].Date) {
			return beforeDate(ls[i].Date, ls[j].Date)
		}
		return ls[i].StartTime < ls[j].StartTime
	})
}
