package lecture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"unidash/internal/models"
)

func lectureOn(y int, m time.Month, d int, start, end, status string) models.Lecture {
	return models.Lecture{
		Date:      date(y, m, d),
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestDeriveStatusOngoingInsideWindow(t *testing.T) {
	l := lectureOn(2025, 3, 10, "09:00", "11:00", models.StatusScheduled)

	at := func(h, min int) time.Time {
		return time.Date(2025, 3, 10, h, min, 0, 0, time.Local)
	}

	assert.Equal(t, models.StatusScheduled, DeriveStatus(l, at(8, 59)))
	assert.Equal(t, models.StatusOngoing, DeriveStatus(l, at(9, 0)))
	assert.Equal(t, models.StatusOngoing, DeriveStatus(l, at(10, 0)))
	assert.Equal(t, models.StatusOngoing, DeriveStatus(l, at(11, 0)))
	assert.Equal(t, models.StatusScheduled, DeriveStatus(l, at(11, 1)))
}

func TestDeriveStatusOtherDay(t *testing.T) {
	l := lectureOn(2025, 3, 10, "09:00", "11:00", models.StatusScheduled)

	// Inside the clock window but on a different day.
	other := time.Date(2025, 3, 11, 10, 0, 0, 0, time.Local)
	assert.Equal(t, models.StatusScheduled, DeriveStatus(l, other))
}

func TestDeriveStatusNeverOverridesStored(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	done := lectureOn(2025, 3, 10, "09:00", "11:00", models.StatusCompleted)
	assert.Equal(t, models.StatusCompleted, DeriveStatus(done, now))

	started := lectureOn(2025, 3, 10, "09:00", "11:00", models.StatusOngoing)
	assert.Equal(t, models.StatusOngoing, DeriveStatus(started, now))
}

func TestBucketizeLiveUpcomingPast(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	live := lectureOn(2025, 3, 10, "09:00", "11:00", models.StatusScheduled)
	manuallyStarted := lectureOn(2025, 3, 12, "14:00", "16:00", models.StatusOngoing)
	later := lectureOn(2025, 3, 10, "15:00", "17:00", models.StatusScheduled)
	tomorrow := lectureOn(2025, 3, 11, "08:00", "09:00", models.StatusScheduled)
	finished := lectureOn(2025, 3, 9, "09:00", "10:00", models.StatusCompleted)
	missed := lectureOn(2025, 3, 8, "09:00", "10:00", models.StatusScheduled)

	in := []models.Lecture{finished, tomorrow, live, missed, later, manuallyStarted}
	b := Bucketize(in, now)

	assert.Len(t, b.Live, 2)
	assert.Len(t, b.Upcoming, 2)
	assert.Len(t, b.Past, 2)

	// Partitions cover the whole input.
	assert.Equal(t, len(in), len(b.Live)+len(b.Upcoming)+len(b.Past))

	// A never-started lecture whose date has passed is past but keeps
	// its stored status.
	assert.Equal(t, models.StatusScheduled, b.Past[0].Status)
}

func TestBucketizeOrdersByDateThenStart(t *testing.T) {
	now := time.Date(2025, 3, 1, 7, 0, 0, 0, time.Local)

	in := []models.Lecture{
		lectureOn(2025, 3, 2, "09:00", "10:00", models.StatusScheduled),
		lectureOn(2025, 3, 1, "13:00", "14:00", models.StatusScheduled),
		lectureOn(2025, 3, 1, "08:00", "09:00", models.StatusScheduled),
	}
	b := Bucketize(in, now)

	if assert.Len(t, b.Upcoming, 3) {
		assert.Equal(t, "08:00", b.Upcoming[0].StartTime)
		assert.Equal(t, "13:00", b.Upcoming[1].StartTime)
		assert.Equal(t, "09:00", b.Upcoming[2].StartTime)
	}
}

func TestScenarioScheduledLectureAcrossDays(t *testing.T) {
	l := lectureOn(2025, 3, 10, "09:00", "11:00", models.StatusScheduled)

	during := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)
	assert.Equal(t, models.StatusOngoing, DeriveStatus(l, during))
	b := Bucketize([]models.Lecture{l}, during)
	assert.Len(t, b.Live, 1)

	// Next midnight, never started: past bucket, stored status unchanged.
	nextDay := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)
	assert.Equal(t, models.StatusScheduled, DeriveStatus(l, nextDay))
	b = Bucketize([]models.Lecture{l}, nextDay)
	assert.Len(t, b.Past, 1)
	assert.Equal(t, models.StatusScheduled, b.Past[0].Status)
}
