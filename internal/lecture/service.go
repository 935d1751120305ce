package lecture

import (
	"context"
	"time"

	"github.com/google/uuid"

	"unidash/internal/models"
)

// Store is the persistence boundary of the lifecycle engine. The gorm
// implementation backs production; tests plug in an in-memory fake.
type Store interface {
	Get(ctx context.Context, id uint) (models.Lecture, error)
	Create(ctx context.Context, l *models.Lecture) error
	Update(ctx context.Context, l *models.Lecture) error
	Delete(ctx context.Context, id uint) error
}

// Service owns lecture lifecycle transitions. All mutations go through the
// store; on a failed write no state is patched locally, callers re-fetch.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateInput carries the fields required to schedule a lecture.
type CreateInput struct {
	CourseID    uint
	LecturerID  uint
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	MeetingLink string
}

// Create validates input and persists a new scheduled lecture.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Lecture, error) {
	if in.CourseID == 0 {
		return models.Lecture{}, &ValidationError{Field: "course_id", Reason: "required"}
	}
	if in.Title == "" {
		return models.Lecture{}, &ValidationError{Field: "title", Reason: "required"}
	}
	if in.Date.IsZero() {
		return models.Lecture{}, &ValidationError{Field: "date", Reason: "required"}
	}
	start, end, err := validateWindow(in.StartTime, in.EndTime)
	if err != nil {
		return models.Lecture{}, err
	}

	l := models.Lecture{
		CourseID:        in.CourseID,
		LecturerID:      in.LecturerID,
		Title:           in.Title,
		Description:     in.Description,
		Date:            in.Date,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: durationMinutes(start, end),
		Status:          models.StatusScheduled,
		MeetingLink:     in.MeetingLink,
		JoinCode:        uuid.NewString(),
	}
	if err := s.store.Create(ctx, &l); err != nil {
		return models.Lecture{}, err
	}
	return l, nil
}

// Start moves a scheduled lecture to ongoing. Any other stored status is
// an invalid transition; the date is deliberately not checked, a lecturer
// may start a session off-schedule.
func (s *Service) Start(ctx context.Context, id uint) (models.Lecture, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Lecture{}, err
	}
	if l.Status != models.StatusScheduled {
		return models.Lecture{}, &InvalidTransitionError{Action: "start", Status: l.Status}
	}
	l.Status = models.StatusOngoing
	if err := s.store.Update(ctx, &l); err != nil {
		return models.Lecture{}, err
	}
	return l, nil
}

// End moves an ongoing lecture to completed. A scheduled lecture whose
// derived status is ongoing may also be ended directly. A second end call
// fails since the lecture is no longer ongoing.
func (s *Service) End(ctx context.Context, id uint) (models.Lecture, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Lecture{}, err
	}
	if l.Status != models.StatusOngoing && DeriveStatus(l, s.now()) != models.StatusOngoing {
		return models.Lecture{}, &InvalidTransitionError{Action: "end", Status: l.Status}
	}
	l.Status = models.StatusCompleted
	if err := s.store.Update(ctx, &l); err != nil {
		return models.Lecture{}, err
	}
	return l, nil
}

// EditInput lists the editable lecture fields. Nil pointers leave the
// stored value untouched; the stored status is never editable.
type EditInput struct {
	Title        *string
	Description  *string
	MeetingLink  *string
	RecordingURL *string
	Date         *time.Time
	StartTime    *string
	EndTime      *string
}

// Edit applies partial updates, re-validating the time window whenever
// either side of it changes.
func (s *Service) Edit(ctx context.Context, id uint, in EditInput) (models.Lecture, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Lecture{}, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return models.Lecture{}, &ValidationError{Field: "title", Reason: "required"}
		}
		l.Title = *in.Title
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.MeetingLink != nil {
		l.MeetingLink = *in.MeetingLink
	}
	if in.RecordingURL != nil {
		l.RecordingURL = *in.RecordingURL
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return models.Lecture{}, &ValidationError{Field: "date", Reason: "required"}
		}
		l.Date = *in.Date
	}
	if in.StartTime != nil || in.EndTime != nil {
		start, end := l.StartTime, l.EndTime
		if in.StartTime != nil {
			start = *in.StartTime
		}
		if in.EndTime != nil {
			end = *in.EndTime
		}
		start, end, err = validateWindow(start, end)
		if err != nil {
			return models.Lecture{}, err
		}
		l.StartTime = start
		l.EndTime = end
		l.DurationMinutes = durationMinutes(start, end)
	}

	if err := s.store.Update(ctx, &l); err != nil {
		return models.Lecture{}, err
	}
	return l, nil
}

// Delete removes a lecture. The caller is expected to have confirmed the
// action; deletion is terminal.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Get returns a single lecture.
func (s *Service) Get(ctx context.Context, id uint) (models.Lecture, error) {
	return s.store.Get(ctx, id)
}

// validateWindow checks and normalizes a start/end clock pair.
func validateWindow(start, end string) (string, string, error) {
	if start == "" {
		return "", "", &ValidationError{Field: "start_time", Reason: "required"}
	}
	if end == "" {
		return "", "", &ValidationError{Field: "end_time", Reason: "required"}
	}
	ns, err := parseClock(start)
	if err != nil {
		return "", "", &ValidationError{Field: "start_time", Reason: "expected HH:MM"}
	}
	ne, err := parseClock(end)
	if err != nil {
		return "", "", &ValidationError{Field: "end_time", Reason: "expected HH:MM"}
	}
	if ns >= ne {
		return "", "", &ValidationError{Field: "start_time", Reason: "must be before end time"}
	}
	return ns, ne, nil
}
