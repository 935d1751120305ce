package lecture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"unidash/internal/models"
)

// memStore is a minimal in-memory Store for engine tests.
type memStore struct {
	lectures map[uint]models.Lecture
	nextID   uint
	failNext error
}

func newMemStore() *memStore {
	return &memStore{lectures: map[uint]models.Lecture{}, nextID: 1}
}

func (m *memStore) Get(_ context.Context, id uint) (models.Lecture, error) {
	l, ok := m.lectures[id]
	if !ok {
		return models.Lecture{}, ErrNotFound
	}
	return l, nil
}

func (m *memStore) Create(_ context.Context, l *models.Lecture) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	l.ID = m.nextID
	m.nextID++
	m.lectures[l.ID] = *l
	return nil
}

func (m *memStore) Update(_ context.Context, l *models.Lecture) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.lectures[l.ID] = *l
	return nil
}

func (m *memStore) Delete(_ context.Context, id uint) error {
	delete(m.lectures, id)
	return nil
}

func newTestService(store *memStore, now time.Time) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func validInput() CreateInput {
	return CreateInput{
		CourseID:   1,
		LecturerID: 7,
		Title:      "Graphs II",
		Date:       date(2025, 3, 10),
		StartTime:  "09:00",
		EndTime:    "11:00",
	}
}

func TestCreateSchedulesLecture(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	l, err := svc.Create(context.Background(), validInput())
	assert.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, l.Status)
	assert.Equal(t, 120, l.DurationMinutes)
	assert.NotEmpty(t, l.JoinCode)
	assert.Len(t, store.lectures, 1)
}

func TestCreateRejectsInvalidWindowBeforePersisting(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	in := validInput()
	in.StartTime = "11:00"
	in.EndTime = "09:00"

	_, err := svc.Create(context.Background(), in)
	assert.True(t, IsValidation(err))
	assert.Empty(t, store.lectures, "nothing must be written on validation failure")
}

func TestCreateRejectsMissingFields(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	for _, mutate := range []func(*CreateInput){
		func(in *CreateInput) { in.CourseID = 0 },
		func(in *CreateInput) { in.Title = "" },
		func(in *CreateInput) { in.Date = time.Time{} },
		func(in *CreateInput) { in.StartTime = "" },
		func(in *CreateInput) { in.EndTime = "" },
		func(in *CreateInput) { in.StartTime = "later" },
	} {
		in := validInput()
		mutate(&in)
		_, err := svc.Create(context.Background(), in)
		assert.True(t, IsValidation(err))
	}
}

func TestStartOnlyFromScheduled(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	l, _ := svc.Create(context.Background(), validInput())

	got, err := svc.Start(context.Background(), l.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusOngoing, got.Status)

	// A second start is an invalid transition.
	_, err = svc.Start(context.Background(), l.ID)
	assert.True(t, IsInvalidTransition(err))
}

func TestEndRequiresOngoing(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.Local) // not lecture day
	store := newMemStore()
	svc := newTestService(store, now)

	l, _ := svc.Create(context.Background(), validInput())

	_, err := svc.End(context.Background(), l.ID)
	assert.True(t, IsInvalidTransition(err))

	_, err = svc.Start(context.Background(), l.ID)
	assert.NoError(t, err)

	got, err := svc.End(context.Background(), l.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	// Ending twice fails: the lecture is no longer ongoing.
	_, err = svc.End(context.Background(), l.ID)
	assert.True(t, IsInvalidTransition(err))
}

func TestEndAcceptsDerivedOngoing(t *testing.T) {
	// Scheduled, never started, but the clock is inside the window:
	// the lecturer may end it directly.
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)
	store := newMemStore()
	svc := newTestService(store, now)

	l, _ := svc.Create(context.Background(), validInput())

	got, err := svc.End(context.Background(), l.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestEditRevalidatesWindowAndKeepsStatus(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	l, _ := svc.Create(context.Background(), validInput())
	_, _ = svc.Start(context.Background(), l.ID)

	bad := "08:00"
	_, err := svc.Edit(context.Background(), l.ID, EditInput{EndTime: &bad})
	assert.True(t, IsValidation(err))

	title := "Graphs II (rescheduled)"
	end := "12:30"
	got, err := svc.Edit(context.Background(), l.ID, EditInput{Title: &title, EndTime: &end})
	assert.NoError(t, err)
	assert.Equal(t, "Graphs II (rescheduled)", got.Title)
	assert.Equal(t, "12:30", got.EndTime)
	assert.Equal(t, 210, got.DurationMinutes)
	assert.Equal(t, models.StatusOngoing, got.Status, "edit must not touch status")
}

func TestFailedWriteLeavesStoreUntouched(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	l, _ := svc.Create(context.Background(), validInput())

	store.failNext = errors.New("connection reset")
	_, err := svc.Start(context.Background(), l.ID)
	assert.Error(t, err)

	kept, _ := store.Get(context.Background(), l.ID)
	assert.Equal(t, models.StatusScheduled, kept.Status)
}

func TestDeleteIsTerminal(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, time.Now())

	l, _ := svc.Create(context.Background(), validInput())

	assert.NoError(t, svc.Delete(context.Background(), l.ID))
	_, err := svc.Get(context.Background(), l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), l.ID), ErrNotFound)
}
