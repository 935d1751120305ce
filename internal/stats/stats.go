// Package stats builds the dashboard count snapshot. The global snapshot
// is cached in Redis and refreshed in the background; lecturer-scoped
// counts are computed per request.
package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"unidash/internal/models"
)

const (
	cacheKey = "stats:global"
	cacheTTL = 10 * time.Minute
)

// Snapshot holds the dashboard counters.
type Snapshot struct {
	Students    int64     `json:"students"`
	Courses     int64     `json:"courses"`
	Lecturers   int64     `json:"lecturers"`
	Lectures    int64     `json:"lectures"`
	Assignments int64     `json:"assignments"`
	Exams       int64     `json:"exams"`
	PendingFees int64     `json:"pending_fees"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Compute runs the count queries for the whole institution.
func Compute(db *gorm.DB) (Snapshot, error) {
	snap := Snapshot{RefreshedAt: time.Now()}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&snap.Students, db.Model(&models.Student{})},
		{&snap.Courses, db.Model(&models.Course{})},
		{&snap.Lecturers, db.Model(&models.User{}).Where("role = ?", models.RoleLecturer)},
		{&snap.Lectures, db.Model(&models.Lecture{})},
		{&snap.Assignments, db.Model(&models.Assignment{})},
		{&snap.Exams, db.Model(&models.Exam{})},
		{&snap.PendingFees, db.Model(&models.FinancialRecord{}).Where("status = ?", "pending")},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// ComputeScoped runs the count queries restricted to the given department
// codes. An empty code set yields zero counts across the board.
func ComputeScoped(db *gorm.DB, codes []string) (Snapshot, error) {
	snap := Snapshot{RefreshedAt: time.Now()}
	if len(codes) == 0 {
		return snap, nil
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&snap.Students, db.Model(&models.Student{}).Where("department_code IN ?", codes)},
		{&snap.Courses, db.Model(&models.Course{}).Where("department_code IN ?", codes)},
		{&snap.Lectures, db.Model(&models.Lecture{}).
			Joins("JOIN courses ON courses.id = lectures.course_id").
			Where("courses.department_code IN ?", codes)},
		{&snap.Assignments, db.Model(&models.Assignment{}).
			Joins("JOIN courses ON courses.id = assignments.course_id").
			Where("courses.department_code IN ?", codes)},
		{&snap.Exams, db.Model(&models.Exam{}).
			Joins("JOIN courses ON courses.id = exams.course_id").
			Where("courses.department_code IN ?", codes)},
		{&snap.PendingFees, db.Model(&models.FinancialRecord{}).
			Where("status = ? AND department_code IN ?", "pending", codes)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// Cached loads the global snapshot from Redis.
func Cached(ctx context.Context, rdb *redis.Client) (Snapshot, bool) {
	payload, err := rdb.Get(ctx, cacheKey).Result()
	if err != nil || payload == "" {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

// Store writes the global snapshot to Redis.
func Store(ctx context.Context, rdb *redis.Client, snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}
	rdb.Set(ctx, cacheKey, string(payload), cacheTTL)
}
