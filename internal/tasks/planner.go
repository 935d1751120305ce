package tasks

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"unidash/internal/models"
	"unidash/internal/stats"
	"unidash/internal/storage"
	"unidash/internal/ws"
)

var ctx = context.Background()

// RefreshStats recomputes the global dashboard snapshot, caches it and
// pushes it to dashboard subscribers. Fire and forget: user actions are
// never ordered against this refresh, the last write wins.
func RefreshStats() {
	snap, err := stats.Compute(storage.DB)
	if err != nil {
		log.Println("stats refresh failed:", err)
		return
	}
	stats.Store(ctx, storage.RedisClient, snap)

	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}
	ws.HubInstance.Broadcast(ws.BroadcastMessage{Channel: "dashboard", Message: payload})
}

// PurgeDeletedLectures permanently removes lectures soft-deleted more
// than 30 days ago.
func PurgeDeletedLectures() {
	threshold := time.Now().AddDate(0, 0, -30)
	res := storage.DB.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", threshold).
		Delete(&models.Lecture{})
	if res.Error != nil {
		log.Println("lecture purge failed:", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("purged %d deleted lectures", res.RowsAffected)
	}
}

// InitScheduler starts the background cron jobs.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Stats snapshot every 5 minutes.
	if _, err := c.AddFunc("0 */5 * * * *", RefreshStats); err != nil {
		log.Println("could not schedule RefreshStats:", err)
	}

	// Purge tombstoned lectures nightly at 03:00.
	if _, err := c.AddFunc("0 0 3 * * *", PurgeDeletedLectures); err != nil {
		log.Println("could not schedule PurgeDeletedLectures:", err)
	}

	c.Start()
	log.Println("cron scheduler started")
	return c
}
