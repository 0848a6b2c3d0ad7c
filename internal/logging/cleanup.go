package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup purges system_logs older than retentionDays once at startup and
// then daily, until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, done chan struct{}) {
	if retentionDays <= 0 {
		return
	}

	run := func() {
		deleted, err := PurgeOlderThan(db, time.Now().UTC().AddDate(0, 0, -retentionDays))
		if err != nil {
			slog.Warn("log cleanup failed", "error", err)
		} else if deleted > 0 {
			slog.Info("log cleanup completed", "deleted", deleted)
		}
	}

	go func() {
		run()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				run()
			case <-done:
				return
			}
		}
	}()
}

func PurgeOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
