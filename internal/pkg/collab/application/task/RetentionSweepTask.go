package task

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	qport "go-collab/internal/infrastructure/queue/port"
	"go-collab/internal/pkg/collab/application/usecase"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// RetentionSweepTaskType is the queue task name for the notification
// retention sweep.
const RetentionSweepTaskType = "notify:retention_sweep"

const sweepInterval = 24 * time.Hour

// RetentionFromEnv reads NOTIFICATION_RETENTION_DAYS (default 90).
func RetentionFromEnv() time.Duration {
	days := 90
	if v := os.Getenv("NOTIFICATION_RETENTION_DAYS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			days = i
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// RegisterRetentionSweepTask binds the sweep handler to the provided server.
// Each run deletes expired notifications and reschedules itself, so the
// sweep keeps ticking as long as a worker is up.
func RegisterRetentionSweepTask(srv qport.Server, client qport.Client, notifications repository.NotificationRepository) {
	uc := usecase.NewSweepNotificationsUseCase(notifications, RetentionFromEnv())
	srv.Register(RetentionSweepTaskType, func(ctx context.Context, t qport.Task) error {
		// Schedule the next run before sweeping: a failed sweep must not
		// break the chain. Uniqueness keeps concurrent workers from
		// stacking duplicate schedules.
		EnqueueRetentionSweep(ctx, client, sweepInterval)

		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		swept, err := uc.Execute(runCtx)
		if err != nil {
			return err
		}
		if swept > 0 {
			log.Printf("retention sweep: removed %d notifications", swept)
		}
		return nil
	})
}

// EnqueueRetentionSweep schedules the next sweep run after delay.
func EnqueueRetentionSweep(ctx context.Context, client qport.Client, delay time.Duration) {
	_, err := client.Enqueue(ctx, qport.Task{Type: RetentionSweepTaskType}, qport.EnqueueOption{
		Queue:     fanoutQueue,
		ProcessIn: delay,
		UniqueTTL: delay,
	})
	if err != nil {
		log.Printf("retention sweep: schedule: %v", err)
	}
}
