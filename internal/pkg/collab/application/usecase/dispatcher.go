package usecase

import (
	"context"
	"log"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// AsyncNotifier runs the fan-out engine on its own task after the triggering
// mutation returns, detached from the request context so client disconnects
// cannot cancel delivery. It is the in-process Notifier; deployments with a
// worker pool use the queue-backed notifier from the task package instead.
type AsyncNotifier struct {
	UC      *NotifyUseCase
	Timeout time.Duration
}

func NewAsyncNotifier(uc *NotifyUseCase) *AsyncNotifier {
	return &AsyncNotifier{UC: uc, Timeout: 10 * time.Second}
}

var _ Notifier = (*AsyncNotifier)(nil)

func (n *AsyncNotifier) Notify(_ context.Context, e collab.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.Timeout)
		defer cancel()
		if err := n.UC.Execute(ctx, e); err != nil {
			log.Printf("notify: fan-out for %s failed: %v", e.Type, err)
		}
	}()
}

// SyncNotifier executes fan-out inline. Used by tests and by the queue task
// handler, where the caller already runs on a background worker.
type SyncNotifier struct {
	UC *NotifyUseCase
}

var _ Notifier = (*SyncNotifier)(nil)

func (n *SyncNotifier) Notify(ctx context.Context, e collab.Event) {
	if err := n.UC.Execute(ctx, e); err != nil {
		log.Printf("notify: fan-out for %s failed: %v", e.Type, err)
	}
}
