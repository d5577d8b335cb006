package task

import (
	"context"
	"encoding/json"
	"log"
	"time"

	qport "go-collab/internal/infrastructure/queue/port"
	collab "go-collab/internal/pkg/collab/application/domain"
	"go-collab/internal/pkg/collab/application/usecase"
)

// FanoutTaskType is the queue task name for notification fan-out.
const FanoutTaskType = "notify:fanout"

// fanoutQueue is the logical queue fan-out tasks land on.
const fanoutQueue = "notify"

// FanoutTaskPayload is the JSON payload transported via the queue. Kept
// decoupled from domain types to avoid tight coupling with JSON tags.
type FanoutTaskPayload struct {
	Type        string   `json:"type"`
	TeamID      string   `json:"teamId"`
	ActivityID  string   `json:"activityId,omitempty"`
	ActorID     string   `json:"actorId"`
	SubjectID   string   `json:"subjectId,omitempty"`
	Title       string   `json:"title,omitempty"`
	TeamName    string   `json:"teamName,omitempty"`
	AssigneeIDs []string `json:"assigneeIds,omitempty"`
	OldStatus   string   `json:"oldStatus,omitempty"`
	NewStatus   string   `json:"newStatus,omitempty"`
}

func payloadFromEvent(e collab.Event) FanoutTaskPayload {
	return FanoutTaskPayload{
		Type:        string(e.Type),
		TeamID:      e.TeamID,
		ActivityID:  e.ActivityID,
		ActorID:     e.ActorID,
		SubjectID:   e.SubjectID,
		Title:       e.Title,
		TeamName:    e.TeamName,
		AssigneeIDs: e.AssigneeIDs,
		OldStatus:   string(e.OldStatus),
		NewStatus:   string(e.NewStatus),
	}
}

func (p FanoutTaskPayload) event() collab.Event {
	return collab.Event{
		Type:        collab.EventType(p.Type),
		TeamID:      p.TeamID,
		ActivityID:  p.ActivityID,
		ActorID:     p.ActorID,
		SubjectID:   p.SubjectID,
		Title:       p.Title,
		TeamName:    p.TeamName,
		AssigneeIDs: p.AssigneeIDs,
		OldStatus:   collab.Status(p.OldStatus),
		NewStatus:   collab.Status(p.NewStatus),
	}
}

// QueueNotifier implements usecase.Notifier by enqueuing a fan-out task
// instead of running the engine in-process. Enqueue failures fall back to
// the wrapped notifier when one is set, so events are not dropped when
// Redis is briefly down.
type QueueNotifier struct {
	Client   qport.Client
	Fallback usecase.Notifier
}

func NewQueueNotifier(client qport.Client, fallback usecase.Notifier) *QueueNotifier {
	return &QueueNotifier{Client: client, Fallback: fallback}
}

var _ usecase.Notifier = (*QueueNotifier)(nil)

func (n *QueueNotifier) Notify(ctx context.Context, e collab.Event) {
	payload, err := json.Marshal(payloadFromEvent(e))
	if err != nil {
		log.Printf("fanout: encode %s event: %v", e.Type, err)
		return
	}
	_, err = n.Client.Enqueue(ctx, qport.Task{Type: FanoutTaskType, Payload: payload}, qport.EnqueueOption{
		Queue:    fanoutQueue,
		MaxRetry: 3,
	})
	if err != nil {
		log.Printf("fanout: enqueue %s event: %v", e.Type, err)
		if n.Fallback != nil {
			n.Fallback.Notify(ctx, e)
		}
	}
}

// RegisterFanoutTask binds the fan-out handler to the provided server. The
// handler runs the engine inline; the engine's containment contract means a
// returned error is always a pre-persistence failure, safe to retry.
func RegisterFanoutTask(srv qport.Server, uc *usecase.NotifyUseCase) {
	srv.Register(FanoutTaskType, func(ctx context.Context, t qport.Task) error {
		var p FanoutTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		return uc.Execute(ctx, p.event())
	})
}
