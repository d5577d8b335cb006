package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// NotifyUseCase is the notification fan-out engine: it translates one domain
// event into zero or more persisted notifications and pushes them to live
// connections.
//
// Containment contract: once recipient selection succeeds, Execute never
// fails. A persist or push failure for one recipient is logged and skipped
// for that recipient only; the triggering mutation has already committed and
// must not be affected.
type NotifyUseCase struct {
	Users         repository.UserRepository
	Teams         repository.TeamRepository
	Notifications repository.NotificationRepository
	Delivery      Delivery
	Unread        UnreadCounter
}

func NewNotifyUseCase(
	users repository.UserRepository,
	teams repository.TeamRepository,
	notifications repository.NotificationRepository,
	delivery Delivery,
	unread UnreadCounter,
) *NotifyUseCase {
	return &NotifyUseCase{
		Users:         users,
		Teams:         teams,
		Notifications: notifications,
		Delivery:      delivery,
		Unread:        unread,
	}
}

// wireFrame is the server-to-client envelope on the realtime channel.
type wireFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Execute fans out the event. An error is returned only when recipient
// selection fails before anything was persisted, so retrying is safe and
// cannot duplicate notifications.
func (uc *NotifyUseCase) Execute(ctx context.Context, e collab.Event) error {
	recipients, err := uc.recipients(ctx, e)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	for _, userID := range recipients {
		n, err := collab.NewNotification(uc.buildNotification(e, userID))
		if err != nil {
			log.Printf("notify: skip recipient %s for %s: %v", userID, e.Type, err)
			continue
		}

		// Persist first: a later push failure must never lose the
		// notification.
		id, err := uc.Notifications.Save(ctx, *n)
		if err != nil {
			log.Printf("notify: persist for %s failed: %v", userID, err)
			continue
		}
		n.ID = id

		if uc.Unread != nil {
			if err := uc.Unread.Incr(ctx, userID); err != nil {
				log.Printf("notify: unread cache incr for %s: %v", userID, err)
			}
		}

		if uc.Delivery != nil {
			payload, err := json.Marshal(wireFrame{Type: "notification", Data: n})
			if err != nil {
				log.Printf("notify: encode frame for %s: %v", userID, err)
				continue
			}
			uc.Delivery.Push(userID, payload)
		}
	}
	return nil
}

// recipients returns the notification recipient set in a stable,
// deterministic order: assignees in assignment order, then the single admin
// where the rule includes one. The event actor is excluded where the rule
// says so, and duplicates are dropped keeping the first occurrence.
func (uc *NotifyUseCase) recipients(ctx context.Context, e collab.Event) ([]string, error) {
	var ids []string
	switch e.Type {
	case collab.EventActivityCreated:
		ids = append(ids, e.AssigneeIDs...)

	case collab.EventStatusChanged:
		for _, id := range e.AssigneeIDs {
			if id != e.ActorID {
				ids = append(ids, id)
			}
		}
		admin, err := uc.Users.FirstActiveAdmin(ctx)
		switch {
		case errors.Is(err, collab.ErrNotFound):
			// No active admin configured; assignees still get notified.
		case err != nil:
			return nil, err
		case admin.ID != e.ActorID:
			ids = append(ids, admin.ID)
		}

	case collab.EventMemberAssigned, collab.EventMemberUnassigned:
		if e.SubjectID != e.ActorID {
			ids = append(ids, e.SubjectID)
		}

	case collab.EventMemberAdded, collab.EventMemberRemoved:
		ids = append(ids, e.SubjectID)

	case collab.EventRemarkAdded:
		members, err := uc.Teams.ListMemberIDs(ctx, e.TeamID)
		if err != nil {
			return nil, err
		}
		for _, id := range members {
			if id != e.ActorID {
				ids = append(ids, id)
			}
		}

	default:
		log.Printf("notify: unknown event type %q ignored", e.Type)
	}
	return dedupe(ids), nil
}

// buildNotification fills the message template keyed by event type.
func (uc *NotifyUseCase) buildNotification(e collab.Event, userID string) collab.Notification {
	n := collab.Notification{UserID: userID}
	if e.TeamID != "" {
		teamID := e.TeamID
		n.TeamID = &teamID
	}
	if e.ActivityID != "" {
		activityID := e.ActivityID
		n.ActivityID = &activityID
	}

	switch e.Type {
	case collab.EventActivityCreated:
		n.Type = collab.NotificationActivityCreated
		n.Title = "New Activity"
		n.Message = fmt.Sprintf("Activity '%s' was created and assigned to you", e.Title)
	case collab.EventStatusChanged:
		n.Type = collab.NotificationStatusChanged
		n.Title = "Activity Status Changed"
		n.Message = fmt.Sprintf("Activity '%s' status changed to %s", e.Title, e.NewStatus)
	case collab.EventMemberAssigned:
		n.Type = collab.NotificationMemberAssigned
		n.Title = "Activity Assigned"
		n.Message = fmt.Sprintf("You have been assigned to activity '%s'", e.Title)
	case collab.EventMemberUnassigned:
		n.Type = collab.NotificationMemberUnassigned
		n.Title = "Activity Unassigned"
		n.Message = fmt.Sprintf("You have been unassigned from activity '%s'", e.Title)
	case collab.EventMemberAdded:
		n.Type = collab.NotificationMemberAdded
		n.Title = "Added to Team"
		n.Message = fmt.Sprintf("You have been added to team '%s'", e.TeamName)
	case collab.EventMemberRemoved:
		n.Type = collab.NotificationMemberRemoved
		n.Title = "Removed from Team"
		n.Message = fmt.Sprintf("You have been removed from team '%s'", e.TeamName)
	case collab.EventRemarkAdded:
		n.Type = collab.NotificationRemarkAdded
		n.Title = "New Remark"
		n.Message = fmt.Sprintf("New remark on activity '%s'", e.Title)
	}
	return n
}

// dedupe returns a fresh slice; callers hand in slices they still own.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
