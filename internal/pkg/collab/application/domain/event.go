package collab

// EventType identifies the kind of mutation an event describes.
type EventType string

const (
	EventActivityCreated  EventType = "ActivityCreated"
	EventStatusChanged    EventType = "StatusChanged"
	EventMemberAssigned   EventType = "MemberAssigned"
	EventMemberUnassigned EventType = "MemberUnassigned"
	EventMemberAdded      EventType = "MemberAdded"
	EventMemberRemoved    EventType = "MemberRemoved"
	EventRemarkAdded      EventType = "RemarkAdded"
)

// Event describes a committed domain mutation handed to the notification
// fan-out engine. It is emitted strictly after the mutation is durable
// (write-then-emit), so a consumer may trust every referenced ID to exist.
//
// Field usage by type:
//   - ActivityCreated:  ActivityID, TeamID, ActorID, Title, AssigneeIDs
//   - StatusChanged:    ActivityID, TeamID, ActorID, Title, AssigneeIDs, OldStatus, NewStatus
//   - MemberAssigned/MemberUnassigned: ActivityID, TeamID, ActorID, Title, SubjectID
//   - MemberAdded/MemberRemoved:       TeamID, ActorID, SubjectID, TeamName
//   - RemarkAdded:      ActivityID, TeamID, ActorID (remark author), Title
//
// AssigneeIDs snapshots the assignment-ordered assignee set at mutation time,
// so recipient selection stays deterministic even if assignments change
// between commit and fan-out.
type Event struct {
	Type        EventType `json:"type"`
	TeamID      string    `json:"team_id"`
	ActivityID  string    `json:"activity_id,omitempty"`
	ActorID     string    `json:"actor_id"`
	SubjectID   string    `json:"subject_id,omitempty"`
	Title       string    `json:"title,omitempty"`
	TeamName    string    `json:"team_name,omitempty"`
	AssigneeIDs []string  `json:"assignee_ids,omitempty"`
	OldStatus   Status    `json:"old_status,omitempty"`
	NewStatus   Status    `json:"new_status,omitempty"`
}
