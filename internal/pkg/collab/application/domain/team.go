package collab

import "time"

// Team groups users working on the same set of activities.
type Team struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	DomainID  string    `db:"domain_id"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Membership links a user to a team.
// Primary key is (TeamID, UserID): a user joins a team at most once.
type Membership struct {
	TeamID   string    `db:"team_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}
