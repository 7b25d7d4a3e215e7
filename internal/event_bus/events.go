package event_bus

const (
	// SpendingChangedEvent is published after any successful mutation of a
	// user's spending records (create or delete). Consumers are expected to
	// reload the full record list; the event does not carry a diff.
	SpendingChangedEvent EventType = "spending.changed"

	// UserDeletedEvent is published after a user and their records are removed.
	UserDeletedEvent EventType = "user.deleted"
)

type SpendingChanged struct {
	UserId int
}

type UserDeleted struct {
	UserId int
	Uid    string
}
