package event

type Type string

const (
	TypeStageChanged   Type = "session.stage_changed"
	TypeTokenRotated   Type = "session.token_rotated"
	TypeSessionCleared Type = "session.cleared"
	TypeStorageChanged Type = "session.storage_changed"
)

// Event is the session-change notification fanned out to observers. All
// types carry the same meaning for subscribers ("re-read the session");
// the type only records where the change came from.
type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Stage     string `json:"stage,omitempty"`
	Timestamp string `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
