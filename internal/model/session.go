package model

import "time"

// Stage is the coarse-grained authentication progress marker. It is the
// single source of truth for route admission; a valid token alone is not
// enough because intermediate login steps issue provisional tokens too.
type Stage string

const (
	StageAnonymous    Stage = "anonymous"
	StagePendingEmail Stage = "pending_email_verification"
	StagePendingMFA   Stage = "pending_mfa"
	StageFull         Stage = "fully_authenticated"
)

// ParseStage maps a raw stored value to a Stage. Anything unknown (including
// the empty string left by a cleared session) degrades to StageAnonymous.
func ParseStage(raw string) Stage {
	switch Stage(raw) {
	case StagePendingEmail, StagePendingMFA, StageFull:
		return Stage(raw)
	default:
		return StageAnonymous
	}
}

// SessionSnapshot is the derived, read-only view of "who is logged in".
// It exists only while the stage is fully_authenticated and the token
// decodes and has not expired; everywhere else the snapshot is nil.
type SessionSnapshot struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	RoleName  string    `json:"role_name"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}
