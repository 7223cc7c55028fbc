package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/JeffMenca/pitstop-manager/internal/event"
	"github.com/JeffMenca/pitstop-manager/internal/model"
)

const (
	tokenKey = "pitstop_token"
	stageKey = "pitstop_auth_stage"
)

// Store owns the two persisted session scalars: the bearer token and the
// auth stage. It is the only writer; the transport rotates the token through
// it and the login flows drive stage transitions through it. Every stage
// mutation broadcasts exactly one event on the bus.
type Store struct {
	storage Storage
	bus     event.Bus
}

func NewStore(storage Storage, bus event.Bus) *Store {
	return &Store{storage: storage, bus: bus}
}

// SetToken persists a rotated or freshly issued token. Empty tokens are
// ignored so a missing rotation header can never wipe a live credential.
func (s *Store) SetToken(t string) {
	if t == "" {
		return
	}
	s.storage.Set(tokenKey, t)
	s.publish(event.TypeTokenRotated)
}

func (s *Store) Token() (string, bool) {
	t, ok := s.storage.Get(tokenKey)
	if !ok || t == "" {
		return "", false
	}
	return t, true
}

func (s *Store) ClearToken() {
	s.storage.Delete(tokenKey)
}

// SetStage records a stage transition and notifies observers. Use Transition
// when a token is issued together with the stage so both land atomically
// under a single notification.
func (s *Store) SetStage(stage model.Stage) {
	s.storage.Set(stageKey, string(stage))
	s.publish(event.TypeStageChanged)
}

func (s *Store) Stage() model.Stage {
	raw, _ := s.storage.Get(stageKey)
	return model.ParseStage(raw)
}

// Transition applies a protocol step: the issued token (if any) and the new
// stage are written together, then one notification goes out. There is no
// observable state between the old stage and the new one.
func (s *Store) Transition(stage model.Stage, token string) {
	if token != "" {
		s.storage.Set(tokenKey, token)
	}
	s.storage.Set(stageKey, string(stage))
	s.publish(event.TypeStageChanged)
}

// ClearAuth drops both scalars and notifies. This is the logout / forced
// invalidation path; afterwards Stage() reports anonymous.
func (s *Store) ClearAuth() {
	s.storage.Delete(tokenKey)
	s.storage.Delete(stageKey)
	s.publish(event.TypeSessionCleared)
}

func (s *Store) publish(t event.Type) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      t,
		Stage:     string(s.Stage()),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
