package handler

import (
	"net/http"

	"github.com/JeffMenca/pitstop-manager/internal/observer"
)

// SessionHandler exposes the derived session snapshot. Data is null when
// nobody is fully authenticated; callers treat that as "log in again".
type SessionHandler struct {
	observer *observer.Observer
}

func NewSessionHandler(obs *observer.Observer) *SessionHandler {
	return &SessionHandler{observer: obs}
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.observer.Snapshot())
}
