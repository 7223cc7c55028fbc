package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/JeffMenca/pitstop-manager/internal/observer"
)

// PagesHandler serves minimal placeholder pages for the areas the guard
// protects. The real screens live in the browser front-end; these exist so
// admission decisions have something to admit to.
type PagesHandler struct {
	observer *observer.Observer
}

func NewPagesHandler(obs *observer.Observer) *PagesHandler {
	return &PagesHandler{observer: obs}
}

func (h *PagesHandler) Login(w http.ResponseWriter, r *http.Request) {
	writePage(w, "PitStop Manager", "Sign in to continue.")
}

func (h *PagesHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Verify your email", "Enter the code we sent to your inbox.")
}

func (h *PagesHandler) TwoFactor(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Two-factor check", "Enter your authenticator code.")
}

func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	snapshot := h.observer.Snapshot()
	if snapshot == nil {
		writePage(w, "PitStop Manager", "Welcome.")
		return
	}
	writePage(w, "PitStop Manager",
		fmt.Sprintf("Signed in as %s (%s).", html.EscapeString(snapshot.Username), html.EscapeString(snapshot.RoleName)))
}

func (h *PagesHandler) Section(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, title, "")
	}
}

func writePage(w http.ResponseWriter, title string, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><title>%s</title><h1>%s</h1><p>%s</p>",
		html.EscapeString(title), html.EscapeString(title), body)
}
