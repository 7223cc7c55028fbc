package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JeffMenca/pitstop-manager/internal/model"
	"github.com/JeffMenca/pitstop-manager/internal/service"
	"github.com/JeffMenca/pitstop-manager/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// stageRoute maps the stage reached by a login attempt onto the page the
// client should continue at.
func stageRoute(stage model.Stage) string {
	switch stage {
	case model.StagePendingEmail:
		return "/verify-email"
	case model.StagePendingMFA:
		return "/two-factor"
	case model.StageFull:
		return "/home"
	default:
		return "/login"
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		writeError(w, apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest))
		return
	}

	stage, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"stage": stage,
		"next":  stageRoute(stage),
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(payload.Code) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "code is required", "", http.StatusBadRequest))
		return
	}

	if err := h.service.VerifyEmail(r.Context(), payload.Code); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"stage": model.StageFull,
		"next":  "/home",
	})
}

func (h *AuthHandler) TwoFactor(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(payload.Code) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "code is required", "", http.StatusBadRequest))
		return
	}

	if err := h.service.TwoFactor(r.Context(), payload.Code); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"stage": model.StageFull,
		"next":  "/home",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout()
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true})
}
