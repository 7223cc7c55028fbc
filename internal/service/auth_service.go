package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/JeffMenca/pitstop-manager/internal/api"
	"github.com/JeffMenca/pitstop-manager/internal/model"
	"github.com/JeffMenca/pitstop-manager/internal/session"
	"github.com/JeffMenca/pitstop-manager/internal/token"
	"github.com/JeffMenca/pitstop-manager/pkg/apierror"
)

// AuthService drives the four-stage login protocol. It is the only component
// that moves the stage forward; the transport only ever forces it back to
// anonymous on a 401.
//
//	anonymous → fully_authenticated            login 200
//	anonymous → pending_email_verification     login 301
//	anonymous → pending_mfa                    login 302
//	pending_* → fully_authenticated            verification 200
//	any       → anonymous                      logout / 401
type AuthService struct {
	api   *api.Client
	store *session.Store
}

func NewAuthService(client *api.Client, store *session.Store) *AuthService {
	return &AuthService{api: client, store: store}
}

// Login submits credentials and maps the backend's status code onto a stage
// transition. A rejected login (400/401/404/429/500) leaves the stage
// untouched and surfaces the server's message; the user can retry.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.Stage, error) {
	resp, err := s.api.Send(ctx, http.MethodPost, "/login", model.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return s.store.Stage(), err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := s.completeAuthentication(resp); err != nil {
			return s.store.Stage(), err
		}
		return model.StageFull, nil

	case http.StatusMovedPermanently:
		s.store.Transition(model.StagePendingEmail, bodyToken(resp))
		return model.StagePendingEmail, nil

	case http.StatusFound:
		s.store.Transition(model.StagePendingMFA, bodyToken(resp))
		return model.StagePendingMFA, nil

	default:
		return s.store.Stage(), apierror.FromStatus(resp.StatusCode, api.ServerMessage(resp))
	}
}

// VerifyEmail submits the emailed verification code. Acceptance completes
// the login; rejection leaves the pending stage in place for a retry.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) error {
	resp, err := s.api.Send(ctx, http.MethodPost, "/login/verificar", model.VerifyEmailRequest{Code: code})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apierror.FromStatus(resp.StatusCode, api.ServerMessage(resp))
	}

	return s.completeAuthentication(resp)
}

// TwoFactor submits the second-factor code. The backend wants the user id
// alongside it, read from the provisional token's identity claim.
func (s *AuthService) TwoFactor(ctx context.Context, code string) error {
	userID := ""
	if tok, ok := s.store.Token(); ok {
		if result := token.Decode(tok); result.Claims != nil {
			userID = result.Claims.UserID
		}
	}

	resp, err := s.api.Send(ctx, http.MethodPost, "/login/autenticacion", model.TwoFactorRequest{
		UsuarioID: userID,
		Codigo:    code,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apierror.FromStatus(resp.StatusCode, api.ServerMessage(resp))
	}

	return s.completeAuthentication(resp)
}

// Logout drops the session locally. The backend keeps no session state
// beyond the token family, so there is nothing to tell it.
func (s *AuthService) Logout() {
	s.store.ClearAuth()
}

// completeAuthentication moves to fully_authenticated, keeping the invariant
// that the terminal stage always co-occurs with a stored token. The rotated
// header token (if any) was persisted by the transport already; a token in
// the response body takes part in the same transition.
func (s *AuthService) completeAuthentication(resp *http.Response) error {
	issued := bodyToken(resp)
	if issued == "" {
		if _, ok := s.store.Token(); !ok {
			return apierror.New("BACKEND_ERROR", "authentication succeeded but no token was issued", "", http.StatusBadGateway)
		}
	}
	s.store.Transition(model.StageFull, issued)
	return nil
}

// bodyToken reads an optional `{ token }` field from a response body.
func bodyToken(resp *http.Response) string {
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return ""
	}

	var parsed model.LoginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return ""
	}
	return parsed.Token
}
