package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status classifies a decode attempt. The decoder is advisory: the backend
// verifies signatures, this side only reads the payload, so every outcome is
// a value and none is an error.
type Status int

const (
	StatusValid Status = iota
	StatusNoToken
	StatusMalformed
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusNoToken:
		return "no_token"
	case StatusMalformed:
		return "malformed"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Claims is the decoded payload of a bearer token. ExpiresAt is the zero
// time when the token carries no expiry claim, which downstream treats as
// "never expires".
type Claims struct {
	UserID    string
	Username  string
	RoleName  string
	ExpiresAt time.Time
	Raw       jwt.MapClaims
}

// Result is the tagged outcome of Decode. Claims is populated for
// StatusValid and StatusExpired (an expired payload still decodes) and nil
// otherwise.
type Result struct {
	Status Status
	Claims *Claims
}

// Decode parses the payload segment of a bearer token without verifying the
// signature. A missing token, wrong segment count, bad base64url or invalid
// JSON all fail closed to a non-valid status; Decode never panics and never
// returns an error.
func Decode(raw string) Result {
	if raw == "" {
		return Result{Status: StatusNoToken}
	}

	payload := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, payload); err != nil {
		return Result{Status: StatusMalformed}
	}

	claims := &Claims{
		UserID:    identityClaim(payload),
		Username:  stringClaim(payload, "username"),
		RoleName:  roleName(payload),
		ExpiresAt: expiryClaim(payload),
		Raw:       payload,
	}

	if IsExpired(claims) {
		return Result{Status: StatusExpired, Claims: claims}
	}

	return Result{Status: StatusValid, Claims: claims}
}

// IsExpired compares the expiry claim against the wall clock. Tokens without
// an expiry never expire here; the backend remains free to reject them.
func IsExpired(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

// identityClaim tolerates the backend's claim-naming variance: the identity
// has been observed under id, userId, usuarioId and sub.
func identityClaim(payload jwt.MapClaims) string {
	for _, name := range []string{"id", "userId", "usuarioId", "sub"} {
		if v, ok := payload[name]; ok {
			if s := scalarString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// roleName extracts a display role from whatever shape the role descriptor
// takes: a nested record ({"rol": {"rol": "Cliente"}}) or a bare string.
func roleName(payload jwt.MapClaims) string {
	for _, name := range []string{"rol", "role"} {
		v, ok := payload[name]
		if !ok {
			continue
		}
		switch descriptor := v.(type) {
		case string:
			return descriptor
		case map[string]any:
			if inner, ok := descriptor[name].(string); ok {
				return inner
			}
			if inner, ok := descriptor["nombre"].(string); ok {
				return inner
			}
		}
	}
	return ""
}

func expiryClaim(payload jwt.MapClaims) time.Time {
	v, ok := payload["exp"]
	if !ok {
		return time.Time{}
	}

	switch exp := v.(type) {
	case float64:
		return time.Unix(int64(exp), 0)
	case string:
		if n, err := strconv.ParseInt(exp, 10, 64); err == nil {
			return time.Unix(n, 0)
		}
	}
	return time.Time{}
}

func stringClaim(payload jwt.MapClaims, name string) string {
	v, ok := payload[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func scalarString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	default:
		if value == nil {
			return ""
		}
		return fmt.Sprintf("%v", value)
	}
}
