package model

// Request bodies consumed by the PitStop backend. Field names follow the
// backend's JSON contract, which mixes Spanish and English column names.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Code string `json:"code"`
}

// TwoFactorRequest carries the user id read from the provisional token's
// identity claim; the backend expects both values as strings.
type TwoFactorRequest struct {
	UsuarioID string `json:"usuarioId"`
	Codigo    string `json:"codigo"`
}