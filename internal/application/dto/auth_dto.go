package dto

import "time"

// LoginRequest entrada para login. Identifier acepta username o email.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AuthResult resultado interno del login: el token firmado y la sesión
// recién creada. El transporte decide cómo entregar cada parte (body y
// cookie respectivamente).
type AuthResult struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
	User      UserResponse
}

// TokenResponse cuerpo HTTP del login exitoso.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
