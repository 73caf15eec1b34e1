package entity

import "time"

// Session registro servidor de un inicio de sesión. El id es también el
// claim "sid" del token y el valor de la cookie. Se crea en el login y se
// elimina en el logout o al desactivar al usuario; nunca se muta.
type Session struct {
	id        string
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// NewSession crea una sesión para userID con la vigencia indicada.
func NewSession(userID string, lifetime time.Duration, now time.Time, ids IDGenerator) *Session {
	return &Session{
		id:        ids.NewID(),
		UserID:    userID,
		ExpiresAt: now.Add(lifetime),
	}
}

// SessionFromStorage rehidrata una sesión persistida.
func SessionFromStorage(id, userID string, expiresAt time.Time, revokedAt *time.Time) *Session {
	return &Session{id: id, UserID: userID, ExpiresAt: expiresAt, RevokedAt: revokedAt}
}

// ID devuelve el identificador inmutable de la sesión.
func (s *Session) ID() string { return s.id }

// Active indica si la sesión sigue vigente: no revocada y no expirada.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
