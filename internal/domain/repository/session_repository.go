package repository

import (
	"context"
	"time"

	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para Session.
//
// GetActiveUser resuelve en una sola consulta (join sessions → users) el
// usuario dueño de una sesión vigente: no revocada y con expires_at > now.
// Devuelve (nil, nil) si la sesión no existe, está revocada o expiró; el
// estado activo del usuario lo verifica el llamador.
type SessionRepository interface {
	Add(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	GetActiveUser(ctx context.Context, sessionID string, now time.Time) (*entity.User, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
