package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL,
// atada a la transacción del UnitOfWork que la resolvió.
type SessionRepo struct {
	q querier
}

// NewSessionRepository construye el adaptador de persistencia para sesiones.
func NewSessionRepository(q querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Add persiste una sesión nueva.
func (r *SessionRepo) Add(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query,
		session.ID(), session.UserID, session.ExpiresAt, session.RevokedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID; (nil, nil) si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `SELECT id, user_id, expires_at, revoked_at FROM sessions WHERE id = $1`
	var (
		sid, userID string
		expiresAt   time.Time
		revokedAt   *time.Time
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&sid, &userID, &expiresAt, &revokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}
	return entity.SessionFromStorage(sid, userID, expiresAt, revokedAt), nil
}

// GetActiveUser resuelve en una sola consulta el dueño de una sesión
// vigente: no revocada y con expires_at posterior a now. Devuelve (nil, nil)
// si la sesión no existe, está revocada o expiró.
func (r *SessionRepo) GetActiveUser(ctx context.Context, sessionID string, now time.Time) (*entity.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.role, u.is_active
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1 AND s.revoked_at IS NULL AND s.expires_at > $2`
	var (
		id, username, email, passwordHash, role string
		isActive                                bool
	)
	err := r.q.QueryRow(ctx, query, sessionID, now).Scan(
		&id, &username, &email, &passwordHash, &role, &isActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active session user: %w", err)
	}
	return entity.UserFromStorage(id, username, email, passwordHash, role, isActive), nil
}

// DeleteByUserID elimina todas las sesiones de un usuario.
func (r *SessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete sessions by user: %w", err)
	}
	return nil
}
