// Package ratelimit limita intentos de login con una ventana fija en Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/identity-api/pkg/logger"
)

// LoginLimiter cuenta intentos de login por identificador+IP en una ventana
// fija. Si Redis no responde el limiter abre el paso: la indisponibilidad
// del contador no debe tumbar el login.
type LoginLimiter struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
	log    *logger.Logger
}

// NewLoginLimiter construye el limiter. max es la cantidad de intentos
// permitidos dentro de window.
func NewLoginLimiter(rdb *redis.Client, max int, window time.Duration, log *logger.Logger) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, max: int64(max), window: window, log: log}
}

func key(identifier, ip string) string {
	return fmt.Sprintf("login_attempts:%s:%s", identifier, ip)
}

// Allow registra un intento y devuelve false si el par identificador+IP
// agotó su cuota en la ventana vigente.
func (l *LoginLimiter) Allow(ctx context.Context, identifier, ip string) bool {
	k := key(identifier, ip)
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		l.log.Warn().Err(err).Str("event", "ratelimit_unavailable").Msg("Redis no disponible, se permite el intento")
		return true
	}
	if n == 1 {
		// Primera cuenta de la ventana: fijar la expiración.
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			l.log.Warn().Err(err).Str("event", "ratelimit_expire_failed").Msg("no se pudo fijar la ventana")
		}
	}
	if n > l.max {
		l.log.Warn().
			Str("event", "login_throttled").
			Str("identifier", identifier).
			Str("ip", ip).
			Int64("attempts", n).
			Msg("cuota de intentos de login agotada")
		return false
	}
	return true
}

// Reset limpia el contador tras un login exitoso.
func (l *LoginLimiter) Reset(ctx context.Context, identifier, ip string) {
	if err := l.rdb.Del(ctx, key(identifier, ip)).Err(); err != nil {
		l.log.Warn().Err(err).Str("event", "ratelimit_reset_failed").Msg("no se pudo limpiar el contador")
	}
}
