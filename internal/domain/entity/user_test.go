package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
)

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() string { return f.id }

const testHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // 60 bytes

func TestNewUser_GeneraIDYQuedaActivo(t *testing.T) {
	u, err := entity.NewUser("jperez", "jperez@example.com", testHash, entity.RoleUser, fixedIDs{id: "u-1"})
	require.NoError(t, err)

	assert.Equal(t, "u-1", u.ID())
	assert.True(t, u.IsActive, "un usuario recién creado debe quedar activo")
	assert.False(t, u.IsAdmin())
}

func TestNewUser_RechazaCamposInvalidos(t *testing.T) {
	ids := fixedIDs{id: "u-1"}

	cases := []struct {
		name     string
		username string
		email    string
		hash     string
		role     string
	}{
		{"username corto", "ab", "jperez@example.com", testHash, entity.RoleUser},
		{"email sin formato", "jperez", "no-es-email", testHash, entity.RoleUser},
		{"hash con longitud incorrecta", "jperez", "jperez@example.com", "corto", entity.RoleUser},
		{"rol desconocido", "jperez", "jperez@example.com", testHash, "superuser"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewUser(tc.username, tc.email, tc.hash, tc.role, ids)
			require.Error(t, err)
			assert.True(t, domain.IsRuleError(err), "debe ser error de regla de dominio")
		})
	}
}

func TestUser_MutacionesNoOpSonErrorDeDominio(t *testing.T) {
	u := entity.UserFromStorage("u-1", "jperez", "jperez@example.com", testHash, entity.RoleUser, true)

	assert.True(t, domain.IsRuleError(u.ChangeUsername("jperez")), "mismo username debe rechazarse")
	assert.True(t, domain.IsRuleError(u.ChangeEmail("jperez@example.com")), "mismo email debe rechazarse")
	assert.True(t, domain.IsRuleError(u.ChangePassword(testHash)), "mismo hash debe rechazarse")
	assert.True(t, domain.IsRuleError(u.ChangeRole(entity.RoleUser)), "mismo rol debe rechazarse")
	assert.True(t, domain.IsRuleError(u.Activate()), "activar a un activo debe rechazarse")
}

func TestUser_MutacionesValidasAplican(t *testing.T) {
	u := entity.UserFromStorage("u-1", "jperez", "jperez@example.com", testHash, entity.RoleUser, true)

	require.NoError(t, u.ChangeUsername("jgomez"))
	assert.Equal(t, "jgomez", u.Username)

	require.NoError(t, u.ChangeEmail("jgomez@example.com"))
	require.NoError(t, u.Deactivate())
	assert.False(t, u.IsActive)
	assert.True(t, domain.IsRuleError(u.Deactivate()), "desactivar dos veces debe rechazarse")
}

func TestUser_PromoverAAdminReactivaLaCuenta(t *testing.T) {
	u := entity.UserFromStorage("u-1", "jperez", "jperez@example.com", testHash, entity.RoleUser, false)

	require.NoError(t, u.ChangeRole(entity.RoleAdmin))
	assert.True(t, u.IsActive, "promover a admin debe reactivar la cuenta")
	assert.True(t, u.IsAdmin())
}

func TestUser_IgualdadSoloPorID(t *testing.T) {
	a := entity.UserFromStorage("u-1", "jperez", "jperez@example.com", testHash, entity.RoleUser, true)
	b := entity.UserFromStorage("u-1", "otro1", "otro@example.com", testHash, entity.RoleAdmin, false)
	c := entity.UserFromStorage("u-2", "jperez", "jperez@example.com", testHash, entity.RoleUser, true)

	assert.True(t, a.Equal(b), "mismo id ⇒ misma entidad aunque difieran los campos")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestSession_ActiveSegunRevocacionYExpiracion(t *testing.T) {
	now := time.Now()
	ids := fixedIDs{id: "s-1"}

	s := entity.NewSession("u-1", time.Hour, now, ids)
	assert.True(t, s.Active(now))
	assert.False(t, s.Active(now.Add(2*time.Hour)), "sesión expirada no es activa")

	revoked := now
	r := entity.SessionFromStorage("s-2", "u-1", now.Add(time.Hour), &revoked)
	assert.False(t, r.Active(now), "sesión revocada no es activa")
}
