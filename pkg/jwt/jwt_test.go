package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/identity-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func testClaims() map[string]any {
	return map[string]any{
		"sub":  "00000000-0000-0000-0000-000000000001",
		"role": "admin",
		"sid":  "00000000-0000-0000-0000-000000000002",
	}
}

func newCodec(t *testing.T, opts ...jwt.Option) *jwt.Codec {
	t.Helper()
	c, err := jwt.NewCodec(testSecret, "identity-api-test", 15*time.Minute, opts...)
	require.NoError(t, err)
	return c
}

func TestNewCodec_RechazaSecretVacio(t *testing.T) {
	_, err := jwt.NewCodec("", "iss", time.Minute)
	require.Error(t, err)
}

func TestCodec_IssueYDecode_RoundTrip(t *testing.T) {
	c := newCodec(t)

	token, err := c.Issue(testClaims(), 0)
	require.NoError(t, err)

	claims, err := c.Decode(token, true)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", claims["sub"])
	assert.NotNil(t, claims["exp"], "Issue debe calcular exp absoluto")
}

func TestCodec_Decode_TokenExpirado(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer := newCodec(t, jwt.WithClock(func() time.Time { return past }))
	token, err := issuer.Issue(testClaims(), time.Minute)
	require.NoError(t, err)

	c := newCodec(t)
	_, err = c.Decode(token, true)
	require.ErrorIs(t, err, jwt.ErrTokenExpired,
		"firma válida + exp vencido debe distinguirse como expirado")

	// Sin verificación de expiración el mismo token decodifica bien.
	claims, err := c.Decode(token, false)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
}

func TestCodec_Decode_FirmaDeOtroSecreto(t *testing.T) {
	otro, err := jwt.NewCodec("otro-secreto-distinto", "iss", time.Minute)
	require.NoError(t, err)
	token, err := otro.Issue(testClaims(), time.Minute)
	require.NoError(t, err)

	c := newCodec(t)
	_, err = c.Decode(token, true)
	require.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestCodec_Decode_EstructuraMalformada(t *testing.T) {
	c := newCodec(t)
	_, err := c.Decode("token.invalido.aqui", true)
	require.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestCodec_Decode_FaltaClaimRequerido(t *testing.T) {
	c := newCodec(t)
	claims := testClaims()
	delete(claims, "sid")
	token, err := c.Issue(claims, time.Minute)
	require.NoError(t, err)

	_, err = c.Decode(token, true)
	require.ErrorIs(t, err, jwt.ErrTokenInvalid,
		"falta de claim requerido es token inválido, no expirado")
}

func TestCodec_DecodeAuthorized_ProyectaClaims(t *testing.T) {
	c := newCodec(t)
	token, err := c.Issue(testClaims(), time.Minute)
	require.NoError(t, err)

	ac, err := c.DecodeAuthorized(token, true)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", ac.Subject)
	assert.Equal(t, "admin", ac.Role)
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", ac.SessionID)
	assert.True(t, ac.ExpiresAt.After(time.Now()))
}

func TestCodec_DecodeAuthorized_SubConTipoIncorrecto(t *testing.T) {
	c := newCodec(t)
	claims := testClaims()
	claims["sub"] = 12345
	token, err := c.Issue(claims, time.Minute)
	require.NoError(t, err)

	_, err = c.DecodeAuthorized(token, true)
	require.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
