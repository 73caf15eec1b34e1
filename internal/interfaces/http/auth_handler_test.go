package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/usecase"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	apphttp "github.com/jhoicas/identity-api/internal/interfaces/http"
	"github.com/jhoicas/identity-api/pkg/logger"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%04d", s.n)
}

// fakeHasher hashes deterministas de 60 caracteres.
type fakeHasher struct{}

func (fakeHasher) Hash(raw string) (string, error) {
	return fmt.Sprintf("%-60s", "h:"+raw), nil
}

func (h fakeHasher) Verify(raw, hash string) bool {
	got, _ := h.Hash(raw)
	return got == hash
}

type denyThrottle struct{}

func (denyThrottle) Allow(context.Context, string, string) bool { return false }
func (denyThrottle) Reset(context.Context, string, string)      {}

// buildAPIApp monta la API completa (router real) sobre el store fake.
func buildAPIApp(t *testing.T, store *fakeStore, throttle apphttp.LoginThrottle) *fiber.App {
	t.Helper()

	log := logger.Nop()
	codec := testCodec(t)
	factory := fakeFactory{store}
	policy := authz.NewPolicy()
	hasher := fakeHasher{}
	ids := &seqIDs{}

	guard := apphttp.NewSessionGuard(codec, factory, testCookieName, log)
	loginUC := usecase.NewAuthenticateUser(factory, hasher, codec, ids, 24*time.Hour, log)
	logoutUC := usecase.NewLogoutUser(factory, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Guard:     guard,
		Auth:      apphttp.NewAuthHandler(loginUC, logoutUC, throttle, testCookieName, false),
		Users:     apphttp.NewUserHandler(policy, factory, hasher, ids, log),
		Resources: apphttp.NewResourceHandler(policy, log),
	})
	return app
}

func seedAPIUser(t *testing.T, store *fakeStore, id, username, role string) {
	t.Helper()
	hash, err := fakeHasher{}.Hash("secret123")
	require.NoError(t, err)
	store.users[id] = entity.UserFromStorage(id, username, username+"@example.com", hash, role, true)
}

func postLogin(t *testing.T, app *fiber.App, identifier, password string) *http.Response {
	t.Helper()
	body := fmt.Sprintf(`{"identifier":%q,"password":%q}`, identifier, password)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookieName {
			return ck
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	store := newFakeStore()
	seedAPIUser(t, store, "u-1", "mrodriguez", entity.RoleUser)
	app := buildAPIApp(t, store, nil)

	resp := postLogin(t, app, "mrodriguez", "secret123")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])

	ck := sessionCookie(t, resp)
	require.NotNil(t, ck, "el login exitoso entrega el cookie de sesión")
	assert.True(t, ck.HttpOnly, "el cookie no debe ser accesible desde JS")
	assert.NotEmpty(t, ck.Value)
	assert.Contains(t, store.sessions, ck.Value, "la sesión del cookie existe en el servidor")
}

func TestLogin_PorEmail(t *testing.T) {
	store := newFakeStore()
	seedAPIUser(t, store, "u-1", "mrodriguez", entity.RoleUser)
	app := buildAPIApp(t, store, nil)

	resp := postLogin(t, app, "mrodriguez@example.com", "secret123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	store := newFakeStore()
	seedAPIUser(t, store, "u-1", "mrodriguez", entity.RoleUser)
	app := buildAPIApp(t, store, nil)

	resp := postLogin(t, app, "mrodriguez", "no-es")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(t, resp), "un login rechazado no entrega cookie")
	assert.Empty(t, store.sessions, "un login rechazado no crea sesión")

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestLogin_CuerpoIncompleto(t *testing.T) {
	store := newFakeStore()
	app := buildAPIApp(t, store, nil)

	resp := postLogin(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_Throttled(t *testing.T) {
	store := newFakeStore()
	seedAPIUser(t, store, "u-1", "mrodriguez", entity.RoleUser)
	app := buildAPIApp(t, store, denyThrottle{})

	resp := postLogin(t, app, "mrodriguez", "secret123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Empty(t, store.sessions, "con la cuota agotada ni siquiera se verifica la credencial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout: el token viejo deja de servir aunque siga criptográficamente válido
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_InvalidaElTokenViejo(t *testing.T) {
	store := newFakeStore()
	seedAPIUser(t, store, "u-1", "mrodriguez", entity.RoleUser)
	app := buildAPIApp(t, store, nil)

	// Login: obtener token y cookie.
	loginResp := postLogin(t, app, "mrodriguez", "secret123")
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var loginBody map[string]string
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&loginBody))
	token := loginBody["access_token"]
	ck := sessionCookie(t, loginResp)
	require.NotNil(t, ck)

	authed := func(method, path string) *http.Response {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: ck.Value})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	// Con sesión viva la ruta protegida responde.
	ordersResp := authed(http.MethodGet, "/api/orders")
	ordersResp.Body.Close()
	// user no ve orders (solo admin/manager), pero pasó el gateway: 403, no 401.
	assert.Equal(t, http.StatusForbidden, ordersResp.StatusCode)

	// Logout.
	logoutResp := authed(http.MethodPost, "/api/auth/logout")
	defer logoutResp.Body.Close()
	assert.Equal(t, http.StatusOK, logoutResp.StatusCode)
	assert.Empty(t, store.sessions, "el logout elimina las sesiones del servidor")

	cleared := sessionCookie(t, logoutResp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value, "el logout limpia el cookie")

	// El mismo par token+cookie ya no pasa el gateway.
	replay := authed(http.MethodGet, "/api/orders")
	defer replay.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, replay.StatusCode,
		"un token firmado válido sin sesión de servidor no autentica")
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC de extremo a extremo
// ──────────────────────────────────────────────────────────────────────────────

func TestRBAC_PorRol(t *testing.T) {
	cases := []struct {
		role         string
		wantOrders   int
		wantPayments int
	}{
		{entity.RoleAdmin, http.StatusOK, http.StatusOK},
		{entity.RoleManager, http.StatusOK, http.StatusForbidden},
		{entity.RoleUser, http.StatusForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			store := newFakeStore()
			seedAPIUser(t, store, "u-1", "mrodriguez", tc.role)
			app := buildAPIApp(t, store, nil)

			loginResp := postLogin(t, app, "mrodriguez", "secret123")
			defer loginResp.Body.Close()
			require.Equal(t, http.StatusOK, loginResp.StatusCode)

			var loginBody map[string]string
			require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&loginBody))
			ck := sessionCookie(t, loginResp)
			require.NotNil(t, ck)

			get := func(path string) int {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				req.Header.Set("Authorization", "Bearer "+loginBody["access_token"])
				req.AddCookie(&http.Cookie{Name: testCookieName, Value: ck.Value})
				resp, err := app.Test(req, -1)
				require.NoError(t, err)
				resp.Body.Close()
				return resp.StatusCode
			}

			assert.Equal(t, tc.wantOrders, get("/api/orders"))
			assert.Equal(t, tc.wantPayments, get("/api/payments"))
		})
	}
}

func TestCreateUser_E2E(t *testing.T) {
	store := newFakeStore()
	seedAPIUser(t, store, "a-1", "admin", entity.RoleAdmin)
	app := buildAPIApp(t, store, nil)

	loginResp := postLogin(t, app, "admin", "secret123")
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var loginBody map[string]string
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&loginBody))
	ck := sessionCookie(t, loginResp)
	require.NotNil(t, ck)

	body := `{"username":"nuevouser","email":"nuevo@example.com","password":"clave123","role":"user"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+loginBody["access_token"])
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: ck.Value})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "nuevouser", created["username"])
	assert.NotContains(t, created, "password_hash", "la respuesta nunca expone el hash")
}
