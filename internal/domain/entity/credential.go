package entity

// CredentialKind esquema del artefacto de autenticación recibido.
type CredentialKind string

const (
	CredentialBearer CredentialKind = "bearer"
	CredentialCookie CredentialKind = "cookie"
	CredentialBasic  CredentialKind = "basic"
	CredentialAPIKey CredentialKind = "apikey"
)

// Credential artefacto de autenticación tal como llegó por el wire (token
// bearer, valor de cookie). Vive solo durante una petición; nunca se
// persiste.
type Credential struct {
	Kind  CredentialKind
	Value string
}

// BearerCredential construye la credencial de un header Authorization.
func BearerCredential(token string) Credential {
	return Credential{Kind: CredentialBearer, Value: token}
}

// CookieCredential construye la credencial de una cookie de sesión.
func CookieCredential(value string) Credential {
	return Credential{Kind: CredentialCookie, Value: value}
}

// Empty indica si la credencial no trae valor.
func (c Credential) Empty() bool { return c.Value == "" }
