package entity

import (
	"regexp"

	"github.com/jhoicas/identity-api/internal/domain"
)

// Roles válidos para User. Los literales son los valores persistidos y los
// que viajan en el claim "role"; no cambiarlos sin migración.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// Límites de los campos de User (alineados con el esquema de la tabla users).
const (
	UsernameMinLen    = 5
	UsernameMaxLen    = 20
	EmailMinLen       = 5
	EmailMaxLen       = 100
	RawPasswordMinLen = 6
	RawPasswordMaxLen = 20
	PasswordHashLen   = 60 // bcrypt produce siempre 60 bytes
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z0-9]+$`)

// IDGenerator provee identificadores únicos para entidades nuevas.
type IDGenerator interface {
	NewID() string
}

// User entidad de dominio. El id es inmutable después de la construcción
// (campo no exportado, sin setter); la identidad y la igualdad son solo por
// id. Toda mutación pasa por los métodos Change*/Activate/Deactivate, que
// rechazan mutaciones no-op como error de dominio para no producir eventos
// de auditoría falsos.
type User struct {
	id           string
	Username     string
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Role         string // admin, manager, user
	IsActive     bool
}

// NewUser crea un usuario nuevo con id generado. Valida todos los campos.
func NewUser(username, email, passwordHash, role string, ids IDGenerator) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePasswordHash(passwordHash); err != nil {
		return nil, err
	}
	if err := ValidateRole(role); err != nil {
		return nil, err
	}
	return &User{
		id:           ids.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// UserFromStorage rehidrata un usuario persistido sin re-validar: el storage
// es la fuente de verdad de lo ya aceptado.
func UserFromStorage(id, username, email, passwordHash, role string, isActive bool) *User {
	return &User{
		id:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     isActive,
	}
}

// ID devuelve el identificador inmutable.
func (u *User) ID() string { return u.id }

// Equal compara por identidad (solo id).
func (u *User) Equal(other *User) bool {
	return other != nil && u.id == other.id
}

// IsAdmin indica si el usuario tiene rol admin.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ChangeUsername fija un nuevo username o falla si es idéntico al actual.
func (u *User) ChangeUsername(username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if username == u.Username {
		return domain.NewRuleError("el nuevo username es idéntico al actual")
	}
	u.Username = username
	return nil
}

// ChangeEmail fija un nuevo email o falla si es idéntico al actual.
func (u *User) ChangeEmail(email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if email == u.Email {
		return domain.NewRuleError("el nuevo email es idéntico al actual")
	}
	u.Email = email
	return nil
}

// ChangePassword fija un nuevo hash o falla si coincide con el anterior.
func (u *User) ChangePassword(passwordHash string) error {
	if err := validatePasswordHash(passwordHash); err != nil {
		return err
	}
	if passwordHash == u.PasswordHash {
		return domain.NewRuleError("el nuevo hash de password coincide con el anterior")
	}
	u.PasswordHash = passwordHash
	return nil
}

// ChangeRole fija un nuevo rol o falla si ya lo tiene. Promover a admin
// reactiva la cuenta.
func (u *User) ChangeRole(role string) error {
	if err := ValidateRole(role); err != nil {
		return err
	}
	if role == u.Role {
		return domain.NewRuleError("el rol ya tiene el valor indicado")
	}
	u.Role = role
	if u.Role == RoleAdmin {
		u.IsActive = true
	}
	return nil
}

// Activate marca la cuenta como activa o falla si ya lo está.
func (u *User) Activate() error {
	if u.IsActive {
		return domain.NewRuleError("el usuario ya está activo")
	}
	u.IsActive = true
	return nil
}

// Deactivate marca la cuenta como inactiva o falla si ya lo está.
func (u *User) Deactivate() error {
	if !u.IsActive {
		return domain.NewRuleError("el usuario ya está inactivo")
	}
	u.IsActive = false
	return nil
}

// ValidateUsername valida longitud del username.
func ValidateUsername(username string) error {
	if len(username) < UsernameMinLen || len(username) > UsernameMaxLen {
		return domain.NewRuleError("username debe tener entre %d y %d caracteres", UsernameMinLen, UsernameMaxLen)
	}
	return nil
}

// ValidateEmail valida longitud y formato del email.
func ValidateEmail(email string) error {
	if len(email) < EmailMinLen || len(email) > EmailMaxLen {
		return domain.NewRuleError("email debe tener entre %d y %d caracteres", EmailMinLen, EmailMaxLen)
	}
	if !emailRegex.MatchString(email) {
		return domain.NewRuleError("formato de email inválido: %s", email)
	}
	return nil
}

// ValidateRawPassword valida longitud del password en claro (antes del hash).
func ValidateRawPassword(raw string) error {
	if len(raw) < RawPasswordMinLen || len(raw) > RawPasswordMaxLen {
		return domain.NewRuleError("password debe tener entre %d y %d caracteres", RawPasswordMinLen, RawPasswordMaxLen)
	}
	return nil
}

// ValidateRole valida que el rol esté en el conjunto permitido.
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return nil
	}
	return domain.NewRuleError("rol desconocido: %s", role)
}

func validatePasswordHash(hash string) error {
	if len(hash) != PasswordHashLen {
		return domain.NewRuleError("hash de password debe tener %d caracteres", PasswordHashLen)
	}
	return nil
}
