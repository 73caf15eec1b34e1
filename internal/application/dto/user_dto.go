package dto

// CreateUserRequest entrada para crear un usuario (password en texto, se
// hashea en el caso de uso).
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin, manager, user
}

// UserResponse salida pública de un usuario (sin hash).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UpdateUserRequest entrada de actualización parcial: solo los campos no
// nulos se aplican, cada uno a través del mutador de dominio correspondiente.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Empty indica si la petición no trae ningún campo a actualizar.
func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil && r.Role == nil
}
