package dto

// CreateUserRequest entrada para registrar un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name     string `json:"name"`
	CPF      string `json:"cpf"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest campos opcionales; los nil no se modifican.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	CPF      *string `json:"cpf"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
}

// UserListResponse listado de usuarios activos.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}
