package domain

import "time"

// Role — роль пользователя.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid — известна ли роль.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User — учётная запись. PasswordHash наружу не сериализуется.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary — минимальная проекция пользователя (владелец заказа).
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Principal — аутентифицированный субъект запроса.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// IsAdmin — расширенные права.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// CanAccess — админ видит всё, остальные — только свои записи.
func (p Principal) CanAccess(ownerID string) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// SystemPrincipal — субъект для внутренних источников (лента перевозчика).
var SystemPrincipal = Principal{ID: "system", Name: "carrier-feed", Role: RoleAdmin}

// RegisterInput — данные регистрации.
type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
}

// LoginInput — данные входа.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// AuthResult — результат успешной аутентификации.
type AuthResult struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}
