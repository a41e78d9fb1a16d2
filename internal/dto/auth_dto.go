package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BirthDate  string `json:"birthDate"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries a partial profile update; empty fields are left
// unchanged, and the password is re-hashed only when one is supplied.
type UpdateUserRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BirthDate  string `json:"birthDate"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Role       string `json:"role"`
}

type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    IdentityInfo `json:"user"`
}

// IdentityInfo mirrors the identity context carried by the token.
type IdentityInfo struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type TokenInfo struct {
	IssuedAt  string `json:"issuedAt"`
	ExpiresAt string `json:"expiresAt"`
}

type MeResponse struct {
	Message   string       `json:"message"`
	User      IdentityInfo `json:"user"`
	TokenInfo TokenInfo    `json:"tokenInfo"`
}

type TokenDiagnostics struct {
	CurrentTime     string `json:"currentTime"`
	TokenIssuedAt   string `json:"tokenIssuedAt"`
	TokenExpiresAt  string `json:"tokenExpiresAt"`
	TimeLeftSeconds int64  `json:"timeLeftSeconds"`
	User            string `json:"user"`
	Role            string `json:"role"`
}
