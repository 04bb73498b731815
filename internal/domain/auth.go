package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso da API
const (
	RoleAdmin   = 1
	RoleManager = 2
	RoleViewer  = 3
)

type Claims struct {
	UserID     string
	UserName   string
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}

// IsAdmin indica se o usuário pode trocar o provedor e disparar sincronizações
func (c *Claims) IsAdmin() bool {
	return c != nil && c.UserRoleID == RoleAdmin
}
