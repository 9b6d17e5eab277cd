package model

import "github.com/google/uuid"

// Principal is the authenticated caller resolved from the access token.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsDriver() bool {
	return p.Role == RoleDriver
}
