package entities

import "strings"

// ActorRole закрытый набор ролей. Строки живут только на границе (JWT, DTO).
type ActorRole uint8

const (
	RoleUnknown ActorRole = iota
	RoleBusiness
	RoleRider
	RoleAdmin
)

func (r ActorRole) String() string {
	switch r {
	case RoleBusiness:
		return "business"
	case RoleRider:
		return "rider"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func ParseActorRole(s string) (ActorRole, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "business":
		return RoleBusiness, true
	case "rider":
		return RoleRider, true
	case "admin":
		return RoleAdmin, true
	default:
		return RoleUnknown, false
	}
}

// Actor результат AuthContext, движок ему доверяет и креды не перепроверяет.
type Actor struct {
	ID         string
	Role       ActorRole
	IsVerified bool
}
