package models

// Actor is the authenticated caller of a state-changing operation, as
// extracted from the session token.
type Actor struct {
	ID   uint
	Name string
	Role UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
