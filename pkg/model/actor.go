package model

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
