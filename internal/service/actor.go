package service

import "github.com/Joechristian9/SituationalReport-sub000/internal/model"

// Actor the authenticated user performing an operation. Passed explicitly to
// every mutating call.
type Actor struct {
	ID   string
	Name string
	Role string
}

// IsAdmin reports whether the actor manages typhoons and reference data
func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

func (a Actor) snapshot() model.UserSnapshot {
	return model.UserSnapshot{ID: a.ID, Name: a.Name}
}
