package actormock

import (
	"context"

	"scholarship-portal-backend/internal/domain/actor"
	"scholarship-portal-backend/internal/domain/application"
)

// Roles is a map-backed RoleProvider. Unknown actors get ErrForbidden,
// matching the production directory.
type Roles map[string]actor.Role

func (r Roles) RoleOf(_ context.Context, actorID string) (actor.Role, error) {
	role, ok := r[actorID]
	if !ok {
		return "", actor.ErrForbidden
	}
	return role, nil
}

// Docs is a DocumentStore stub; the zero value reports every application
// as fully documented. Set Missing to make specific applications fail.
type Docs struct {
	Missing map[string]bool
	Err     error
}

func (d *Docs) HasVerifiedDocuments(_ context.Context, applicationID string, _ application.ScholarshipType) (bool, error) {
	if d.Err != nil {
		return false, d.Err
	}
	return !d.Missing[applicationID], nil
}

// Sink records notifications as "event applicationID" strings.
type Sink struct {
	Events []string
}

func (s *Sink) Notify(_ context.Context, applicationID, event string) {
	s.Events = append(s.Events, event+" "+applicationID)
}
