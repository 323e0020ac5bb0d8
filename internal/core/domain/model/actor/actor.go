package actor

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through NewDispatcher or NewTechnician.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewDispatcher or NewTechnician constructor")

// Actor is the resolved (identity, role) pair the authentication collaborator
// supplies per request. A technician's identity is matched against work-order
// assignees; a dispatcher's identity is only used for attribution.
type Actor struct {
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewDispatcher creates an actor carrying the dispatcher role.
func NewDispatcher(id kernel.UUID) (Actor, error) {
	return newActor(id, Dispatcher)
}

// NewTechnician creates an actor carrying the technician role.
func NewTechnician(id kernel.UUID) (Actor, error) {
	return newActor(id, Technician)
}

// NewActor creates an actor with an explicit role, for callers that resolved
// the role from an external representation.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	return newActor(id, role)
}

func newActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was built through a constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsDispatcher reports whether the actor carries the dispatcher role.
func (a Actor) IsDispatcher() bool {
	return a.role == Dispatcher
}

// IsTechnician reports whether the actor carries the technician role.
func (a Actor) IsTechnician() bool {
	return a.role == Technician
}
