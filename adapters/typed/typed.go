// Package typed adapts the actor package's Matches/Apply partial-function
// handler to type-keyed dispatch: register one func(ctx, T) error per
// message type instead of writing the type switch by hand.
package typed

import (
	"reflect"

	"github.com/codewandler/actorkit/core/actor"
)

// Registrar collects typed handler registrations before Build assembles
// them into a single actor.Handler. Keying is by exact reflect.Type: a
// message sent as *T only matches a registration for *T, never one for T,
// so dispatch never hits a failed assertion from pointer/value mismatch.
type Registrar struct {
	entries map[reflect.Type]func(*actor.Context, any) error
}

// NewRegistrar creates an empty Registrar.
func NewRegistrar() *Registrar {
	return &Registrar{entries: make(map[reflect.Type]func(*actor.Context, any) error)}
}

// On registers fn to handle every message whose dynamic type is exactly T.
// A second On call for the same T replaces the first. On is a free
// function, not a method, because Go methods cannot take their own type
// parameters.
func On[T any](r *Registrar, fn func(ctx *actor.Context, msg T) error) *Registrar {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.entries[t] = func(ctx *actor.Context, msg any) error {
		return fn(ctx, msg.(T))
	}
	return r
}

// Build returns an actor.Handler that matches exactly the message types
// registered via On, dispatching each to its registered function. Messages
// of unregistered types are left unmatched, per the partial-function
// contract: they remain in the mailbox for another handler installation.
func (r *Registrar) Build() actor.Handler {
	return actor.When(
		func(msg any) bool {
			_, ok := r.entries[reflect.TypeOf(msg)]
			return ok
		},
		func(ctx *actor.Context, msg any) error {
			fn := r.entries[reflect.TypeOf(msg)]
			return fn(ctx, msg)
		},
	)
}
