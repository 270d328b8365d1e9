package actor

import (
	"fmt"
	"sync"

	"github.com/codewandler/actorkit/core/ds"
)

// System is a process-local registry of named actors. It does not provide
// location transparency or remote addressing: it is a convenience for
// looking up actors by name within a single process, e.g. so a handler can
// Context.Forward to a collaborator it only knows by name.
type System struct {
	mu     sync.RWMutex
	actors map[string]*Actor
	names  *ds.StringSet
}

// NewSystem creates an empty actor registry.
func NewSystem() *System {
	return &System{
		actors: make(map[string]*Actor),
		names:  ds.NewStringSet(),
	}
}

// Register adds a to the registry under its Name. It returns an error if
// the name is already taken.
func (s *System) Register(a *Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.actors[a.name]; exists {
		return fmt.Errorf("actor: name %q already registered", a.name)
	}
	s.actors[a.name] = a
	s.names.Add(a.name)
	return nil
}

// Lookup returns the actor registered under name, if any.
func (s *System) Lookup(name string) (*Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.actors[name]
	return a, ok
}

// Remove unregisters the actor under name, if present. It does not stop
// the actor or drain its mailbox: an unregistered actor already holding a
// reference from elsewhere keeps running.
func (s *System) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.actors, name)
	s.names.Remove(name)
}

// Names returns a snapshot of the currently registered actor names, in
// registration order.
func (s *System) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names.Values()
}
