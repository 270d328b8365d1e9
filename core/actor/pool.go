package actor

import (
	"strconv"

	"github.com/codewandler/actorkit/internal/shard"
)

// Pool (not to be confused with the Executor's WorkerPool) is a fixed set
// of actors that messages are routed across by key: all messages for the
// same key always land on the same actor, so they are processed in
// submission order, while different keys are handled by different actors
// running concurrently. It is the actor-native replacement for routing
// work through a per-key serialization scheduler: each slot already
// serializes its own mailbox, so no separate scheduler is needed.
type Pool struct {
	actors  []*Actor
	sharder shard.Sharder
}

// NewPool creates size actors via newHandler (called once per slot) and
// wires them behind FNV-based key sharding. opts is applied to every
// actor in the pool; opts.Name, if set, is suffixed with the slot index.
func NewPool(size int, opts Options, newHandler func(slot int) Handler) *Pool {
	if size <= 0 {
		size = 1
	}
	actors := make([]*Actor, size)
	baseName := opts.Name
	for i := 0; i < size; i++ {
		slotOpts := opts
		if baseName != "" {
			slotOpts.Name = baseName + "-" + strconv.Itoa(i)
		}
		actors[i] = New(slotOpts, newHandler(i))
	}
	return &Pool{actors: actors, sharder: shard.Distributed(size)}
}

// Route returns the actor responsible for key.
func (p *Pool) Route(key string) *Actor {
	return p.actors[p.sharder.GetShardForKey(key)]
}

// Send routes m to the actor for key and sends it fire-and-forget.
func (p *Pool) Send(key string, m any) { p.Route(key).Send(m) }

// Ask routes m to the actor for key and returns its request Future.
func (p *Pool) Ask(key string, m any) *Future { return p.Route(key).Ask(m) }

// Actors returns the pool's actors in slot order.
func (p *Pool) Actors() []*Actor { return p.actors }
