package actor

import "errors"

var (
	// ErrNoPendingRequest is returned by Forward when called outside the
	// scope of a request envelope. Reply has no equivalent error: replying
	// without a pending request is a silent no-op.
	ErrNoPendingRequest = errors.New("actor: no pending request in scope")
)
