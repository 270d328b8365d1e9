package actor

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type echoMsg struct{ v any }

func newEchoActor(t *testing.T, onSameThread bool) (*Actor, chan any) {
	out := make(chan any, 64)
	a := New(Options{OnSameThread: onSameThread}, Any(func(ctx *Context, msg any) error {
		out <- msg
		return nil
	}))
	t.Cleanup(func() {})
	return a, out
}

func TestActor_SendIsFireAndForget(t *testing.T) {
	a, out := newEchoActor(t, false)
	a.Send("hello")

	select {
	case v := <-out:
		require.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("message was never delivered")
	}
}

func TestActor_MessagesProcessedInOrder(t *testing.T) {
	a, out := newEchoActor(t, false)
	for i := 0; i < 20; i++ {
		a.Send(i)
	}

	for i := 0; i < 20; i++ {
		select {
		case v := <-out:
			require.Equal(t, i, v)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for message %d", i)
		}
	}
}

func TestActor_OnSameThreadRunsInline(t *testing.T) {
	a, out := newEchoActor(t, true)
	a.Send("inline")

	select {
	case v := <-out:
		require.Equal(t, "inline", v)
	default:
		t.Fatal("inline send should have already delivered the message")
	}
}

func TestActor_UnmatchedMessageStaysInMailbox(t *testing.T) {
	var handled []string
	a := New(Options{}, When(
		func(msg any) bool { return msg == "known" },
		func(ctx *Context, msg any) error {
			handled = append(handled, msg.(string))
			return nil
		},
	))

	a.Send("unknown")
	a.Send("known")

	deadline := time.After(time.Second)
	for {
		a.mu.Lock()
		h := len(handled)
		a.mu.Unlock()
		if h == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("known message was never handled")
		case <-time.After(time.Millisecond):
		}
	}
	require.Equal(t, []string{"known"}, handled)
}

func TestActor_PriorityHandlerDrainsBeforeNormal(t *testing.T) {
	var order []string
	var mu sync.Mutex
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	gate := make(chan struct{})
	a := New(Options{
		PriorityHandler: When(
			func(msg any) bool { return msg == "p1" },
			func(ctx *Context, msg any) error {
				record("priority:" + msg.(string))
				return nil
			},
		),
	}, Any(func(ctx *Context, msg any) error {
		<-gate
		record("normal:" + msg.(string))
		return nil
	}))

	a.Send("n1")
	a.SendPriority("p1")
	close(gate)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 2
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "priority:p1", order[0])
	require.Equal(t, "normal:n1", order[1])
}

func TestActor_AskBlockingRoundTrip(t *testing.T) {
	type req struct{ n int }
	a := New(Options{}, When(
		func(msg any) bool { _, ok := msg.(req); return ok },
		func(ctx *Context, msg any) error {
			ctx.Reply(msg.(req).n * 2)
			return nil
		},
	))

	v, err := a.AskBlocking(t.Context(), req{n: 21})
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestActor_AskBlockingTimeoutExpires(t *testing.T) {
	a := New(Options{}, Any(func(ctx *Context, msg any) error {
		time.Sleep(50 * time.Millisecond)
		ctx.Reply("too late")
		return nil
	}))

	_, ok := a.AskBlockingTimeout("x", 5*time.Millisecond)
	require.False(t, ok)
}

func TestActor_ForwardCarriesFutureToTargetActor(t *testing.T) {
	type ping struct{}
	type relay struct{}

	target := New(Options{}, When(
		func(msg any) bool { _, ok := msg.(ping); return ok },
		func(ctx *Context, msg any) error {
			ctx.Reply("pong")
			return nil
		},
	))

	source := New(Options{}, When(
		func(msg any) bool { _, ok := msg.(relay); return ok },
		func(ctx *Context, msg any) error {
			return ctx.Forward(ping{}, target)
		},
	))

	v, err := source.AskBlocking(t.Context(), relay{})
	require.NoError(t, err)
	require.Equal(t, "pong", v)
}

func TestActor_ForwardWithoutPendingRequestErrors(t *testing.T) {
	target := New(Options{}, Any(func(ctx *Context, msg any) error { return nil }))

	var forwardErr error
	done := make(chan struct{})
	a := New(Options{}, Any(func(ctx *Context, msg any) error {
		forwardErr = ctx.Forward("x", target)
		close(done)
		return nil
	}))

	a.Send("fire-and-forget")
	<-done
	require.ErrorIs(t, forwardErr, ErrNoPendingRequest)
}

func TestActor_UnmatchedExceptionResetsProcessingAndKeepsActorUsable(t *testing.T) {
	var handled []string
	var mu sync.Mutex
	a := New(Options{Logger: discardLogger()}, Any(func(ctx *Context, msg any) error {
		if msg == "boom" {
			return errors.New("boom")
		}
		mu.Lock()
		handled = append(handled, msg.(string))
		mu.Unlock()
		return nil
	}))

	a.Send("boom")
	a.Send("after")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) == 1
	}, time.Second, time.Millisecond)
}

func TestActor_ExceptionHandlerSwallowsMatchedErrors(t *testing.T) {
	var caught error
	a := New(Options{
		ExceptionHandler: CatchAll(func(ctx *Context, err error) {
			caught = err
		}),
	}, Any(func(ctx *Context, msg any) error {
		return errors.New("handled elsewhere")
	}))

	done := make(chan struct{})
	a.Send("trigger")
	go func() {
		require.Eventually(t, func() bool { return caught != nil }, time.Second, time.Millisecond)
		close(done)
	}()
	<-done
	require.EqualError(t, caught, "handled elsewhere")
}

func TestActor_InlinePanicOnEveryMessageDoesNotRecurse(t *testing.T) {
	a := New(Options{OnSameThread: true, Logger: discardLogger()}, Any(func(ctx *Context, msg any) error {
		panic("boom")
	}))

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Send("x")
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.mailbox.Empty() && len(a.stagingNormal) == 0 && len(a.stagingPriority) == 0
	}, time.Second, time.Millisecond)
}

func TestActor_PanicDuringUnwindDoesNotRaceConcurrentSend(t *testing.T) {
	var handled int64
	a := New(Options{Logger: discardLogger()}, Any(func(ctx *Context, msg any) error {
		if msg == "boom" {
			panic("boom")
		}
		atomic.AddInt64(&handled, 1)
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				a.Send("boom")
			} else {
				a.Send("ok")
			}
		}(i)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&handled) == 50
	}, time.Second, time.Millisecond)
}

func TestActor_AroundWrapperRunsOutsideIn(t *testing.T) {
	var order []string
	var mu sync.Mutex
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	outer := func(next func()) func() {
		return func() {
			record("outer-before")
			next()
			record("outer-after")
		}
	}
	inner := func(next func()) func() {
		return func() {
			record("inner-before")
			next()
			record("inner-after")
		}
	}

	a := New(Options{Wrappers: []AroundWrapper{outer, inner}}, Any(func(ctx *Context, msg any) error {
		record("handler")
		return nil
	}))

	a.Send("go")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 5
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"outer-before", "inner-before", "handler", "inner-after", "outer-after"}, order)
}
