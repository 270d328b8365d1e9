// Package app provides a small process bootstrap for programs built on
// top of the actor package: a shared [actor.Executor], a named
// [actor.System] registry, and a cancellable lifecycle, wired together
// with sensible defaults.
//
// # Basic Usage
//
//	application := app.New(app.Config{})
//	defer application.Stop()
//
//	greeter, err := application.Spawn("greeter", actor.Any(
//	    func(ctx *actor.Context, msg any) error {
//	        fmt.Println("hello", msg)
//	        return nil
//	    },
//	), actor.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	greeter.Send("world")
//
//	<-application.Done()
package app
