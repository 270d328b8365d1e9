// Command bench drives N fire-and-forget sends through M actors on a
// single Executor and reports throughput. It exists to exercise the
// Executor's core/max-thread burst behavior under load.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/codewandler/actorkit/core/actor"
)

var (
	logLevel = slog.LevelInfo
	N        = getEnvInt("N", 200_000)
	actors   = getEnvInt("ACTORS", 64)
	core     = getEnvInt("CORE_THREADS", 16)
	maxT     = getEnvInt("MAX_THREADS", 256)
)

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, fmt.Sprintf("%d", fallback)))
	if err != nil {
		return fallback
	}
	return v
}

type tick struct{}
type drained struct{}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	executor := actor.NewExecutor(actor.ExecutorOptions{
		CoreThreads: core,
		MaxThreads:  maxT,
		Logger:      log,
	})
	defer executor.Shutdown()

	counts := make([]int, actors)
	pool := make([]*actor.Actor, actors)
	for i := range pool {
		slot := i
		pool[i] = actor.New(actor.Options{Executor: executor, Logger: log}, actor.Any(
			func(ctx *actor.Context, msg any) error {
				switch msg.(type) {
				case tick:
					counts[slot]++
				case drained:
					ctx.Reply(nil)
				}
				return nil
			},
		))
	}

	start := time.Now()
	for i := 0; i < N; i++ {
		pool[i%actors].Send(tick{})
	}
	for _, a := range pool {
		if _, err := a.AskBlocking(context.Background(), drained{}); err != nil {
			log.Error("drain barrier failed", slog.Any("err", err))
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	total := 0
	for _, c := range counts {
		total += c
	}

	fmt.Printf("processed %d messages across %d actors in %s (%.0f msg/s)\n",
		total, actors, elapsed, float64(total)/elapsed.Seconds())
}
