// Command pqbench benchmarks concurrent priority queues.
//
// Usage:
//
//	go run ./cmd/pqbench run --threads 8 --pushes 10000 --pops 10000
//	go run ./cmd/pqbench run --format graph > results.txt
//	go run ./cmd/pqbench history --db results.db
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/randomizedcoder/elimination-pq/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
