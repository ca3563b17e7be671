package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// lifecycle is the part of *fx.App used by run.
type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
	Err() error
}

const stopTimeout = 30 * time.Second

// run starts app, blocks until ctx is cancelled or app asks to stop, and
// returns the process exit code.
func run(ctx context.Context, app lifecycle, stderr io.Writer) int {
	if err := app.Err(); err != nil {
		fmt.Fprintf(stderr, "authkeeper: invalid setup: %v\n", err)
		return 2
	}
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "authkeeper: failed to start: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "authkeeper: failed to stop: %v\n", err)
		return 1
	}
	return 0
}
