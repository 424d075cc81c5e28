// Package main is the entry point for the wrapitup CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wrapitup/internal/backend/firestore"
	"wrapitup/internal/cli"
	"wrapitup/internal/commands"
	"wrapitup/internal/config"
	"wrapitup/internal/task"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create store factory
	factory := func(ctx context.Context, cfg *config.Config) (task.Store, error) {
		return firestore.New(ctx, cfg)
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
