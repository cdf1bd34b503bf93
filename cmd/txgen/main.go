package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/moscovium115/txgen/internal/config"
	"github.com/moscovium115/txgen/internal/gen"
	"github.com/moscovium115/txgen/internal/pool"
	"github.com/moscovium115/txgen/internal/port"
)

func main() {
	args, err := config.ParseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	logFile, err := config.SetupLogging(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	slog.Debug("Starting traffic generator",
		"interface", args.Interface,
		"pool_size", args.PoolSize,
		"interval", args.Interval,
	)

	bufs := pool.New(int(args.PoolSize))

	p, err := port.Open(args.Interface, bufs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open transmit port: %v\n", err)
		os.Exit(1)
	}

	g := gen.New(bufs, p, gen.Options{
		Interval: args.Interval,
		Backoff:  args.Backoff,
		Count:    args.Count,
	})

	slog.Info("Transmitting", "device", p.Name())

	// Set up signal handling for Ctrl+C; the handler path does nothing
	// beyond requesting a stop.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Run in a goroutine so we can handle signals
	done := make(chan error)
	go func() {
		done <- g.Run()
	}()

	// Wait for either completion or a termination signal
	select {
	case err = <-done:
		if err != nil {
			slog.Error("Generator error", "error", err)
			p.Close()
			os.Exit(1)
		}
	case <-sigChan:
		slog.Debug("Received termination signal, stopping...")
		g.Stop()
		// Wait for Run() to finish its current iteration
		if err = <-done; err != nil {
			slog.Error("Error during shutdown", "error", err)
			p.Close()
			os.Exit(1)
		}
	}

	p.Close()

	stats := g.Stats()
	slog.Info("Traffic generator stopped",
		"sent", stats.Sent,
		"rejected", stats.Rejected,
		"pool_exhausted", stats.Exhausted,
	)
}
