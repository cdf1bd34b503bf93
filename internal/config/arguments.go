package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/moscovium115/txgen/internal/version"
)

type Args struct {
	// Transmit device; empty selects the first Ethernet-framing device.
	Interface string

	// Frame generation
	Count    uint64 // number of frames to send, 0 = until stopped
	PoolSize uint   // pre-allocated packet buffers

	// Timing
	Interval time.Duration // pacing delay between transmit attempts
	Backoff  time.Duration // delay after buffer pool exhaustion

	// Logging
	Log      string // log file path, empty means stderr only
	LogLevel string // log level: debug, info, warn, error
	Json     bool   // JSON-formatted logs
}

func ParseArgs() (Args, error) {
	var args Args
	var showVersion bool

	// Set custom usage message
	flag.Usage = func() {
		println("txgen - synthetic traffic generator")
		println()
		println("Continuously transmits a fixed Ethernet/IPv4/UDP frame on one network interface.")
		println()
		println("Usage:")
		println("  txgen [OPTIONS]")
		println()
		println("Examples:")
		println("  txgen                          # transmit on the first Ethernet device")
		println("  txgen -I eth1 -i 50ms          # transmit on eth1 every 50ms")
		println("  txgen -c 1000 -l txgen.log     # send 1000 frames, log to a file")
		println()
		println("Options:")
		flag.PrintDefaults()
	}

	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.StringVarP(&args.Interface, "interface", "I", "", "Transmit device (default: first Ethernet-framing device)")
	flag.Uint64VarP(&args.Count, "count", "c", 0, "Number of frames to send (0 = until stopped)")
	flag.UintVarP(&args.PoolSize, "pool-size", "P", 1023, "Number of pre-allocated packet buffers")
	flag.DurationVarP(&args.Interval, "interval", "i", 200*time.Millisecond, "Delay between transmit attempts")
	flag.DurationVarP(&args.Backoff, "backoff", "b", 100*time.Millisecond, "Delay after buffer pool exhaustion")
	flag.StringVarP(&args.Log, "log", "l", "", "Diagnostic log file (empty = stderr only)")
	flag.StringVar(&args.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVarP(&args.Json, "json-logs", "J", false, "Write JSON-formatted logs")
	flag.Parse()

	// Handle version flag
	if showVersion {
		fmt.Println(version.FullVersion())
		os.Exit(0)
	}

	return args, args.validate()
}

func (a Args) validate() error {
	switch {
	case a.PoolSize == 0:
		return errors.New("pool size must be at least 1")
	case a.PoolSize > 1<<20:
		return errors.New("pool size is unreasonably large")
	case a.Interval <= 0:
		return errors.New("interval must be positive")
	case a.Backoff <= 0:
		return errors.New("backoff must be positive")
	}
	return nil
}
