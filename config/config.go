package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/canbuoy/thor/parmap"
)

// Config holds the defaults of the odin command line. Flags override it.
type Config struct {
	Workers       int          // ODIN_WORKERS
	MaxConcurrent int          // ODIN_MAX_CONCURRENT, 0 runs every worker at once
	Order         parmap.Order // ODIN_ORDER: input | interleaved
	Verbose       bool         // ODIN_VERBOSE
	OTLPEndpoint  string       // ODIN_OTLP_ENDPOINT, host:port; empty disables tracing
}

// Load reads the given .env files (".env" when none are given; missing
// files are ignored), then the ODIN_* environment variables. Variables
// already set in the environment win over .env entries.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := &Config{
		OTLPEndpoint: os.Getenv("ODIN_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.Workers, err = getInt("ODIN_WORKERS", parmap.DefaultWorkers); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrent, err = getInt("ODIN_MAX_CONCURRENT", 0); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = getBool("ODIN_VERBOSE", false); err != nil {
		return nil, err
	}
	if cfg.Order, err = parmap.ParseOrder(os.Getenv("ODIN_ORDER")); err != nil {
		return nil, fmt.Errorf("config: ODIN_ORDER: %w", err)
	}

	return cfg, nil
}

// MaxParallelism is the number of goroutines that can actually run at once.
func MaxParallelism() int {
	maxProcs := runtime.GOMAXPROCS(0)
	numCPU := runtime.NumCPU()
	if maxProcs < numCPU {
		return maxProcs
	}
	return numCPU
}

func getInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer", k, v)
	}
	return n, nil
}

func getBool(k string, fallback bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a boolean", k, v)
	}
	return b, nil
}
