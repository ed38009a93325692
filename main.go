package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/canbuoy/thor/argparse"
	"github.com/canbuoy/thor/config"
	"github.com/canbuoy/thor/logging"
	"github.com/canbuoy/thor/parmap"
	"github.com/canbuoy/thor/pkg/tracer"
)

// command is one odin subcommand. flags defines its own flags on the
// parser; run executes it after parsing.
type command struct {
	summary string
	flags   func(fs *pflag.FlagSet)
	run     func(ctx context.Context, env *env) error
}

var commands = map[string]command{
	"sample": sampleCmd,
	"pairs":  pairsCmd,
	"maxima": maximaCmd,
	"unique": uniqueCmd,
	"parmap": parmapCmd,
	"plot":   plotCmd,
}

// env is what a command sees after parsing.
type env struct {
	parser *argparse.Parser
	out    io.Writer
	log    *slog.Logger
	opts   []parmap.Option
	stats  *parmap.Stats
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		usage(stderr)
		return 2
	}
	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "odin: unknown command %q\n", name)
		usage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	p := newParser(name, cmd, cfg, stdout, stderr)
	p.Quiet = quietRequested(name, cmd, cfg, args[1:])
	if err := p.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	workers, _ := p.GetInt("workers")
	maxConcurrent, _ := p.GetInt("max-concurrent")
	order, _ := p.GetString("order")
	verbose, _ := p.GetBool("verbose")
	endpoint, _ := p.GetString("otlp-endpoint")

	log := logging.Setup(logging.Options{Writer: stderr, Verbose: verbose})

	ord, err := parmap.ParseOrder(order)
	if err != nil {
		log.Error("bad --order", "err", err)
		return 2
	}

	if endpoint != "" {
		shutdown, err := tracer.Init(ctx, endpoint)
		if err != nil {
			log.Error("can not init tracing", "err", err)
			return 1
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("can not flush traces", "err", err)
			}
		}()
	}

	e := &env{
		parser: p,
		out:    stdout,
		log:    logging.Named(name),
		stats:  &parmap.Stats{},
	}
	e.opts = []parmap.Option{
		parmap.WithWorkers(workers),
		parmap.WithMaxConcurrent(maxConcurrent),
		parmap.WithOrder(ord),
		parmap.WithLogger(logging.Named("parmap")),
		parmap.WithStats(e.stats),
	}

	if err := cmd.run(ctx, e); err != nil {
		log.Error("odin "+name+" failed", "err", err)
		return 1
	}
	return 0
}

// newParser defines the global flags, defaulted from cfg, followed by the
// command's own.
func newParser(name string, cmd command, cfg *config.Config, stdout, stderr io.Writer) *argparse.Parser {
	p := argparse.New("odin "+name, cmd.summary)
	p.Out = stdout
	p.SetOutput(stderr)
	p.IntP("workers", "w", cfg.Workers, "number of parallel workers (partitions)")
	p.Int("max-concurrent", cfg.MaxConcurrent,
		fmt.Sprintf("workers allowed to run at once (0 = all; this machine runs %d in parallel)", config.MaxParallelism()))
	p.String("order", cfg.Order.String(), "result order: input or interleaved")
	p.BoolP("verbose", "v", cfg.Verbose, "debug logging")
	p.BoolP("quiet", "q", false, "skip the banner and argument echo")
	p.String("otlp-endpoint", cfg.OTLPEndpoint, "export traces over OTLP/HTTP to host:port")
	if cmd.flags != nil {
		cmd.flags(p.FlagSet)
	}
	return p
}

// quietRequested parses args on a silent copy of the command's parser. The
// banner is printed before parsing, so --quiet has to be known up front.
func quietRequested(name string, cmd command, cfg *config.Config, args []string) bool {
	p := newParser(name, cmd, cfg, io.Discard, io.Discard)
	p.Quiet = true
	if err := p.Parse(args); err != nil {
		return false
	}
	quiet, _ := p.GetBool("quiet")
	return quiet
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Usage: odin <command> [flags]\n\nCommands:\n")
	for _, n := range names {
		fmt.Fprintf(&sb, "  %-8s %s\n", n, commands[n].summary)
	}
	sb.WriteString("\nRun 'odin <command> --help' for the flags of a command.\n")
	sb.WriteString("Put -- before positional values that start with '-', as in 'odin maxima -- 3 -1 2'.\n")
	fmt.Fprint(w, sb.String())
}
