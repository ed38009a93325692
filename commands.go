package main

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/pflag"

	"github.com/canbuoy/thor/logging"
	"github.com/canbuoy/thor/numeric"
	"github.com/canbuoy/thor/parmap"
	"github.com/canbuoy/thor/plot"
	"github.com/canbuoy/thor/sample"
)

var sampleCmd = command{
	summary: "write a sample input file (default " + sample.DefaultFilename + ")",
	run: func(_ context.Context, e *env) error {
		return sample.WriteInput(e.parser.Arg(0))
	},
}

var pairsCmd = command{
	summary: "sample random unique index pairs",
	flags: func(fs *pflag.FlagSet) {
		fs.Int("total", 0, "number of elements")
		fs.Int("pairs", 0, "number of pairs to draw")
		fs.Int64("seed", 0, "random seed (0 = fresh)")
	},
	run: func(_ context.Context, e *env) error {
		total, _ := e.parser.GetInt("total")
		n, _ := e.parser.GetInt("pairs")
		seed, _ := e.parser.GetInt64("seed")

		var r *rand.Rand
		if seed != 0 {
			r = rand.New(rand.NewSource(seed))
		}
		pairs, err := numeric.RandomPairs(r, total, n)
		if err != nil {
			return err
		}
		for _, p := range pairs {
			fmt.Fprintf(e.out, "%d %d\n", p[0], p[1])
		}
		return nil
	},
}

var maximaCmd = command{
	summary: "print the local maxima indices of the values (-- before negatives)",
	run: func(_ context.Context, e *env) error {
		values := make([]float64, e.parser.NArg())
		for i, arg := range e.parser.Args() {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return fmt.Errorf("value %d: %w", i, err)
			}
			values[i] = v
		}

		idx := numeric.Maxima(values)
		strs := make([]string, len(idx))
		for i, v := range idx {
			strs[i] = strconv.Itoa(v)
		}
		fmt.Fprintln(e.out, strings.Join(strs, " "))
		return nil
	},
}

var uniqueCmd = command{
	summary: "print the unique rows of a whitespace separated table",
	flags: func(fs *pflag.FlagSet) {
		fs.String("file", "", "table to read")
	},
	run: func(ctx context.Context, e *env) error {
		path, _ := e.parser.GetString("file")
		rows, err := readTable(ctx, path, e.opts)
		if err != nil {
			return err
		}
		unique, err := numeric.UniqueRows(rows)
		if err != nil {
			return err
		}
		for _, row := range unique {
			fmt.Fprintln(e.out, formatRow(row))
		}
		return nil
	},
}

var parmapCmd = command{
	summary: "time a parallel map of sleeping jobs",
	flags: func(fs *pflag.FlagSet) {
		fs.Int("jobs", 48, "number of jobs")
		fs.Duration("sleep", 100*time.Millisecond, "time each job sleeps")
	},
	run: func(ctx context.Context, e *env) error {
		n, _ := e.parser.GetInt("jobs")
		sleep, _ := e.parser.GetDuration("sleep")

		jobs := make([]int, n)
		for i := range jobs {
			jobs[i] = i
		}

		var done atomic.Int64
		start := time.Now()
		out, err := parmap.Map(ctx, func(ctx context.Context, job int) (int, error) {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(sleep):
			}
			logging.Progress(ctx, e.log, "mapping", "done", done.Add(1), "of", n)
			return job * job, nil
		}, jobs, e.opts...)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		e.log.Info("parmap finished", "results", len(out))

		fmt.Fprintf(e.out, "mapped %d jobs in %s (serial: %s)\n", len(out), elapsed.Round(time.Millisecond), time.Duration(n)*sleep)
		fmt.Fprintln(e.out, e.stats)
		return nil
	},
}

var plotCmd = command{
	summary: "plot a shot's polar intensities (columns: q phi intensity)",
	flags: func(fs *pflag.FlagSet) {
		fs.String("input", "", "shot table to read")
		fs.String("output", "", "image to write (default: temp file)")
	},
	run: func(ctx context.Context, e *env) error {
		input, _ := e.parser.GetString("input")
		output, _ := e.parser.GetString("output")

		rows, err := readTable(ctx, input, e.opts)
		if err != nil {
			return err
		}
		shot, err := newTableShot(rows)
		if err != nil {
			return err
		}
		return plot.PolarIntensities(shot, output)
	},
}
