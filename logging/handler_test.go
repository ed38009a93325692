package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = regexp.MustCompile(`\d\d:\d\d:\d\d\.\d{3} `)

// strip removes timestamps so the output can be compared verbatim.
func strip(s string) string {
	return stamp.ReplaceAllString(s, "")
}

func newTestLogger(opts *HandlerOptions) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(NewHandler(buf, opts)), buf
}

func TestHandler_Format(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)
	log.Info("wrote sample", "file", "sample.odin", "bytes", 1024)

	assert.Regexp(t, `^\d\d:\d\d:\d\d\.\d{3} wrote sample file=sample.odin bytes=1024\n$`, buf.String())
}

func TestHandler_Level(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)
	log.Debug("hidden")
	log.Warn("shown")
	assert.Equal(t, "shown\n", strip(buf.String()))

	log, buf = newTestLogger(&HandlerOptions{Level: slog.LevelDebug})
	log.Debug("shown")
	assert.Equal(t, "shown\n", strip(buf.String()))
}

func TestHandler_SameLineAppends(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)
	ctx := context.Background()

	log.Info("test1")
	for _, s := range []string{"2", "1", "0"} {
		Progress(ctx, log, "remaining "+s+" seconds")
	}
	log.Info("test2")

	assert.Equal(t,
		"test1\nremaining 2 seconds... remaining 1 seconds... remaining 0 seconds... \ntest2\n",
		strip(buf.String()))
}

func TestHandler_SameLineTerminal(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewHandler(buf, nil)
	h.out.terminal = true
	log := slog.New(h)

	Progress(context.Background(), log, "mapped", "done", 1)
	Progress(context.Background(), log, "mapped", "done", 2)
	log.Info("finished")

	assert.Equal(t,
		eraseLine+"mapped done=1"+eraseLine+"mapped done=2\nfinished\n",
		strip(buf.String()))
}

func TestHandler_SameLineFalse(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)
	log.Info("a", SameLineKey, false)
	log.Info("b")
	assert.Equal(t, "a\nb\n", strip(buf.String()))
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)
	log.With("run", "r1").WithGroup("worker").With("id", 3).Info("started", "items", 4)

	assert.Equal(t, "started run=r1 worker.id=3 worker.items=4\n", strip(buf.String()))

	buf.Reset()
	log.Info("nested", slog.Group("shot", "q", 1.5, "phi", 0.25))
	assert.Equal(t, "nested shot.q=1.5 shot.phi=0.25\n", strip(buf.String()))
}

func TestHandler_WithAttrsDoesNotLeak(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)
	_ = log.With("a", 1)
	log.Info("plain")
	assert.Equal(t, "plain\n", strip(buf.String()))
}

func TestHandler_Error(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)
	log.Error("map failed", "err", errors.New("partition 2 crashed"))

	out := strip(buf.String())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "map failed err=partition 2 crashed", lines[0])
	assert.Contains(t, lines[1], "TestHandler_Error")
	assert.Contains(t, lines[1], "handler_test.go")
}

func TestHandler_Concurrent(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(nil)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				log.Info("tick", "worker", i, "n", j)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 400)
	for _, l := range lines {
		assert.Regexp(t, `^\d\d:\d\d:\d\d\.\d{3} tick worker=\d n=\d+$`, l)
	}
}
