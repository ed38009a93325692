package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		SetVerbose(false)
	})

	buf := &bytes.Buffer{}
	logger := Setup(Options{Writer: buf})
	assert.Same(t, logger, slog.Default())

	Named("sample").Info("Wrote: sample.odin")
	Named("parmap").Debug("hidden")
	assert.Equal(t, "Wrote: sample.odin logger=sample\n", strip(buf.String()))

	buf.Reset()
	SetVerbose(true)
	Named("parmap").Debug("worker started", "partition", 0)
	assert.Equal(t, "worker started logger=parmap partition=0\n", strip(buf.String()))

	buf.Reset()
	SetVerbose(false)
	Named("parmap").Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestProgress(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := slog.New(NewHandler(buf, nil))

	Progress(context.Background(), log, "mapping", "done", 3, "of", 12)
	assert.Equal(t, "mapping done=3 of=12... ", strip(buf.String()))
}
