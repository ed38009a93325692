package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canbuoy/thor/argparse"
	"github.com/canbuoy/thor/config"
	"github.com/canbuoy/thor/parmap"
	"github.com/canbuoy/thor/sample"
)

func runOdin(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	for _, k := range []string{"ODIN_WORKERS", "ODIN_MAX_CONCURRENT", "ODIN_ORDER", "ODIN_VERBOSE", "ODIN_OTLP_ENDPOINT"} {
		t.Setenv(k, "")
	}

	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runOdin(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage: odin <command>")
	for name := range commands {
		assert.Contains(t, stderr, name)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runOdin(t, "thunder")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "thunder"`)
}

func TestRun_BadFlag(t *testing.T) {
	code, _, _ := runOdin(t, "pairs", "--nope")
	assert.Equal(t, 2, code)

	code, _, stderr := runOdin(t, "maxima", "-q", "--order", "sorted", "1")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "bad --order")
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runOdin(t, "unique", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "--file")
	assert.Contains(t, stderr, "--workers")
}

func TestRun_BannerAndEcho(t *testing.T) {
	code, stdout, _ := runOdin(t, "maxima", "--workers", "3", "1", "2", "1")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, argparse.Banner)
	assert.Contains(t, stdout, `"workers"`)
	assert.Contains(t, stdout, `"3"`)
	assert.True(t, strings.HasSuffix(stdout, "1\n"))
}

func TestRun_Quiet(t *testing.T) {
	code, stdout, _ := runOdin(t, "maxima", "-q", "1", "3", "2", "5", "4")
	require.Equal(t, 0, code)
	assert.Equal(t, "1 3\n", stdout)
}

func TestRun_Sample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.odin")
	code, _, stderr := runOdin(t, "sample", "-q", path)
	require.Equal(t, 0, code, stderr)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample.Template, string(b))
	assert.Contains(t, stderr, "wrote sample input")
}

func TestRun_Pairs(t *testing.T) {
	code, stdout, stderr := runOdin(t, "pairs", "-q", "--total", "10", "--pairs", "5", "--seed", "3")
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 5)

	code, _, stderr = runOdin(t, "pairs", "-q", "--total", "3", "--pairs", "4")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed")
}

func TestRun_Unique(t *testing.T) {
	path := writeFile(t, "# x y\n1 2\n0 5\n\n1 2\n0 5\n3 1\n")
	code, stdout, stderr := runOdin(t, "unique", "-q", "-w", "2", "--file", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "0 5\n1 2\n3 1\n", stdout)
}

func TestRun_UniqueParseError(t *testing.T) {
	path := writeFile(t, "1 2\n1 x\n")
	code, _, stderr := runOdin(t, "unique", "-q", "--file", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "table.txt:2: column 2")
}

func TestRun_Parmap(t *testing.T) {
	code, stdout, stderr := runOdin(t, "parmap", "-q", "--jobs", "8", "--sleep", "1ms", "-w", "4")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "mapped 8 jobs")
	assert.Contains(t, stdout, "calls: 1, failures: 0, workers: 4, items: 8")
}

func TestRun_Plot(t *testing.T) {
	input := writeFile(t, "1 0 0.5\n1 1.57 1\n2 3.14 0.25\n2 4.71 0\n")
	output := filepath.Join(t.TempDir(), "shot.png")
	code, _, stderr := runOdin(t, "plot", "-q", "--input", input, "--output", output)
	require.Equal(t, 0, code, stderr)

	fi, err := os.Stat(output)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}

func TestRun_PlotBadShape(t *testing.T) {
	input := writeFile(t, "1 0\n")
	code, _, stderr := runOdin(t, "plot", "-q", "--input", input, "--output", filepath.Join(t.TempDir(), "x.png"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "want 3 columns")
}

func TestQuietRequested(t *testing.T) {
	cfg := &config.Config{Workers: parmap.DefaultWorkers}
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"1", "-q"}, true},
		{[]string{"--quiet"}, true},
		{[]string{"-vq", "1"}, true},
		{[]string{"--quiet=1"}, true},
		{[]string{"-w4", "-q"}, true},
		{[]string{"--quiet=false"}, false},
		{[]string{"--", "-q"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			assert.Equal(t, tt.want, quietRequested("maxima", maximaCmd, cfg, tt.args))
		})
	}
}

func TestRun_QuietCombined(t *testing.T) {
	code, stdout, _ := runOdin(t, "maxima", "-vq", "1", "3", "2")
	require.Equal(t, 0, code)
	assert.Equal(t, "1\n", stdout)
}

func TestRun_MaximaNegative(t *testing.T) {
	code, stdout, stderr := runOdin(t, "maxima", "-q", "--", "3", "-1", "2")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "0 2\n", stdout)
}
