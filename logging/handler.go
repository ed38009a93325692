package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// SameLineKey marks a record that should stay on the current console line.
// Any value other than a false bool counts.
const SameLineKey = "same_line"

// eraseLine moves to column 0 and clears the line (ANSI EL2).
const eraseLine = "\r\x1b[2K"

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Level is the minimum level written. Nil means info.
	Level slog.Leveler

	// NoColor disables ANSI colours even on a terminal.
	NoColor bool
}

// console is shared by a Handler and all its clones, since they write to
// the same line.
type console struct {
	mu         sync.Mutex
	w          io.Writer
	terminal   bool
	onSameLine bool
}

// Handler writes coloured single-line records:
//
//	15:04:05.000 message key=value ...
//
// Records carrying SameLineKey keep the cursor on the current line. On a
// terminal each such record overwrites the previous one; elsewhere they are
// appended, separated by "... ". The next regular record starts a new line.
type Handler struct {
	out    *console
	level  slog.Leveler
	colors *palette

	attrs  string
	prefix string
}

var _ slog.Handler = &Handler{}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer, opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	terminal := false
	if f, ok := w.(*os.File); ok {
		terminal = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &Handler{
		out:    &console{w: w, terminal: terminal},
		level:  level,
		colors: newPalette(terminal && !opts.NoColor),
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	if !r.Time.IsZero() {
		sb.WriteString(h.colors.time.Sprint(r.Time.Format("15:04:05.000")))
		sb.WriteByte(' ')
	}
	sb.WriteString(h.colors.level(r.Level).Sprint(r.Message))
	sb.WriteString(h.attrs)

	sameLine := false
	var withErr bool
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == SameLineKey {
			sameLine = attr.Value.Kind() != slog.KindBool || attr.Value.Bool()
			return true
		}
		h.appendAttr(&sb, h.prefix, attr)
		if attr.Key == "err" {
			withErr = true
		}
		return true
	})
	if withErr && !sameLine && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		for {
			frame, more := frames.Next()
			fmt.Fprintf(&sb, "\n  %s at %s:%d", frame.Function, h.colors.time.Sprint(frame.File), frame.Line)
			if !more {
				break
			}
		}
	}

	return h.out.write(sb.String(), sameLine)
}

func (c *console) write(msg string, sameLine bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sb strings.Builder
	switch {
	case sameLine && c.terminal:
		sb.WriteString(eraseLine)
		sb.WriteString(msg)
	case sameLine:
		sb.WriteString(msg)
		sb.WriteString("... ")
	default:
		if c.onSameLine {
			sb.WriteByte('\n')
		}
		sb.WriteString(msg)
		sb.WriteByte('\n')
	}
	c.onSameLine = sameLine

	_, err := io.WriteString(c.w, sb.String())
	return err
}

func (h *Handler) appendAttr(sb *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		if len(group) == 0 {
			return
		}
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, a := range group {
			h.appendAttr(sb, prefix, a)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(h.colors.key.Sprint(prefix + attr.Key))
	sb.WriteByte('=')
	if attr.Value.Kind() == slog.KindAny {
		if err, ok := attr.Value.Any().(error); ok {
			sb.WriteString(err.Error())
			return
		}
	}
	sb.WriteString(attr.Value.String())
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, attr := range attrs {
		h.appendAttr(&sb, h.prefix, attr)
	}

	clone := *h
	clone.attrs = sb.String()
	return &clone
}

// WithGroup implements slog.Handler. Group names prefix the keys of later
// attributes: group "req" turns "id" into "req.id".
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

type palette struct {
	time, key                 *color.Color
	debug, info, warn, errLvl *color.Color
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return &palette{
		time:   mk(color.FgHiBlack),
		key:    mk(color.Bold, color.FgHiBlack),
		debug:  mk(color.FgMagenta),
		info:   mk(color.FgGreen),
		warn:   mk(color.FgYellow),
		errLvl: mk(color.FgRed),
	}
}

func (p *palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.errLvl
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	}
	return p.debug
}
