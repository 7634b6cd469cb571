package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler is a slog.Handler writing one short line per record:
//
//	3:04PM INFO  wrote file path=examples/basic/simpleconf_gen.go
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
	color  bool

	timeColor  *color.Color
	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	keyColor   *color.Color
}

// NewHandler creates a Handler. Colors are used when useColor is set.
func NewHandler(out io.Writer, opts *slog.HandlerOptions, useColor bool) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts:  *opts,
		out:   out,
		mu:    &sync.Mutex{},
		color: useColor,
	}

	if useColor {
		h.timeColor = newColor(color.FgHiBlack)
		h.debugColor = newColor(color.FgMagenta)
		h.infoColor = newColor(color.FgGreen)
		h.warnColor = newColor(color.FgYellow)
		h.errorColor = newColor(color.FgRed, color.Bold)
		h.keyColor = newColor(color.FgCyan)
	}

	return h
}

// newColor forces escape codes on; the caller already decided the writer
// wants them, and color's own detection only looks at os.Stdout.
func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()

	return c
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// Handle writes the record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		sb.WriteString(h.paint(h.timeColor, r.Time.Format(time.Kitchen)))
		sb.WriteByte(' ')
	}

	level := fmt.Sprintf("%-5s", r.Level.String())
	switch {
	case r.Level >= slog.LevelError:
		level = h.paint(h.errorColor, level)
	case r.Level >= slog.LevelWarn:
		level = h.paint(h.warnColor, level)
	case r.Level >= slog.LevelInfo:
		level = h.paint(h.infoColor, level)
	default:
		level = h.paint(h.debugColor, level)
	}

	sb.WriteString(level)
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&sb, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, h.prefix, a)
		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.out, sb.String())

	return err
}

func (h *Handler) appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.appendAttr(sb, prefix, ga)
		}

		return
	}

	value := a.Value.String()
	if strings.ContainsAny(value, " \t\n\"=") {
		value = fmt.Sprintf("%q", value)
	}

	fmt.Fprintf(sb, " %s=%s", h.paint(h.keyColor, prefix+a.Key), value)
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.color || c == nil {
		return s
	}

	return c.Sprint(s)
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)

	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}

		newH.attrs = append(newH.attrs, a)
	}

	return &newH
}

// WithGroup returns a new Handler whose later attribute keys are prefixed
// with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	newH := *h
	newH.prefix = h.prefix + name + "."

	return &newH
}
