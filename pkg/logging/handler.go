package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const timeFormat = "[2006/01/02 15:04:05]"

// Handler prints records as "[time] [value]... message". Attribute keys are
// dropped, so a module attribute shows up as "[decode]".
type Handler struct {
	level  slog.Leveler
	prefix []string
	mu     *sync.Mutex
	out    io.Writer
}

func NewHandler(out io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{level: level, mu: &sync.Mutex{}, out: out}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := append([]string(nil), h.prefix...)
	for _, a := range attrs {
		prefix = append(prefix, bracket(a))
	}
	return &Handler{level: h.level, prefix: prefix, mu: h.mu, out: h.out}
}

// Groups only qualify keys, which are never printed.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format(timeFormat))
	for _, p := range h.prefix {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteByte(' ')
		sb.WriteString(bracket(a))
		return true
	})
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func bracket(a slog.Attr) string {
	return "[" + a.Value.Resolve().String() + "]"
}
