// Package actions renders slog records as GitHub Actions workflow commands.
package actions

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

type Handler struct {
	w      io.Writer
	level  slog.Leveler
	mtx    *sync.Mutex
	prefix string
	attrs  []string
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.level != nil {
		minLevel = h.level.Level()
	}
	return level >= minLevel
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	parts := make([]string, 0, 1+len(h.attrs)+r.NumAttrs())
	parts = append(parts, r.Message)
	parts = append(parts, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		parts = appendAttr(parts, h.prefix, a)
		return true
	})

	line := strings.Join(parts, " ")

	switch {
	case r.Level >= slog.LevelError:
		line = "::error::" + escapeData(line)
	case r.Level >= slog.LevelWarn:
		line = "::warning::" + escapeData(line)
	case r.Level < slog.LevelInfo:
		line = "::debug::" + escapeData(line)
	default:
		line = plainLine.Replace(line)
	}

	h.mtx.Lock()
	defer h.mtx.Unlock()

	_, err := io.WriteString(h.w, line+"\n")

	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]string{}, h.attrs...)

	for _, a := range attrs {
		clone.attrs = appendAttr(clone.attrs, h.prefix, a)
	}

	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if len(name) == 0 {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

func appendAttr(parts []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return parts
	}

	if a.Value.Kind() == slog.KindGroup {
		if len(a.Key) > 0 {
			prefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			parts = appendAttr(parts, prefix, ga)
		}
		return parts
	}

	v := a.Value.String()
	if strings.ContainsAny(v, " \t\"=") || len(v) == 0 {
		v = strconv.Quote(v)
	}

	return append(parts, prefix+a.Key+"="+v)
}

// plainLine keeps an info record on one line so its text cannot open a
// workflow command.
var plainLine = strings.NewReplacer("\r", `\r`, "\n", `\n`)

// escapeData applies the escaping the runner expects in command payloads.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// NewHandler writes one line per record: info as plain text, everything else
// as the matching ::debug::, ::warning:: or ::error:: command.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{
		w:   w,
		mtx: &sync.Mutex{},
	}

	if opts != nil {
		h.level = opts.Level
	}

	return h
}
