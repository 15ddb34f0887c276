package loghandler

import (
	"context"
	"io"
	"log/slog"
	"strconv"
)

const timeFormat = "2006/01/02 15:04:05"

const tagKey = "tag"
const runKey = "run"

// CompactHandler writes logs in a compact form: timestamp + optional
// [run] prefix + message + attrs.
// Timestamp format: 2006/01/02 15:04:05 (no TZ, no milliseconds). No
// level is written.
// If an attribute with key "run" is present, it is rendered as "[run] "
// after the timestamp, the same way the teacher's handler hoists a
// "tag" attribute — here it carries one cmd/train invocation's UUID so
// every line from that run is visually grouped without repeating
// run=<uuid> in every attr list. "tag" is still recognized for
// backward-compatible callers that set it directly.
// Float64 attributes are rendered to Precision decimal places instead
// of Go's default %v formatting, since training logs win-rate, ε, and
// Q-value fields where %v's variable-width output makes columns hard
// to scan.
type CompactHandler struct {
	w         io.Writer
	level     slog.Level
	precision int
	attrs     []slog.Attr
}

// NewCompactHandler returns a handler that writes to w with minimum
// level and precision decimal places for float64 attributes.
func NewCompactHandler(w io.Writer, level slog.Level, precision int) *CompactHandler {
	return &CompactHandler{w: w, level: level, precision: precision}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as: 2006/01/02 15:04:05 [run] message key=value ...
// The "run"/"tag" attribute is not repeated in the key=value list.
func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	var tag string
	var rest []slog.Attr
	collect := func(a slog.Attr) bool {
		if a.Key == runKey || a.Key == tagKey {
			if a.Value.Kind() == slog.KindString {
				tag = a.Value.String()
			}
			return true
		}
		rest = append(rest, a)
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format(timeFormat)...)
	buf = append(buf, ' ')
	if tag != "" {
		buf = append(buf, '[')
		buf = append(buf, tag...)
		buf = append(buf, "] "...)
	}
	buf = append(buf, r.Message...)
	for _, a := range rest {
		buf = append(buf, ' ')
		buf = append(buf, a.Key...)
		buf = append(buf, '=')
		buf = h.appendValue(buf, a.Value)
	}
	buf = append(buf, '\n')

	_, err := h.w.Write(buf)
	return err
}

func (h *CompactHandler) appendValue(buf []byte, v slog.Value) []byte {
	if v.Kind() == slog.KindFloat64 {
		return strconv.AppendFloat(buf, v.Float64(), 'f', h.precision, 64)
	}
	return append(buf, v.String()...)
}

// WithAttrs returns a new handler with the given attributes added to the context.
// They are written before the record's own attrs on every line.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &h2
}

// WithGroup returns a new handler for the given group (no-op for compact output).
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return h
}
