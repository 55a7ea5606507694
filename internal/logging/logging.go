package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sanjkatariya/infraFix/internal/httpctx"
	"github.com/sanjkatariya/infraFix/internal/middleware"
)

const timeLayout = "2006/01/02 15:04:05"

// customTextHandler writes lines like:
// 2025/09/06 21:11:44 level=INFO msg="starting" key=value ...
type customTextHandler struct {
	out        io.Writer
	mu         *sync.Mutex // shared with handlers derived via WithAttrs/WithGroup
	minLevel   slog.Leveler
	attrs      []slog.Attr
	groups     []string
	timeLayout string
}

func (h *customTextHandler) Enabled(_ context.Context, l slog.Level) bool {
	min := slog.LevelInfo
	if h.minLevel != nil {
		min = h.minLevel.Level()
	}
	return l >= min
}

func upperLevel(l slog.Level) string {
	switch {
	case l <= slog.LevelDebug:
		return "DEBUG"
	case l <= slog.LevelInfo:
		return "INFO"
	case l <= slog.LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == '=' || r == '\\' {
			return true
		}
		if !utf8.ValidRune(r) {
			return true
		}
	}
	return false
}

func quote(s string) string {
	b := &strings.Builder{}
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// maybeQuote returns s as-is when it can stand unquoted after '='.
func maybeQuote(s string) string {
	if needsQuoting(s) {
		return quote(s)
	}
	return s
}

// formatValue renders one resolved attr value for the text line.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return maybeQuote(v.String())
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		return maybeQuote(fmt.Sprint(v.Any()))
	default:
		return v.String()
	}
}

// flattenAttr appends a as key=value fields to dst. Groups become dotted
// keys at any depth; a group with an empty key is inlined.
func flattenAttr(dst map[string]string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			flattenAttr(dst, prefix, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	dst[prefix+a.Key] = formatValue(a.Value)
}

// leadKeys open an access-log line in this order; other keys follow sorted.
var leadKeys = []string{"method", "url", "status", "duration"}

func (h *customTextHandler) Handle(ctx context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	// Later sources win: request context, then handler attrs, then the record.
	fields := make(map[string]string, len(h.attrs)+r.NumAttrs()+3)
	for _, a := range contextAttrs(ctx) {
		flattenAttr(fields, "", a)
	}
	for _, a := range h.attrs {
		flattenAttr(fields, "", a)
	}
	recordPrefix := ""
	if len(h.groups) > 0 {
		recordPrefix = strings.Join(h.groups, ".") + "."
	}
	r.Attrs(func(a slog.Attr) bool {
		flattenAttr(fields, recordPrefix, a)
		return true
	})

	var sb strings.Builder
	sb.Grow(256)
	sb.WriteString(ts.Format(h.timeLayout))
	sb.WriteString(" level=")
	sb.WriteString(upperLevel(r.Level))
	if r.Message != "" {
		sb.WriteString(" msg=")
		sb.WriteString(quote(r.Message))
	}
	write := func(k string) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(fields[k])
		delete(fields, k)
	}
	for _, k := range leadKeys {
		if _, ok := fields[k]; ok {
			write(k)
		}
	}
	rest := make([]string, 0, len(fields))
	for k := range fields {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		write(k)
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *customTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	out = append(out, h.attrs...)
	out = append(out, attrs...)
	return &customTextHandler{out: h.out, mu: h.mu, minLevel: h.minLevel, attrs: out, groups: h.groups, timeLayout: h.timeLayout}
}

func (h *customTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	gs := make([]string, 0, len(h.groups)+1)
	gs = append(gs, h.groups...)
	gs = append(gs, name)
	return &customTextHandler{out: h.out, mu: h.mu, minLevel: h.minLevel, attrs: h.attrs, groups: gs, timeLayout: h.timeLayout}
}

// Setup configures slog's default logger based on provided level and format.
// level: "debug", "info", "warn", "error" (case-insensitive)
// json: if true, use JSON handler; otherwise, use text handler.
// For text logs, time is prefixed as "YYYY/MM/DD HH:MM:SS" without a key.
func Setup(level string, json bool) *slog.Logger {
	lvl := ParseLevel(level)

	if json {
		// JSON handler with formatted time value.
		replace := func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time()
				return slog.String(slog.TimeKey, t.Format(timeLayout))
			}
			return a
		}
		opts := &slog.HandlerOptions{Level: lvl, ReplaceAttr: replace}
		logger := slog.New(contextHandler{slog.NewJSONHandler(os.Stdout, opts)})
		slog.SetDefault(logger)
		return logger
	}

	// Custom text handler: timestamp prefix and key=value list
	logger := slog.New(NewTextHandler(os.Stdout, lvl))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps "debug", "info", "warn", "error" (case-insensitive) to a
// slog level. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewTextHandler returns the key=value handler writing to out.
func NewTextHandler(out io.Writer, level slog.Leveler) slog.Handler {
	return &customTextHandler{out: out, mu: &sync.Mutex{}, minLevel: level, timeLayout: timeLayout}
}

// contextAttrs returns request_id, user_id and role from ctx when present.
func contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var out []slog.Attr
	if rid, ok := middleware.GetRequestID(ctx); ok {
		out = append(out, slog.String("request_id", rid))
	}
	if uid, ok := middleware.GetLogUserID(ctx); ok {
		out = append(out, slog.String("user_id", uid))
	} else if uid, ok := httpctx.UserID(ctx); ok {
		out = append(out, slog.String("user_id", uid))
	}
	if role, ok := middleware.GetLogRole(ctx); ok {
		out = append(out, slog.String("role", role))
	} else if role, ok := httpctx.Role(ctx); ok {
		out = append(out, slog.String("role", string(role)))
	}
	return out
}

// contextHandler adds the context attrs to records of a wrapped handler.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(contextAttrs(ctx)...)
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}
