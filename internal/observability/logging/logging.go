package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	ServiceInfo   ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
	Level         slog.Level
	Output        io.Writer
}

// NewLogger builds a JSON logger whose records are understood by Cloud Logging.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level := cfg.Level
	if cfg.Environment == EnvDev && level > slog.LevelDebug {
		level = slog.LevelDebug
	}

	base := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceCloudLoggingAttr,
	})

	handler := &contextHandler{
		Handler:       base,
		projectID:     cfg.GCPProjectID,
		defaultModule: cfg.DefaultModule,
	}

	attrs := []any{
		slog.Group("service",
			slog.String("name", cfg.ServiceInfo.Name),
			slog.String("version", cfg.ServiceInfo.Version),
			slog.String("revision", cfg.ServiceInfo.Revision),
		),
		slog.String("env", string(cfg.Environment)),
	}

	return slog.New(handler).With(attrs...)
}

// ParseLevel falls back to info for unknown values.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

func replaceCloudLoggingAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.MessageKey:
		a.Key = "message"
	case slog.LevelKey:
		a.Key = "severity"
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(severity(lvl))
		}
	case slog.TimeKey:
		a.Key = "timestamp"
	}

	return a
}

func severity(lvl slog.Level) string {
	switch {
	case lvl >= slog.LevelError:
		return "ERROR"
	case lvl >= slog.LevelWarn:
		return "WARNING"
	case lvl >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// contextHandler writes correlation keys at the top level of every record.
// Cloud Logging only reads logging.googleapis.com/* keys from the root object,
// so groups and attrs from WithGroup/WithAttrs are replayed in Handle.
type contextHandler struct {
	slog.Handler
	projectID     string
	defaultModule Module
	scopes        []scope
}

// scope is either a group name or attrs added inside the current groups.
type scope struct {
	group string
	attrs []slog.Attr
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	if reqID := RequestIDFromContext(ctx); reqID != "" {
		out.AddAttrs(slog.String("request_id", reqID))
	}

	module := ModuleFromContext(ctx)
	if module == "" {
		module = h.defaultModule
	}

	if module != "" {
		out.AddAttrs(slog.String("module", string(module)))
	}

	if traceID, spanID, ok := traceFromContext(ctx); ok {
		if h.projectID != "" {
			out.AddAttrs(slog.String("logging.googleapis.com/trace", "projects/"+h.projectID+"/traces/"+traceID))
		}

		out.AddAttrs(slog.String("logging.googleapis.com/spanId", spanID))
	}

	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	out.AddAttrs(h.nest(attrs)...)

	return h.Handler.Handle(ctx, out)
}

// nest wraps attrs in the recorded scopes, innermost first.
func (h *contextHandler) nest(attrs []slog.Attr) []slog.Attr {
	for i := len(h.scopes) - 1; i >= 0; i-- {
		s := h.scopes[i]

		if s.group == "" {
			attrs = append(slices.Clone(s.attrs), attrs...)

			continue
		}

		// slog drops empty groups
		if len(attrs) == 0 {
			continue
		}

		attrs = []slog.Attr{{Key: s.group, Value: slog.GroupValue(attrs...)}}
	}

	return attrs
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	if len(h.scopes) == 0 {
		return h.with(h.Handler.WithAttrs(attrs), nil)
	}

	return h.with(h.Handler, &scope{attrs: slices.Clone(attrs)})
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return h.with(h.Handler, &scope{group: name})
}

func (h *contextHandler) with(next slog.Handler, s *scope) *contextHandler {
	scopes := slices.Clone(h.scopes)
	if s != nil {
		scopes = append(scopes, *s)
	}

	return &contextHandler{
		Handler:       next,
		projectID:     h.projectID,
		defaultModule: h.defaultModule,
		scopes:        scopes,
	}
}
