package routesource

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
)

type envService struct {
	name            string
	suffix          string
	defaultQueue    string
	defaultURL      string
	defaultAudience string
	defaultDeadline int
}

// Built-in services, overridable through QUEUE_<S>, URL_<S>, AUD_<S> and
// DEADLINE_<S>_S.
var envServices = []envService{
	{
		name:            "brain",
		suffix:          "BRAIN",
		defaultQueue:    "queue-brain",
		defaultURL:      "https://brain-pahip4iobq-uc.a.run.app/process",
		defaultAudience: "https://brain-pahip4iobq-uc.a.run.app",
		defaultDeadline: 700,
	},
	{
		name:            "testimonios",
		suffix:          "TESTI",
		defaultQueue:    "queue-testimonios",
		defaultURL:      "https://testimonios-pahip4iobq-uc.a.run.app/generate-testimony",
		defaultAudience: "https://testimonios-pahip4iobq-uc.a.run.app",
		defaultDeadline: 900,
	},
	{
		name:            "transcripciones",
		suffix:          "TRANS",
		defaultQueue:    "queue-transcripciones",
		defaultURL:      "https://transcripciones-pahip4iobq-uc.a.run.app/api/transcribe",
		defaultAudience: "https://transcripciones-pahip4iobq-uc.a.run.app",
		defaultDeadline: 1800,
	},
	{
		name:            "regresos",
		suffix:          "REGRESOS",
		defaultQueue:    "queue-regresos",
		defaultURL:      "https://regresos-223080314602.us-central1.run.app/_tasks/process-pdf-back-questions-run",
		defaultAudience: "https://regresos-223080314602.us-central1.run.app",
		defaultDeadline: 1800,
	},
}

// EnvSource builds the routing table from environment variables.
type EnvSource struct {
	lookup func(string) (string, bool)
}

func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

func (s *EnvSource) Name() string {
	return "env"
}

func (s *EnvSource) Load(_ context.Context) (route.Table, error) {
	entries := make(map[string]route.Entry, len(envServices))

	for _, svc := range envServices {
		deadline := svc.defaultDeadline

		key := "DEADLINE_" + svc.suffix + "_S"
		if raw := s.get(key, ""); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return route.Table{}, fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, key, raw)
			}

			deadline = parsed
		}

		e, err := route.NewEntry(
			s.get("QUEUE_"+svc.suffix, svc.defaultQueue),
			s.get("URL_"+svc.suffix, svc.defaultURL),
			s.get("AUD_"+svc.suffix, svc.defaultAudience),
			deadline,
		)
		if err != nil {
			return route.Table{}, fmt.Errorf("service %q: %w", svc.name, err)
		}

		entries[svc.name] = e
	}

	return route.NewTable(entries)
}

func (s *EnvSource) get(key, defaultVal string) string {
	if val, ok := s.lookup(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}

	return defaultVal
}
