package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	projectIDEnv       = "PROJECT_ID"
	regionEnv          = "TASKS_REGION"
	callerSAEnv        = "CALLER_SA"
	backendEnv         = "TASKS_BACKEND"
	emulatorHostEnv    = "CLOUD_TASKS_EMULATOR_HOST"
	submitTimeoutEnv   = "TASKS_SUBMIT_TIMEOUT"
	routingSourceEnv   = "ROUTING_SOURCE"
	routingURIEnv      = "ROUTING_CONFIG_URI"
	fallbackPathEnv    = "ROUTING_FALLBACK_PATH"
	cacheTTLEnv        = "ROUTING_CACHE_TTL"
	fetchTimeoutEnv    = "ROUTING_FETCH_TIMEOUT"
	portEnv            = "PORT"
	logLevelEnv        = "LOG_LEVEL"
	defaultRegion      = "us-central1"
	defaultBackend     = BackendCloudTasks
	defaultSource      = SourceEnv
	defaultFallback    = "services.json"
	defaultCacheTTL    = 5 * time.Minute
	defaultFetchTime   = 10 * time.Second
	defaultSubmitTime  = 30 * time.Second
	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultEnvFileName = ".env"

	// A bare number like 300 decodes as nanoseconds.
	minDuration = time.Second
)

type Backend string

const (
	BackendCloudTasks Backend = "cloudtasks"
	BackendNoop       Backend = "noop"
)

type Source string

const (
	SourceEnv  Source = "env"
	SourceFile Source = "file"
	SourceGCS  Source = "gcs"
)

type TaskQueueConfig struct {
	ProjectID            string
	Region               string
	CallerServiceAccount string
	Backend              Backend
	EmulatorHost         string
	SubmitTimeout        time.Duration
}

type RoutingConfig struct {
	Source       Source
	ConfigURI    string
	FallbackPath string
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

type Config struct {
	TaskQueue TaskQueueConfig
	Routing   RoutingConfig
	Port      string
	LogLevel  string
}

// Load reads the process configuration. A .env file in the working
// directory is applied first without overriding variables already set.
func Load() (*Config, error) {
	if err := godotenv.Load(defaultEnvFileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrEnvFileLoad, err)
	}

	return LoadFromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(regionEnv, defaultRegion)
	v.SetDefault(backendEnv, string(defaultBackend))
	v.SetDefault(submitTimeoutEnv, defaultSubmitTime)
	v.SetDefault(routingSourceEnv, string(defaultSource))
	v.SetDefault(fallbackPathEnv, defaultFallback)
	v.SetDefault(cacheTTLEnv, defaultCacheTTL)
	v.SetDefault(fetchTimeoutEnv, defaultFetchTime)
	v.SetDefault(portEnv, defaultPort)
	v.SetDefault(logLevelEnv, defaultLogLevel)

	return v
}

// LoadFromViper builds a Config from an already prepared viper instance.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		TaskQueue: TaskQueueConfig{
			ProjectID:            trimmed(v, projectIDEnv),
			Region:               trimmed(v, regionEnv),
			CallerServiceAccount: trimmed(v, callerSAEnv),
			Backend:              Backend(strings.ToLower(trimmed(v, backendEnv))),
			EmulatorHost:         trimmed(v, emulatorHostEnv),
			SubmitTimeout:        v.GetDuration(submitTimeoutEnv),
		},
		Routing: RoutingConfig{
			Source:       Source(strings.ToLower(trimmed(v, routingSourceEnv))),
			ConfigURI:    trimmed(v, routingURIEnv),
			FallbackPath: trimmed(v, fallbackPathEnv),
			CacheTTL:     v.GetDuration(cacheTTLEnv),
			FetchTimeout: v.GetDuration(fetchTimeoutEnv),
		},
		Port:     trimmed(v, portEnv),
		LogLevel: trimmed(v, logLevelEnv),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrProjectIDMissing)
	}

	if err := c.TaskQueue.Validate(); err != nil {
		return err
	}

	if err := c.Routing.Validate(); err != nil {
		return err
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrPortInvalid, c.Port)
	}

	return nil
}

func (c *TaskQueueConfig) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("%w: %s", ErrProjectIDMissing, projectIDEnv)
	}

	if c.Region == "" {
		return fmt.Errorf("%w: %s", ErrRegionMissing, regionEnv)
	}

	switch c.Backend {
	case BackendCloudTasks:
		if c.CallerServiceAccount == "" {
			return fmt.Errorf("%w: %s", ErrCallerSAMissing, callerSAEnv)
		}
	case BackendNoop:
	default:
		return fmt.Errorf("%w: %q", ErrBackendInvalid, c.Backend)
	}

	if c.SubmitTimeout < minDuration {
		return fmt.Errorf("%w: %s=%s", ErrDurationInvalid, submitTimeoutEnv, c.SubmitTimeout)
	}

	return nil
}

func (c *RoutingConfig) Validate() error {
	switch c.Source {
	case SourceEnv:
	case SourceFile:
		if c.FallbackPath == "" {
			return fmt.Errorf("%w: %s", ErrFallbackPathMissing, fallbackPathEnv)
		}
	case SourceGCS:
		if _, _, err := ParseGCSURI(c.ConfigURI); err != nil {
			return err
		}

		if c.FallbackPath == "" {
			return fmt.Errorf("%w: %s", ErrFallbackPathMissing, fallbackPathEnv)
		}
	default:
		return fmt.Errorf("%w: %q", ErrRoutingSourceInvalid, c.Source)
	}

	if c.CacheTTL < minDuration {
		return fmt.Errorf("%w: %s=%s", ErrDurationInvalid, cacheTTLEnv, c.CacheTTL)
	}

	if c.FetchTimeout < minDuration {
		return fmt.Errorf("%w: %s=%s", ErrDurationInvalid, fetchTimeoutEnv, c.FetchTimeout)
	}

	return nil
}

// ParseGCSURI splits gs://bucket/path/to/object into bucket and object.
func ParseGCSURI(raw string) (string, string, error) {
	if raw == "" {
		return "", "", fmt.Errorf("%w: %s is empty", ErrRoutingConfigURIInvalid, routingURIEnv)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrRoutingConfigURIInvalid, err)
	}

	if u.Scheme != "gs" {
		return "", "", fmt.Errorf("%w: scheme must be gs, got: %s", ErrRoutingConfigURIInvalid, u.Scheme)
	}

	object := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || object == "" {
		return "", "", fmt.Errorf("%w: bucket and object are required", ErrRoutingConfigURIInvalid)
	}

	return u.Host, object, nil
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
