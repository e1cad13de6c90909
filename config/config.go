package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultFeedCount       = 10
	defaultFeedMaxCount    = 50
	defaultFeedTimezone    = "America/New_York"
	defaultUpstreamTimeout = 30 * time.Second
	defaultMetricsPath     = "/metrics"

	// legacyAPIKeyEnv is read when completion.apiKey is not configured.
	legacyAPIKeyEnv = "OPENROUTER_API_KEY"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Feed configuration for the geo-indexed event feed
	Feed *FeedConfig `json:"feed" yaml:"feed"`

	// Completion configuration for the text-completion provider used for scoring
	Completion *CompletionConfig `json:"completion" yaml:"completion"`

	// Scoring configuration for the relevance fan-out
	Scoring *ScoringConfig `json:"scoring" yaml:"scoring"`

	// Tracing configuration for OpenTelemetry export
	Tracing *TracingConfig `json:"tracing" yaml:"tracing"`

	// Metrics configuration for the Prometheus endpoint
	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FeedConfig defines how the event feed is queried.
// The persisted query identifier is fixed per deployment.
type FeedConfig struct {
	BaseURL       string `json:"baseUrl" yaml:"baseUrl"`
	OperationName string `json:"operationName" yaml:"operationName"`

	PersistedQuery struct {
		Version    int    `json:"version" yaml:"version"`
		Sha256Hash string `json:"sha256Hash" yaml:"sha256Hash"`
	} `json:"persistedQuery" yaml:"persistedQuery"`

	// IANA zone used for the "start from now" filter
	Timezone string `json:"timezone" yaml:"timezone"`

	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	DefaultCount int           `json:"defaultCount" yaml:"defaultCount"`
	MaxCount     int           `json:"maxCount" yaml:"maxCount"`
}

// CompletionConfig defines the chat-completion provider
type CompletionConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ScoringConfig defines relevance scoring behavior
type ScoringConfig struct {
	// Maximum in-flight scoring requests per batch; 0 means all at once
	MaxConcurrency int `json:"maxConcurrency" yaml:"maxConcurrency"`

	// Ask the completion provider to screen interest text before scoring
	InjectionGuard bool `json:"injectionGuard" yaml:"injectionGuard"`
}

// TracingConfig defines OpenTelemetry tracing
type TracingConfig struct {
	Enabled      bool    `json:"enabled" yaml:"enabled"`
	Endpoint     string  `json:"endpoint" yaml:"endpoint"`
	SamplingRate float64 `json:"samplingRate" yaml:"samplingRate"`
	Insecure     bool    `json:"insecure" yaml:"insecure"`
}

// MetricsConfig defines the Prometheus scrape endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: COMPLETION_APIKEY -> completion.apiKey (not completion.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A missing .env file is fine; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills optional sections so downstream constructors never see nil.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Feed == nil {
		cfg.Feed = &FeedConfig{}
	}
	if cfg.Feed.Timezone == "" {
		cfg.Feed.Timezone = defaultFeedTimezone
	}
	if cfg.Feed.Timeout <= 0 {
		cfg.Feed.Timeout = defaultUpstreamTimeout
	}
	if cfg.Feed.DefaultCount <= 0 {
		cfg.Feed.DefaultCount = defaultFeedCount
	}
	if cfg.Feed.MaxCount <= 0 {
		cfg.Feed.MaxCount = defaultFeedMaxCount
	}

	if cfg.Completion == nil {
		cfg.Completion = &CompletionConfig{}
	}
	if cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = os.Getenv(legacyAPIKeyEnv)
	}
	if cfg.Completion.Timeout <= 0 {
		cfg.Completion.Timeout = defaultUpstreamTimeout
	}

	if cfg.Scoring == nil {
		cfg.Scoring = &ScoringConfig{}
	}
	if cfg.Tracing == nil {
		cfg.Tracing = &TracingConfig{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
}

// Validate checks the settings the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Feed == nil || strings.TrimSpace(c.Feed.BaseURL) == "" {
		return errors.New("feed.baseUrl is required")
	}
	if c.Feed.PersistedQuery.Sha256Hash == "" {
		return errors.New("feed.persistedQuery.sha256Hash is required")
	}
	if c.Completion == nil || strings.TrimSpace(c.Completion.BaseURL) == "" {
		return errors.New("completion.baseUrl is required")
	}
	if c.Completion.Model == "" {
		return errors.New("completion.model is required")
	}
	if c.Scoring != nil && c.Scoring.MaxConcurrency < 0 {
		return errors.Errorf("scoring.maxConcurrency must not be negative, got %d", c.Scoring.MaxConcurrency)
	}
	if c.Tracing != nil && (c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1) {
		return errors.Errorf("tracing.samplingRate must be between 0 and 1, got %f", c.Tracing.SamplingRate)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
