package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{
		Feed: &FeedConfig{BaseURL: "https://feed.example.com/gql2"},
		Completion: &CompletionConfig{
			BaseURL: "https://completion.example.com/api/v1",
			Model:   "test/model",
		},
	}
	cfg.Feed.PersistedQuery.Sha256Hash = "abc123"

	return cfg
}

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	t.Setenv(legacyAPIKeyEnv, "")

	cfg := &Config{}
	applyDefaults(cfg)

	require.NotNil(t, cfg.Feed)
	require.NotNil(t, cfg.Completion)
	require.NotNil(t, cfg.Scoring)
	require.NotNil(t, cfg.Tracing)
	require.NotNil(t, cfg.Metrics)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultFeedCount, cfg.Feed.DefaultCount)
	assert.Equal(t, defaultFeedMaxCount, cfg.Feed.MaxCount)
	assert.Equal(t, defaultFeedTimezone, cfg.Feed.Timezone)
	assert.Equal(t, defaultUpstreamTimeout, cfg.Feed.Timeout)
	assert.Equal(t, defaultUpstreamTimeout, cfg.Completion.Timeout)
	assert.Equal(t, defaultMetricsPath, cfg.Metrics.Path)
}

func TestApplyDefaults_LegacyAPIKeyFallback(t *testing.T) {
	t.Setenv(legacyAPIKeyEnv, "sk-legacy")

	cfg := &Config{Completion: &CompletionConfig{}}
	applyDefaults(cfg)
	assert.Equal(t, "sk-legacy", cfg.Completion.APIKey)

	cfg = &Config{Completion: &CompletionConfig{APIKey: "sk-configured"}}
	applyDefaults(cfg)
	assert.Equal(t, "sk-configured", cfg.Completion.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing feed url", mutate: func(cfg *Config) { cfg.Feed.BaseURL = " " }, wantErr: "feed.baseUrl"},
		{name: "missing query hash", mutate: func(cfg *Config) { cfg.Feed.PersistedQuery.Sha256Hash = "" }, wantErr: "sha256Hash"},
		{name: "missing completion url", mutate: func(cfg *Config) { cfg.Completion.BaseURL = "" }, wantErr: "completion.baseUrl"},
		{name: "missing model", mutate: func(cfg *Config) { cfg.Completion.Model = "" }, wantErr: "completion.model"},
		{
			name:    "negative concurrency",
			mutate:  func(cfg *Config) { cfg.Scoring = &ScoringConfig{MaxConcurrency: -1} },
			wantErr: "maxConcurrency",
		},
		{
			name:    "sampling out of range",
			mutate:  func(cfg *Config) { cfg.Tracing = &TracingConfig{SamplingRate: 1.5} },
			wantErr: "samplingRate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	yamlBody := `
feed:
  baseUrl: https://feed.example.com/gql2
  timeout: 5s
completion:
  baseUrl: https://completion.example.com/api/v1
  apiKey: ""
  model: test/model
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlBody), 0o600))
	t.Chdir(dir)
	t.Setenv("COMPLETION_APIKEY", "sk-from-env")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)
	require.NotNil(t, cfg.Feed)
	require.NotNil(t, cfg.Completion)

	assert.Equal(t, "https://feed.example.com/gql2", cfg.Feed.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "sk-from-env", cfg.Completion.APIKey)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
