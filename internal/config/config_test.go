package config_test

import (
	"testing"

	"github.com/alkime/stylepost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, int64(8192), cfg.MaxTokens)
	assert.Equal(t, 4, cfg.ResearchConcurrency)
	assert.True(t, cfg.WebSearch)
	assert.Equal(t, "sk-test", cfg.APIKey())
}

func TestLoadConfig_Anthropic(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "ant-test")
	t.Setenv("WEB_SEARCH", "false")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "ant-test", cfg.APIKey())
	assert.False(t, cfg.WebSearch)
}

func TestLoadConfig_InvalidProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{Provider: config.ProviderOpenAI, MaxTokens: 10, ResearchConcurrency: 1}
	require.NoError(t, cfg.Validate())

	cfg.ResearchConcurrency = 0
	require.Error(t, cfg.Validate())

	cfg.ResearchConcurrency = 1
	cfg.MaxTokens = 0
	require.Error(t, cfg.Validate())
}

func TestBuildCSP(t *testing.T) {
	assert.Contains(t, config.BuildCSP("strict"), "object-src 'none'")
	assert.Contains(t, config.BuildCSP("relaxed"), "'unsafe-inline'")
}
