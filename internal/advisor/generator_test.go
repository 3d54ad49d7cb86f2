package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/scent-cli/internal/config"
)

func TestFromConfig_ProviderSelection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.AdvisoryConfig
		wantErr string
	}{
		{"default is ollama", config.AdvisoryConfig{TimeoutSecs: 12}, ""},
		{"explicit ollama", config.AdvisoryConfig{Provider: "ollama", BaseURL: "http://ollama:11434", Model: "mistral"}, ""},
		{"claude with key", config.AdvisoryConfig{Provider: "claude", AnthropicKey: "sk-test"}, ""},
		{"claude without key", config.AdvisoryConfig{Provider: "claude"}, "requires an anthropic api key"},
		{"unknown provider", config.AdvisoryConfig{Provider: "gemini"}, `unknown provider "gemini"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge, err := FromConfig(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, bridge)
		})
	}
}

func TestFromConfig_TimeoutDefaulting(t *testing.T) {
	bridge, err := FromConfig(config.AdvisoryConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, bridge.timeout)

	bridge, err = FromConfig(config.AdvisoryConfig{TimeoutSecs: 3})
	require.NoError(t, err)
	assert.Equal(t, "3s", bridge.timeout.String())
}
