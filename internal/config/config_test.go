package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.GetAPITimeout())
	assert.False(t, cfg.HasMQTT())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing region", func(c *Config) { c.Region = "" }, "region is required"},
		{"missing network", func(c *Config) { c.Network = "" }, "network is required"},
		{"bad api url", func(c *Config) { c.APIBaseURL = "ftp://example.com" }, "API base URL"},
		{"bad mqtt scheme", func(c *Config) { c.MQTTUrl = "http://broker" }, "MQTT URL"},
		{"valid mqtt scheme", func(c *Config) { c.MQTTUrl = "mqtts://broker:8883" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateRepairsInvalidValues(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.APITimeout = -1
	cfg.FetchDelay = -time.Second
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.APITimeout)
	assert.Equal(t, time.Duration(0), cfg.FetchDelay)
}
