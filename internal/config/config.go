package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all configuration options for the charger-audit run.
type Config struct {
	// API Configuration
	APIBaseURL string `json:"api_base_url"` // Porta API base URL
	AuthToken  string `json:"auth_token"`   // Bearer token, empty for anonymous access
	APITimeout int    `json:"api_timeout"`  // API request timeout in seconds

	// Audit scope
	Region  string `json:"region"`  // e.g. "california"
	Network string `json:"network"` // e.g. "electrifyAmerica"

	// Throttling
	FetchDelay time.Duration `json:"fetch_delay"` // pause between per-charger fetches

	// Reporting
	LogFile string `json:"log_file"` // optional log file path, empty disables

	// MQTT Configuration
	MQTTUrl   string `json:"mqtt_url"`   // optional result publishing, empty disables
	MQTTTopic string `json:"mqtt_topic"` // base topic for published results

	// Application Configuration
	Verbose bool `json:"verbose"` // enable verbose logging
}

// GetDefaultConfig returns a configuration with sensible defaults.
func GetDefaultConfig() *Config {
	return &Config{
		APIBaseURL: "https://api-stg.portacharging.com",
		APITimeout: 10,
		Region:     "california",
		Network:    "electrifyAmerica",
		FetchDelay: DefaultFetchDelay,
		MQTTTopic:  "charger_audit",
		Verbose:    false,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Network == "" {
		return fmt.Errorf("network is required")
	}

	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API base URL must use http:// or https://")
	}

	if c.MQTTUrl != "" {
		if !strings.HasPrefix(c.MQTTUrl, "ws://") &&
			!strings.HasPrefix(c.MQTTUrl, "wss://") &&
			!strings.HasPrefix(c.MQTTUrl, "mqtt://") &&
			!strings.HasPrefix(c.MQTTUrl, "mqtts://") {
			return fmt.Errorf("MQTT URL must use supported protocol (ws://, wss://, mqtt://, or mqtts://)")
		}
	}

	// Set defaults for invalid values
	if c.APITimeout <= 0 {
		c.APITimeout = 10
	}
	if c.FetchDelay < 0 {
		c.FetchDelay = 0
	}

	return nil
}

// HasMQTT returns true if MQTT result publishing is configured.
func (c *Config) HasMQTT() bool {
	return c.MQTTUrl != ""
}

// GetAPITimeout returns the API timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}
