package config

import "time"

// Central place for application-wide timing constants. Changing a value
// here immediately affects all components that import this package.
const (
	// DefaultFetchDelay throttles per-charger usage fetches so the audit
	// does not hammer the upstream API. Validation results must be
	// identical regardless of this value.
	DefaultFetchDelay = 1 * time.Second

	// Operation time-outs
	MQTTTimeout = 5 * time.Second // MQTT publish
)
