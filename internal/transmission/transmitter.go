package transmission

import "github.com/portacharging/charger-audit/internal/audit"

// Transmitter defines the interface for publishing audit results.
type Transmitter interface {
	Transmit(result *audit.Result) error
	IsConnected() bool
}
