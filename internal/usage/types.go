package usage

import (
	"encoding/json"
	"strings"
)

// Connector status codes as reported by the Porta API.
// Any other non-zero value means the stall is occupied or otherwise
// unavailable; the set is open-ended, so callers must not assume an
// exhaustive enum.
const (
	StatusAvailable = 0
	StatusUnsynced  = -2 // upstream failed to fetch this connector's state
)

// UnknownTimestamp is the placeholder label used when a usage document
// carries no timestamp.
const UnknownTimestamp = "Unknown Timestamp"

// Document is the response body of GET /v1/chargers/{id}/usages: the
// charger's metadata plus its ordered usage snapshots.
type Document struct {
	Charger   ChargerRecord `json:"charger"`
	UsageData []Snapshot    `json:"usageData"`
}

// ChargerRecord holds the charger metadata we audit. Pricing is kept as
// raw JSON because only its presence matters, not its structure.
type ChargerRecord struct {
	Name    string          `json:"name"`
	Address Address         `json:"address"`
	Pricing json.RawMessage `json:"pricing,omitempty"`
}

// HasPricing reports whether the record carried a pricing object at all.
// An empty object counts as present; an explicit JSON null does not
// (RawMessage keeps the literal "null" rather than becoming nil).
func (c *ChargerRecord) HasPricing() bool {
	return len(c.Pricing) > 0 && string(c.Pricing) != "null"
}

// Location renders a single display string from the address sub-fields.
func (c *ChargerRecord) Location() string {
	parts := make([]string, 0, 2)
	if c.Address.FullThoroughfare != "" {
		parts = append(parts, c.Address.FullThoroughfare)
	}
	if c.Address.Locality != "" {
		parts = append(parts, c.Address.Locality)
	}
	return strings.Join(parts, ", ")
}

type Address struct {
	FullThoroughfare string `json:"fullThoroughfare"`
	Locality         string `json:"locality"`
}

// Snapshot is one point-in-time usage report for a charger.
// We use pointers for the reported counts so we can distinguish between a
// missing value (nil) and a value of 0.
type Snapshot struct {
	Timestamp       string  `json:"timestamp"`
	Timezone        string  `json:"timezone"`
	StallsAvailable *int    `json:"stallsAvailable"`
	TotalStalls     *int    `json:"totalStalls"`
	StallUsage      []Stall `json:"stallUsage"`
}

// TimestampLabel returns the snapshot timestamp, or the placeholder label
// when the document carried none.
func (s *Snapshot) TimestampLabel() string {
	if s.Timestamp == "" {
		return UnknownTimestamp
	}
	return s.Timestamp
}

// Stall is a single charging bay owning zero or more connectors.
type Stall struct {
	Connectors []Connector `json:"connectors"`
}

// Connector is one physical plug on a stall. Status is a pointer for the
// same missing-vs-zero reason as the snapshot counts: a connector without
// a status field is a valid (non-sentinel) reading that is not available.
type Connector struct {
	Status *int `json:"status"`
}

// Unsynced reports whether this connector carries the -2 sentinel,
// meaning upstream could not determine its state.
func (c *Connector) Unsynced() bool {
	return c.Status != nil && *c.Status == StatusUnsynced
}

// Available reports whether this connector is free for charging.
func (c *Connector) Available() bool {
	return c.Status != nil && *c.Status == StatusAvailable
}
