package validate

import (
	"fmt"

	"github.com/portacharging/charger-audit/internal/usage"
)

// Pricing checks that the charger record carries a pricing object.
// Presence-only: an empty pricing object passes. Emits at most one
// warning-level finding with the "N/A" timestamp placeholder, since the
// record is not tied to any snapshot.
func Pricing(charger *usage.ChargerRecord, chargerID string) []Error {
	if charger.HasPricing() {
		return nil
	}
	return []Error{{
		Type:      ErrPricingMissing,
		Message:   fmt.Sprintf("Pricing object missing for charger %s", chargerID),
		Timestamp: "N/A",
	}}
}
