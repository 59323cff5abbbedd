package validate

import (
	"fmt"
	"time"
	// Embed the full IANA timezone database so lookups behave the same on
	// hosts without a system tzdata install (Docker scratch images, etc.).
	_ "time/tzdata"

	"github.com/portacharging/charger-audit/internal/usage"
)

// IANATimezone reports whether name is a recognized IANA timezone
// identifier, including deprecated-but-valid aliases such as "US/Pacific".
// Pure lookup against the embedded database; never errors.
func IANATimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// TimezoneData validates the timezone field of one usage snapshot.
// A missing timezone and an unrecognized timezone are distinct findings.
func TimezoneData(snap *usage.Snapshot) []Error {
	var errs []Error
	timestamp := snap.TimestampLabel()

	if snap.Timezone == "" {
		errs = append(errs, Error{
			Type:      ErrTimezoneMissing,
			Message:   fmt.Sprintf("Timezone missing in usage data at %s", timestamp),
			Timestamp: timestamp,
		})
	} else if !IANATimezone(snap.Timezone) {
		errs = append(errs, Error{
			Type:      ErrInvalidTimezone,
			Message:   fmt.Sprintf("Invalid timezone '%s' in usage data at %s", snap.Timezone, timestamp),
			Timestamp: timestamp,
		})
	}
	return errs
}
