package audit

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portacharging/charger-audit/internal/usage"
	"github.com/portacharging/charger-audit/internal/validate"
)

func testAuditor() *Auditor {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(l)
}

func intp(v int) *int { return &v }

func snapshot(ts, tz string, available, total *int, stallStatuses ...[]*int) usage.Snapshot {
	snap := usage.Snapshot{
		Timestamp:       ts,
		Timezone:        tz,
		StallsAvailable: available,
		TotalStalls:     total,
	}
	for _, connStatuses := range stallStatuses {
		stall := usage.Stall{}
		for _, st := range connStatuses {
			stall.Connectors = append(stall.Connectors, usage.Connector{Status: st})
		}
		snap.StallUsage = append(snap.StallUsage, stall)
	}
	return snap
}

func TestAuditChargerCleanDocument(t *testing.T) {
	doc := &usage.Document{
		Charger: usage.ChargerRecord{
			Name:    "EA Daly City",
			Address: usage.Address{FullThoroughfare: "123 Serramonte Blvd", Locality: "Daly City"},
			Pricing: json.RawMessage(`{}`),
		},
		UsageData: []usage.Snapshot{
			snapshot("t1", "America/Los_Angeles", intp(1), intp(2), []*int{intp(0)}, []*int{intp(1)}),
			snapshot("t2", "America/Los_Angeles", intp(0), intp(2), []*int{intp(1)}, []*int{intp(1)}),
		},
	}

	res := testAuditor().AuditCharger("charger-1", doc)

	assert.Equal(t, "charger-1", res.ChargerID)
	assert.Equal(t, "EA Daly City", res.Name)
	assert.Equal(t, "123 Serramonte Blvd, Daly City", res.Location)
	assert.Equal(t, 2, res.UsageDocs)
	assert.Equal(t, 0, res.UnsyncedDocs)
	assert.Zero(t, res.TotalErrors)
	assert.Empty(t, res.Errors)
}

func TestAuditChargerErrorOrdering(t *testing.T) {
	// Missing pricing, then per snapshot: timezone finding before stall
	// findings, snapshots in input order.
	doc := &usage.Document{
		Charger: usage.ChargerRecord{Name: "EA Daly City"},
		UsageData: []usage.Snapshot{
			snapshot("t1", "Mars/Phobos", intp(2), intp(2), []*int{intp(0)}, []*int{intp(1)}),
			snapshot("t2", "", intp(1), intp(2), []*int{intp(0)}, []*int{intp(1)}),
		},
	}

	res := testAuditor().AuditCharger("charger-1", doc)

	require.Len(t, res.Errors, 5)
	assert.Equal(t, validate.ErrPricingMissing, res.Errors[0].Type)
	assert.Equal(t, validate.ErrInvalidTimezone, res.Errors[1].Type)
	assert.Equal(t, validate.ErrStallsAvailableMismatch, res.Errors[2].Type)
	assert.Equal(t, validate.ErrStallsNotAvailableMismatch, res.Errors[3].Type)
	assert.Equal(t, validate.ErrTimezoneMissing, res.Errors[4].Type)

	assert.Equal(t, 5, res.TotalErrors)
	assert.Equal(t, map[validate.ErrorType]int{
		validate.ErrPricingMissing:             1,
		validate.ErrInvalidTimezone:            1,
		validate.ErrStallsAvailableMismatch:    1,
		validate.ErrStallsNotAvailableMismatch: 1,
		validate.ErrTimezoneMissing:            1,
	}, res.ErrorCounts)
}

func TestAuditChargerUnsyncedSnapshot(t *testing.T) {
	doc := &usage.Document{
		Charger: usage.ChargerRecord{Pricing: json.RawMessage(`{}`)},
		UsageData: []usage.Snapshot{
			snapshot("t1", "America/Los_Angeles", intp(9), intp(9), []*int{intp(-2)}, []*int{intp(-2)}),
		},
	}

	res := testAuditor().AuditCharger("charger-1", doc)

	assert.Equal(t, 1, res.UsageDocs)
	assert.Equal(t, 1, res.UnsyncedDocs)
	assert.Zero(t, res.TotalErrors)
}

func TestAuditChargerNoUsageData(t *testing.T) {
	doc := &usage.Document{Charger: usage.ChargerRecord{Name: "EA Daly City"}}

	res := testAuditor().AuditCharger("charger-1", doc)

	assert.Zero(t, res.UsageDocs)
	assert.Equal(t, 1, res.TotalErrors) // pricing still checked
	require.Len(t, res.Errors, 1)
	assert.Equal(t, validate.ErrPricingMissing, res.Errors[0].Type)
}

func TestAuditChargerIdempotent(t *testing.T) {
	doc := &usage.Document{
		UsageData: []usage.Snapshot{
			snapshot("t1", "", intp(3), intp(2), []*int{intp(0)}, []*int{intp(-2), intp(4)}),
		},
	}

	a := testAuditor()
	first := a.AuditCharger("charger-1", doc)
	second := a.AuditCharger("charger-1", doc)
	assert.Equal(t, first, second)
}

func TestFetchFailureResult(t *testing.T) {
	res := testAuditor().FetchFailureResult("charger-7", errors.New("connection refused"))

	assert.Equal(t, "charger-7", res.ChargerID)
	assert.Equal(t, "Unknown", res.Name)
	assert.Equal(t, "Unknown", res.Location)
	assert.Zero(t, res.UsageDocs)
	assert.Equal(t, 1, res.TotalErrors)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, validate.ErrAPI, res.Errors[0].Type)
	assert.Equal(t, "Failed to fetch usages for charger-7: connection refused", res.Errors[0].Message)
	assert.Equal(t, "N/A", res.Errors[0].Timestamp)
}
