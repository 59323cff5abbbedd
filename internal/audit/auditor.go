package audit

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/portacharging/charger-audit/internal/usage"
	"github.com/portacharging/charger-audit/internal/validate"
)

// Result aggregates one charger's audit outcome. Immutable once the
// auditor returns it; results never share state across chargers.
type Result struct {
	ChargerID    string                     `json:"charger_id"`
	Name         string                     `json:"name"`
	Location     string                     `json:"location"`
	UsageDocs    int                        `json:"usage_docs_processed"`
	UnsyncedDocs int                        `json:"unsynced_docs"`
	TotalErrors  int                        `json:"total_errors"`
	ErrorCounts  map[validate.ErrorType]int `json:"error_counts"`
	Errors       []validate.Error           `json:"errors"`
}

// Auditor applies the validator set to one charger at a time.
type Auditor struct {
	logger *logrus.Logger
}

// New creates an Auditor. The logger only receives progress and finding
// context; every finding is also returned as data on the Result.
func New(logger *logrus.Logger) *Auditor {
	return &Auditor{logger: logger}
}

// AuditCharger validates a charger's metadata and each of its usage
// snapshots in order. Pricing is checked once per charger; per snapshot,
// timezone findings are emitted before stall-count findings.
func (a *Auditor) AuditCharger(chargerID string, doc *usage.Document) *Result {
	res := &Result{
		ChargerID:   chargerID,
		Name:        doc.Charger.Name,
		Location:    doc.Charger.Location(),
		ErrorCounts: make(map[validate.ErrorType]int),
	}

	a.record(res, validate.Pricing(&doc.Charger, chargerID))

	if len(doc.UsageData) == 0 {
		a.logger.WithField("charger_id", chargerID).Info("No usage data found for charger")
		return res
	}

	for i := range doc.UsageData {
		snap := &doc.UsageData[i]
		a.record(res, validate.TimezoneData(snap))

		if validate.TallyStalls(snap).Unsynced {
			res.UnsyncedDocs++
			a.logger.WithFields(logrus.Fields{
				"charger_id": chargerID,
				"timestamp":  snap.TimestampLabel(),
			}).Info("All connectors unsynced, skipping stall count validation")
		}
		a.record(res, validate.StallCounts(snap))

		res.UsageDocs++
	}

	a.logger.WithFields(logrus.Fields{
		"charger_id": chargerID,
		"usage_docs": res.UsageDocs,
		"errors":     res.TotalErrors,
	}).Debug("Charger audit complete")

	return res
}

// FetchFailureResult builds the synthetic result for a charger whose
// usage fetch failed, so one broken charger never aborts the run.
func (a *Auditor) FetchFailureResult(chargerID string, err error) *Result {
	res := &Result{
		ChargerID:   chargerID,
		Name:        "Unknown",
		Location:    "Unknown",
		ErrorCounts: make(map[validate.ErrorType]int),
	}
	a.record(res, []validate.Error{{
		Type:      validate.ErrAPI,
		Message:   fmt.Sprintf("Failed to fetch usages for %s: %v", chargerID, err),
		Timestamp: "N/A",
	}})
	return res
}

// record appends findings to the result and logs them at levels matching
// their severity (pricing is a warning, the rest are data errors).
func (a *Auditor) record(res *Result, errs []validate.Error) {
	for _, e := range errs {
		res.Errors = append(res.Errors, e)
		res.ErrorCounts[e.Type]++
		res.TotalErrors++

		entry := a.logger.WithField("charger_id", res.ChargerID)
		switch e.Type {
		case validate.ErrPricingMissing:
			entry.Warn(e.Message)
		default:
			entry.Error(e.Message)
		}
	}
}
