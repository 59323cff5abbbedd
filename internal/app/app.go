package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/portacharging/charger-audit/internal/audit"
	"github.com/portacharging/charger-audit/internal/config"
	"github.com/portacharging/charger-audit/internal/porta"
	"github.com/portacharging/charger-audit/internal/transmission"
)

// Run executes one audit pass: fetch the charger ID list, then fetch and
// audit each charger in order with a throttle delay in between.
//
// A failed list fetch (or an empty list) is terminal. A failed per-charger
// fetch degrades to a synthetic API-error result and the run continues.
// Chargers are processed strictly sequentially; each result is
// self-contained, so the ordering here is a courtesy to the upstream API,
// not a correctness requirement of the validators.
func Run(
	ctx context.Context,
	cfg *config.Config,
	client *porta.Client,
	auditor *audit.Auditor,
	tx transmission.Transmitter,
	logger *logrus.Logger,
) ([]*audit.Result, error) {
	chargerIDs, err := client.ListChargers(ctx, cfg.Region, cfg.Network)
	if err != nil {
		return nil, err
	}
	if len(chargerIDs) == 0 {
		return nil, errors.New("no charger IDs found in the response")
	}

	logger.WithFields(logrus.Fields{
		"region":   cfg.Region,
		"network":  cfg.Network,
		"chargers": len(chargerIDs),
	}).Info("Starting audit run")

	results := make([]*audit.Result, 0, len(chargerIDs))
	for i, chargerID := range chargerIDs {
		if i > 0 && cfg.FetchDelay > 0 {
			if err := sleep(ctx, cfg.FetchDelay); err != nil {
				return results, err
			}
		}

		var res *audit.Result
		doc, err := client.FetchUsages(ctx, chargerID)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			logger.WithError(err).WithField("charger_id", chargerID).Error("Usage fetch failed, continuing with next charger")
			res = auditor.FetchFailureResult(chargerID, err)
		} else {
			res = auditor.AuditCharger(chargerID, doc)
		}
		results = append(results, res)

		if tx != nil {
			if err := tx.Transmit(res); err != nil {
				// Publishing is best-effort; the audit result stands regardless.
				logger.WithError(err).WithField("charger_id", chargerID).Warn("Result transmit failed")
			}
		}
	}

	return results, nil
}

// sleep blocks for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("audit run interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
