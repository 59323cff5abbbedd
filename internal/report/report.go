package report

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/portacharging/charger-audit/internal/audit"
	"github.com/portacharging/charger-audit/internal/validate"
)

// Summary is the run-level aggregate over all charger results.
type Summary struct {
	Chargers     int                        `json:"chargers"`
	FailedFetch  int                        `json:"failed_fetches"`
	UsageDocs    int                        `json:"usage_docs_processed"`
	UnsyncedDocs int                        `json:"unsynced_docs"`
	TotalErrors  int                        `json:"total_errors"`
	ByType       map[validate.ErrorType]int `json:"errors_by_type"`
}

// Summarize merges per-charger results into one run summary. No result
// is dropped: every charger contributes, including synthetic API-error
// results for failed fetches.
func Summarize(results []*audit.Result) *Summary {
	s := &Summary{ByType: make(map[validate.ErrorType]int)}
	for _, res := range results {
		s.Chargers++
		s.UsageDocs += res.UsageDocs
		s.UnsyncedDocs += res.UnsyncedDocs
		s.TotalErrors += res.TotalErrors
		for t, n := range res.ErrorCounts {
			s.ByType[t] += n
		}
		if res.ErrorCounts[validate.ErrAPI] > 0 {
			s.FailedFetch++
		}
	}
	return s
}

// Render prints the per-charger table and the per-error-type totals to
// the terminal.
func Render(results []*audit.Result) error {
	data := pterm.TableData{
		{"Charger ID", "Name", "Location", "Usage Docs", "Errors"},
	}
	for _, res := range results {
		errCell := fmt.Sprintf("%d", res.TotalErrors)
		if res.TotalErrors > 0 {
			errCell = pterm.Red(errCell)
		}
		data = append(data, []string{
			res.ChargerID,
			res.Name,
			res.Location,
			fmt.Sprintf("%d", res.UsageDocs),
			errCell,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return fmt.Errorf("failed to render charger table: %w", err)
	}

	summary := Summarize(results)

	pterm.Println()
	pterm.DefaultSection.Println("Totals")
	totals := pterm.TableData{{"Error Type", "Count"}}
	for _, t := range validate.AllErrorTypes {
		if n := summary.ByType[t]; n > 0 {
			totals = append(totals, []string{string(t), fmt.Sprintf("%d", n)})
		}
	}
	if len(totals) == 1 {
		pterm.Success.Println("No validation errors found")
	} else if err := pterm.DefaultTable.WithHasHeader().WithData(totals).Render(); err != nil {
		return fmt.Errorf("failed to render totals table: %w", err)
	}

	pterm.Printf("Audited %d chargers, %d usage docs (%d unsynced), %d errors, %d failed fetches\n",
		summary.Chargers, summary.UsageDocs, summary.UnsyncedDocs, summary.TotalErrors, summary.FailedFetch)

	return nil
}
