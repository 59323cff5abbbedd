package validate

// ErrorType tags a finding with its kind so the reporting layer can group
// and count without parsing message text. The values double as display
// labels in the summary table.
type ErrorType string

const (
	ErrPricingMissing              ErrorType = "Pricing Missing"
	ErrTimezoneMissing             ErrorType = "Timezone Missing"
	ErrInvalidTimezone             ErrorType = "Invalid Timezone"
	ErrStallsAvailableMismatch     ErrorType = "Stalls Available Mismatch"
	ErrTotalStallsMismatch         ErrorType = "Total Stalls Mismatch"
	ErrStallsNotAvailableMismatch  ErrorType = "Stalls Not Available Mismatch"
	ErrTotalStallsCalculationError ErrorType = "Total Stalls Calculation Error"
	ErrMissingField                ErrorType = "Missing Field"
	ErrAPI                         ErrorType = "API Error"
)

// AllErrorTypes lists every finding kind in reporting order. Keep the
// order stable; the summary table iterates over it.
var AllErrorTypes = []ErrorType{
	ErrPricingMissing,
	ErrTimezoneMissing,
	ErrInvalidTimezone,
	ErrStallsAvailableMismatch,
	ErrTotalStallsMismatch,
	ErrStallsNotAvailableMismatch,
	ErrTotalStallsCalculationError,
	ErrMissingField,
	ErrAPI,
}

// Error is a single data-quality finding. Findings are returned as data,
// never raised, and are immutable once created.
type Error struct {
	Type      ErrorType `json:"error_type"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}
