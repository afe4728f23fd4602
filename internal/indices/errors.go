package indices

import "errors"

// Failure conditions for a single index computation. Every failure is
// local to one (model, scenario, variable, index) tuple; the driver
// logs it and moves on to the next tuple.
var (
	// ErrUnknownIndex means the requested index name is not in the
	// registry.
	ErrUnknownIndex = errors.New("unknown index")

	// ErrMissingBaseline means a percentile-based index was invoked
	// without a historical baseline grid.
	ErrMissingBaseline = errors.New("missing baseline input")

	// ErrBaselineUnavailable means a historical grid was supplied but
	// has no usable coverage.
	ErrBaselineUnavailable = errors.New("baseline unavailable")

	// ErrInsufficientSamples means an order-statistic index hit a year
	// with fewer days than the requested rank. The whole computation
	// fails; a lower rank is never substituted silently.
	ErrInsufficientSamples = errors.New("insufficient samples")
)
