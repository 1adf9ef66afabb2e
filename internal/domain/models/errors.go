package models

import "fmt"

// EmptyDataError means the provider returned no rows for the requested
// ticker and range. Fatal: nothing downstream can run.
type EmptyDataError struct {
	Ticker string
	Start  string
	End    string
}

func (e *EmptyDataError) Error() string {
	if e.Start == "" && e.End == "" {
		return fmt.Sprintf("no price data for %s", e.Ticker)
	}
	return fmt.Sprintf("no price data for %s in range %s..%s", e.Ticker, e.Start, e.End)
}

// MissingColumnError means the provider payload lacks an expected field.
type MissingColumnError struct {
	Ticker string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("provider response for %s missing column %q", e.Ticker, e.Column)
}

// InvalidHorizonError means the label horizon cannot produce any label.
type InvalidHorizonError struct {
	Horizon   int
	SeriesLen int
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("invalid horizon %d for series of length %d", e.Horizon, e.SeriesLen)
}

// AlignmentEmptyError means the feature/label timestamp intersection is
// empty, or too small for a non-empty train/test partition.
type AlignmentEmptyError struct {
	Rows   int
	Reason string
}

func (e *AlignmentEmptyError) Error() string {
	return fmt.Sprintf("feature/label alignment unusable (%d rows): %s", e.Rows, e.Reason)
}
