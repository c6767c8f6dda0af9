package calculation

import "fmt"

// ValidationError reports malformed input to a constructor or calculator
// call: negative income, an unknown account id, inverted bracket thresholds.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "validation: " + e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// RangeError reports a timeline built with an inverted year range.
type RangeError struct {
	Start int
	End   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range: end year %d precedes start year %d", e.End, e.Start)
}

// NotFoundError reports a year outside the timeline's range or an account id
// not present in the portfolio.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}
