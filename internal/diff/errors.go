package diff

import "errors"

// IncomparableError reports a diff requested across mismatched
// scopes: graphs from different regions, or a VPC id missing from its
// graph. Fatal to the diff operation only; no partial diff is
// produced.
type IncomparableError struct {
	Reason string
}

func (e *IncomparableError) Error() string {
	return "incomparable: " + e.Reason
}

// IsIncomparable reports whether err is an IncomparableError.
func IsIncomparable(err error) bool {
	var inc *IncomparableError
	return errors.As(err, &inc)
}
