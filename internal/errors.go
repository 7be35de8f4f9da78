package internal

import (
	"errors"
	"fmt"
)

// NotFoundError reports a lookup miss: an unknown station, a gap in the
// line (missing track segment), or a schedule that does not serve a
// requested endpoint.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// NotFound builds a NotFoundError for a kind ("station", "track", ...) and
// a reference such as an ID or pair description.
func NotFound(kind, format string, args ...any) error {
	return &NotFoundError{Kind: kind, Ref: fmt.Sprintf(format, args...)}
}

// InvalidInputError reports a caller contract violation: malformed clock
// strings, non-positive distances, same-station route queries.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Msg }

func InvalidInput(format string, args ...any) error {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

// InconsistentDataError signals upstream data corruption, e.g. a waypoint
// sequence that does not walk line positions monotonically.
type InconsistentDataError struct {
	Msg string
}

func (e *InconsistentDataError) Error() string { return e.Msg }

func InconsistentData(format string, args ...any) error {
	return &InconsistentDataError{Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsInvalidInput(err error) bool {
	var ii *InvalidInputError
	return errors.As(err, &ii)
}

func IsInconsistentData(err error) bool {
	var ic *InconsistentDataError
	return errors.As(err, &ic)
}
