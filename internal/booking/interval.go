package booking

import (
    "fmt"
    "time"
)

// MaxVisitDuration bounds a single reservation.  Besides being a
// business rule it also bounds the cost of overlap checks.
const MaxVisitDuration = 12 * time.Hour

// Interval is a half-open time range [From, Till).  A visit ending
// exactly when another begins does not overlap it.
type Interval struct {
    From time.Time
    Till time.Time
}

// NewInterval validates a candidate reservation interval against the
// rules that apply at creation time: the start must precede the end,
// the duration must not exceed MaxVisitDuration and the start must
// not be in the past relative to now.  All violations are reported
// as ErrBadRequest.
func NewInterval(from, till time.Time, now time.Time) (Interval, error) {
    if from.IsZero() || till.IsZero() {
        return Interval{}, fmt.Errorf("%w: visit_from and visit_till are required", ErrBadRequest)
    }
    if !from.Before(till) {
        return Interval{}, fmt.Errorf("%w: start time should be less than end time", ErrBadRequest)
    }
    if till.Sub(from) > MaxVisitDuration {
        return Interval{}, fmt.Errorf("%w: time range should be between 1 second and 12 hours", ErrBadRequest)
    }
    if now.After(from) {
        return Interval{}, fmt.Errorf("%w: start time can not be in the past", ErrBadRequest)
    }
    return Interval{From: from.UTC(), Till: till.UTC()}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching boundaries ([10,12) against [12,13)) do not overlap.  The
// test detects full containment in both directions, not only endpoint
// crossings, and mirrors the SQL predicate used by the visit
// repository.
func (i Interval) Overlaps(other Interval) bool {
    return i.From.Before(other.Till) && other.From.Before(i.Till)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration { return i.Till.Sub(i.From) }
