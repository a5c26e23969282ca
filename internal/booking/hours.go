package booking

import (
    "fmt"
    "time"

    "github.com/iliyamo/coworking-booking/internal/model"
)

// secondsFromMidnight converts an instant to its seconds-since-
// midnight component in UTC.  Operating hours are stored the same
// way on the building, so the two compare directly.
func secondsFromMidnight(t time.Time) int {
    t = t.UTC()
    return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// CheckOperatingHours validates a reservation interval against a
// building's optional daily operating window.  A building with both
// bounds unset operates around the clock and accepts any interval.
// A building with a bounded window only accepts intervals that start
// and end on the same UTC day and whose time-of-day components fall
// inside [OpenFrom, OpenTill].  Violations are ErrBadRequest.
func CheckOperatingHours(b *model.Building, iv Interval) error {
    if b.OpenFrom == nil || b.OpenTill == nil {
        return nil
    }
    fy, fm, fd := iv.From.UTC().Date()
    ty, tm, td := iv.Till.UTC().Date()
    if fy != ty || fm != tm || fd != td {
        return fmt.Errorf("%w: period should not cross the building closing time", ErrBadRequest)
    }
    if *b.OpenFrom > secondsFromMidnight(iv.From) || *b.OpenTill < secondsFromMidnight(iv.Till) {
        return fmt.Errorf("%w: period should be in open range", ErrBadRequest)
    }
    return nil
}
