package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2030, 9, 1, 12, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2030, 10, 1, hour, min, 0, 0, time.UTC)
}

func TestNewInterval_Valid(t *testing.T) {
	iv, err := NewInterval(at(10, 0), at(12, 0), testNow)
	require.NoError(t, err)
	require.Equal(t, at(10, 0), iv.From)
	require.Equal(t, at(12, 0), iv.Till)
	require.Equal(t, 2*time.Hour, iv.Duration())
}

func TestNewInterval_StartAfterEnd(t *testing.T) {
	_, err := NewInterval(at(12, 0), at(10, 0), testNow)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestNewInterval_ZeroDuration(t *testing.T) {
	_, err := NewInterval(at(10, 0), at(10, 0), testNow)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestNewInterval_TooLong(t *testing.T) {
	_, err := NewInterval(at(8, 0), at(8, 0).Add(12*time.Hour+time.Minute), testNow)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestNewInterval_ExactlyTwelveHours(t *testing.T) {
	_, err := NewInterval(at(8, 0), at(20, 0), testNow)
	require.NoError(t, err)
}

func TestNewInterval_PastStart(t *testing.T) {
	_, err := NewInterval(testNow.Add(-time.Hour), testNow.Add(time.Hour), testNow)
	require.ErrorIs(t, err, ErrBadRequest)
	require.True(t, errors.Is(err, ErrBadRequest))
}

func TestOverlaps(t *testing.T) {
	base := Interval{From: at(10, 0), Till: at(12, 0)}

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{at(10, 0), at(12, 0)}, true},
		{"partial left", Interval{at(9, 0), at(11, 0)}, true},
		{"partial right", Interval{at(11, 0), at(13, 0)}, true},
		{"contains base", Interval{at(9, 0), at(13, 0)}, true},
		{"inside base", Interval{at(10, 30), at(11, 30)}, true},
		{"touching end", Interval{at(12, 0), at(13, 0)}, false},
		{"touching start", Interval{at(9, 0), at(10, 0)}, false},
		{"disjoint before", Interval{at(7, 0), at(8, 0)}, false},
		{"disjoint after", Interval{at(13, 0), at(14, 0)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, base.Overlaps(tc.other))
			require.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}
