package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/coworking-booking/internal/model"
)

func buildingWithHours(openFrom, openTill int) *model.Building {
	return &model.Building{ID: 1, Name: "HQ", OpenFrom: &openFrom, OpenTill: &openTill}
}

func TestCheckOperatingHours_AroundTheClock(t *testing.T) {
	b := &model.Building{ID: 1, Name: "HQ"}
	iv := Interval{From: at(23, 0), Till: at(23, 0).Add(4 * time.Hour)}
	require.NoError(t, CheckOperatingHours(b, iv))
}

func TestCheckOperatingHours_InsideWindow(t *testing.T) {
	b := buildingWithHours(9*3600, 18*3600)
	require.NoError(t, CheckOperatingHours(b, Interval{From: at(9, 0), Till: at(12, 0)}))
}

func TestCheckOperatingHours_ExactBounds(t *testing.T) {
	b := buildingWithHours(9*3600, 18*3600)
	require.NoError(t, CheckOperatingHours(b, Interval{From: at(9, 0), Till: at(18, 0)}))
}

func TestCheckOperatingHours_AfterClose(t *testing.T) {
	b := buildingWithHours(9*3600, 18*3600)
	err := CheckOperatingHours(b, Interval{From: at(19, 0), Till: at(20, 0)})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestCheckOperatingHours_BeforeOpen(t *testing.T) {
	b := buildingWithHours(9*3600, 18*3600)
	err := CheckOperatingHours(b, Interval{From: at(8, 0), Till: at(10, 0)})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestCheckOperatingHours_EndsPastClose(t *testing.T) {
	b := buildingWithHours(9*3600, 18*3600)
	err := CheckOperatingHours(b, Interval{From: at(17, 0), Till: at(18, 30)})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestCheckOperatingHours_CrossesMidnight(t *testing.T) {
	b := buildingWithHours(9*3600, 18*3600)
	err := CheckOperatingHours(b, Interval{From: at(23, 0), Till: at(23, 0).Add(2 * time.Hour)})
	require.ErrorIs(t, err, ErrBadRequest)
}
