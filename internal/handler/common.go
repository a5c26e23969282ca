// Package handler implements the HTTP endpoints of the coworking
// booking API on top of the Echo framework.  Handlers bind request
// DTOs, call repositories or the booking scheduler, and translate
// domain errors into JSON responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/booking"
	"github.com/iliyamo/coworking-booking/internal/model"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// clientIDFrom extracts the authenticated client ID stored in the
// context by the JWT middleware.  JWT numeric claims decode as
// float64; tokens issued by other tooling may carry a string.
func clientIDFrom(c echo.Context) uint64 {
	switch v := c.Get("client_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// roleFrom extracts the role claim set by the JWT middleware.
func roleFrom(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// isAdminRole reports whether a role carries administrator
// privileges.  OWNER implies ADMIN everywhere.
func isAdminRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleOwner
}

// validListValues guards values headed for a comma separated storage
// column (feature tags, image ID lists): a value containing a comma
// would come back split into several entries.
func validListValues(items []string) bool {
	for _, it := range items {
		if strings.Contains(it, ",") {
			return false
		}
	}
	return true
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// jsonError translates a domain error into the matching HTTP status
// with a JSON body.  Wrapped sentinel prefixes are stripped so the
// client sees the reason, not the classification.
func jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, booking.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, booking.ErrConflict):
		status = http.StatusConflict
	}
	msg := "internal error"
	if status != http.StatusInternalServerError {
		msg = reasonOf(err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}

func reasonOf(err error) string {
	msg := err.Error()
	for _, s := range []error{booking.ErrNotFound, booking.ErrBadRequest, booking.ErrForbidden, booking.ErrConflict} {
		msg = strings.TrimPrefix(msg, s.Error()+": ")
	}
	return msg
}

// ----- response DTOs shared by public and admin endpoints -----

type buildingResp struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	OpenFrom    *int     `json:"open_from"`
	OpenTill    *int     `json:"open_till"`
	Address     string   `json:"address"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	ImageIDs    []string `json:"image_ids"`
}

func toBuildingResp(b *model.Building) buildingResp {
	return buildingResp{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		OpenFrom:    b.OpenFrom,
		OpenTill:    b.OpenTill,
		Address:     b.Address,
		X:           b.X,
		Y:           b.Y,
		ImageIDs:    b.ImageIDs,
	}
}

type floorPlanResp struct {
	BuildingID uint64 `json:"building_id"`
	Floor      int    `json:"floor"`
	ImageID    string `json:"image_id"`
}

type placeResp struct {
	ID         uint64   `json:"id"`
	BuildingID uint64   `json:"building_id"`
	Floor      int      `json:"floor"`
	Name       string   `json:"name"`
	Features   []string `json:"features"`
	Size       float64  `json:"size"`
	Rotate     int      `json:"rotate"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	ImageID    *string  `json:"image_id"`
}

func toPlaceResp(p *model.Place) placeResp {
	return placeResp{
		ID:         p.ID,
		BuildingID: p.BuildingID,
		Floor:      p.Floor,
		Name:       p.Name,
		Features:   p.Features,
		Size:       p.Size,
		Rotate:     p.Rotate,
		X:          p.X,
		Y:          p.Y,
		ImageID:    p.ImageID,
	}
}

type visitResp struct {
	ID           uint64    `json:"id"`
	PlaceID      uint64    `json:"place_id"`
	ClientID     uint64    `json:"client_id"`
	VisitFrom    time.Time `json:"visit_from"`
	VisitTill    time.Time `json:"visit_till"`
	IsVisited    bool      `json:"is_visited"`
	IsFeedbacked bool      `json:"is_feedbacked"`
}

func toVisitResp(v *model.Visit) visitResp {
	return visitResp{
		ID:           v.ID,
		PlaceID:      v.PlaceID,
		ClientID:     v.ClientID,
		VisitFrom:    v.VisitFrom,
		VisitTill:    v.VisitTill,
		IsVisited:    v.IsVisited,
		IsFeedbacked: v.IsFeedbacked,
	}
}
