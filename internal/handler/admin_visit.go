package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/booking"
	"github.com/iliyamo/coworking-booking/internal/repository"
)

// AdminVisitHandler exposes the administrator side of the visit
// lifecycle: check-in and schedule/feedback overviews.
type AdminVisitHandler struct {
	Scheduler *booking.Scheduler
	Visits    *repository.VisitRepo
	Buildings *repository.BuildingRepo
}

func NewAdminVisitHandler(s *booking.Scheduler, v *repository.VisitRepo, b *repository.BuildingRepo) *AdminVisitHandler {
	return &AdminVisitHandler{Scheduler: s, Visits: v, Buildings: b}
}

// MarkVisited checks a client in.  The visit must have started;
// re-marking an already visited visit is a no-op.
func (h *AdminVisitHandler) MarkVisited(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visit id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Scheduler.MarkVisited(ctx, id, isAdminRole(roleFrom(c))); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBuildingVisits returns the upcoming and running visits of a
// building for the front-desk schedule view.
func (h *AdminVisitHandler) ListBuildingVisits(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, id); err != nil {
		return jsonError(c, err)
	}
	rows, err := h.Visits.ListUpcomingByBuilding(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]visitResp, 0, len(rows))
	for i := range rows {
		out = append(out, toVisitResp(&rows[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// ListCurrentlyVisiting returns the clients that are checked in right
// now together with the place they occupy, for the front-desk view.
func (h *AdminVisitHandler) ListCurrentlyVisiting(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Visits.ListCurrentlyVisiting(ctx)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListFeedbacks returns every feedback on the platform, newest first.
func (h *AdminVisitHandler) ListFeedbacks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Visits.ListFeedbacks(ctx)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
