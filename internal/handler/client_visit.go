package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/booking"
	"github.com/iliyamo/coworking-booking/internal/queue"
	"github.com/iliyamo/coworking-booking/internal/repository"
	queue_publisher "github.com/iliyamo/coworking-booking/internal/service"
)

// VisitHandler exposes the client-facing reservation endpoints.  All
// booking rules live in the scheduler; the handler binds DTOs, maps
// errors and fires the visit.reserved event.
type VisitHandler struct {
	Scheduler *booking.Scheduler
	Visits    *repository.VisitRepo
	Places    *repository.PlaceRepo
}

func NewVisitHandler(s *booking.Scheduler, v *repository.VisitRepo, p *repository.PlaceRepo) *VisitHandler {
	return &VisitHandler{Scheduler: s, Visits: v, Places: p}
}

type reserveReq struct {
	PlaceID   uint64    `json:"place_id"`
	VisitFrom time.Time `json:"visit_from"`
	VisitTill time.Time `json:"visit_till"`
}

type feedbackReq struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// Reserve books a place for the authenticated client.  On success the
// reservation is announced on the message queue; a broker failure is
// logged by the publisher and never fails the request.
func (h *VisitHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PlaceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "place_id required"})
	}
	clientID := clientIDFrom(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	v, err := h.Scheduler.Reserve(ctx, clientID, req.PlaceID, req.VisitFrom, req.VisitTill)
	if err != nil {
		return jsonError(c, err)
	}

	h.publishReserved(v.ID, clientID, req.PlaceID, v.VisitFrom, v.VisitTill)

	return c.JSON(http.StatusCreated, toVisitResp(v))
}

func (h *VisitHandler) publishReserved(visitID, clientID, placeID uint64, from, till time.Time) {
	ev := queue.VisitReservedEvent{
		VisitID:    visitID,
		ClientID:   clientID,
		PlaceID:    placeID,
		VisitFrom:  from.Format(time.RFC3339),
		VisitTill:  till.Format(time.RFC3339),
		ReservedAt: time.Now().UTC().Format(time.RFC3339),
	}
	// Best effort enrichment; the event is useful even without names.
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	if p, err := h.Places.GetPlace(ctx, placeID); err == nil {
		ev.PlaceName = p.Name
		ev.BuildingID = p.BuildingID
		if b, err := h.Places.GetBuilding(ctx, p.BuildingID); err == nil {
			ev.BuildingName = b.Name
		}
	}
	_ = queue_publisher.PublishVisitReserved(ctx, ev)
}

// Cancel removes one of the caller's visits.  Administrators may
// cancel any visit through the same endpoint.
func (h *VisitHandler) Cancel(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visit id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Scheduler.Cancel(ctx, id, clientIDFrom(c), isAdminRole(roleFrom(c))); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyVisits lists the caller's visits, newest first.
func (h *VisitHandler) MyVisits(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rows, err := h.Visits.ListByClient(ctx, clientIDFrom(c))
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]visitResp, 0, len(rows))
	for i := range rows {
		out = append(out, toVisitResp(&rows[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// SubmitFeedback closes one of the caller's visited visits with a
// rating and review text.
func (h *VisitHandler) SubmitFeedback(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visit id"})
	}
	var req feedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Scheduler.SubmitFeedback(ctx, id, clientIDFrom(c), req.Rating, req.Text); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RefuseFeedback closes one of the caller's visited visits without a
// review.
func (h *VisitHandler) RefuseFeedback(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visit id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Scheduler.RefuseFeedback(ctx, id, clientIDFrom(c)); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
