package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/repository"
)

// PublicHandler exposes unauthenticated browse endpoints: buildings,
// floor plans, places and feedback listings.  Responses go through
// the DTOs in common.go so internal columns never leak.
type PublicHandler struct {
	Buildings *repository.BuildingRepo
	Places    *repository.PlaceRepo
	Visits    *repository.VisitRepo
}

func NewPublicHandler(b *repository.BuildingRepo, p *repository.PlaceRepo, v *repository.VisitRepo) *PublicHandler {
	return &PublicHandler{Buildings: b, Places: p, Visits: v}
}

// GetBuildings lists every building on the platform.
func (h *PublicHandler) GetBuildings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	buildings, err := h.Buildings.List(ctx)
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]buildingResp, 0, len(buildings))
	for i := range buildings {
		out = append(out, toBuildingResp(&buildings[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GetBuilding returns one building by ID.
func (h *PublicHandler) GetBuilding(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Buildings.GetByID(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toBuildingResp(b))
}

// GetFloorPlans lists the floors of a building together with their
// scheme images.
func (h *PublicHandler) GetFloorPlans(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// Resolve the building first so an unknown ID is a 404, not an
	// empty list.
	if _, err := h.Buildings.GetByID(ctx, id); err != nil {
		return jsonError(c, err)
	}
	plans, err := h.Buildings.ListFloorPlans(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]floorPlanResp, 0, len(plans))
	for _, fp := range plans {
		out = append(out, floorPlanResp{BuildingID: fp.BuildingID, Floor: fp.Floor, ImageID: fp.ImageID})
	}
	return c.JSON(http.StatusOK, out)
}

// GetBuildingPlaces lists all places of a building.  The optional
// ?floor= query parameter narrows the listing to one floor.
func (h *PublicHandler) GetBuildingPlaces(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, id); err != nil {
		return jsonError(c, err)
	}

	var places []placeResp
	if raw := c.QueryParam("floor"); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor"})
		}
		rows, err := h.Places.ListByFloor(ctx, id, floor)
		if err != nil {
			return jsonError(c, err)
		}
		places = make([]placeResp, 0, len(rows))
		for i := range rows {
			places = append(places, toPlaceResp(&rows[i]))
		}
	} else {
		rows, err := h.Places.ListByBuilding(ctx, id)
		if err != nil {
			return jsonError(c, err)
		}
		places = make([]placeResp, 0, len(rows))
		for i := range rows {
			places = append(places, toPlaceResp(&rows[i]))
		}
	}
	return c.JSON(http.StatusOK, places)
}

// GetPlace returns one place by ID.
func (h *PublicHandler) GetPlace(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Places.GetPlace(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toPlaceResp(p))
}

// GetBuildingFeedbacks lists the feedback left for places of one
// building, newest first.
func (h *PublicHandler) GetBuildingFeedbacks(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, id); err != nil {
		return jsonError(c, err)
	}
	out, err := h.Visits.ListFeedbacksByBuilding(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
