package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/model"
	"github.com/iliyamo/coworking-booking/internal/repository"
)

// AdminBuildingHandler exposes building and floor-plan management for
// administrators.
type AdminBuildingHandler struct {
	Buildings *repository.BuildingRepo
}

func NewAdminBuildingHandler(b *repository.BuildingRepo) *AdminBuildingHandler {
	return &AdminBuildingHandler{Buildings: b}
}

type buildingCreateReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	OpenFrom    *int     `json:"open_from"`
	OpenTill    *int     `json:"open_till"`
	Address     string   `json:"address"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	ImageIDs    []string `json:"image_ids"`
}

// CreateBuilding registers a new coworking site.  Operating hours are
// optional; omitting both bounds means the building operates around
// the clock.
func (h *AdminBuildingHandler) CreateBuilding(c echo.Context) error {
	var req buildingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if (req.OpenFrom == nil) != (req.OpenTill == nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_from and open_till must be set together"})
	}
	if req.OpenFrom != nil && *req.OpenFrom >= *req.OpenTill {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_from must be before open_till"})
	}
	if !validListValues(req.ImageIDs) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image ids must not contain commas"})
	}

	b := &model.Building{
		Name:        req.Name,
		Description: req.Description,
		OpenFrom:    req.OpenFrom,
		OpenTill:    req.OpenTill,
		Address:     req.Address,
		X:           req.X,
		Y:           req.Y,
		ImageIDs:    req.ImageIDs,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Buildings.Create(ctx, b); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toBuildingResp(b))
}

type buildingUpdateReq struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Address     *string   `json:"address"`
	X           *float64  `json:"x"`
	Y           *float64  `json:"y"`
	ImageIDs    *[]string `json:"image_ids"`
	OpenFrom    *int      `json:"open_from"`
	OpenTill    *int      `json:"open_till"`
}

// UpdateBuilding applies a partial update.  A JSON null cannot be
// told apart from an absent field with plain pointers, and operating
// hours are legitimately cleared with nulls, so the raw body is also
// decoded into a key set to detect their presence.
func (h *AdminBuildingHandler) UpdateBuilding(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var req buildingUpdateReq
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	_, hasFrom := keys["open_from"]
	_, hasTill := keys["open_till"]
	if req.ImageIDs != nil && !validListValues(*req.ImageIDs) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image ids must not contain commas"})
	}

	patch := repository.BuildingPatch{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		X:            req.X,
		Y:            req.Y,
		ImageIDs:     req.ImageIDs,
		SetOpenHours: hasFrom || hasTill,
		OpenFrom:     req.OpenFrom,
		OpenTill:     req.OpenTill,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Buildings.Update(ctx, id, patch); err != nil {
		return jsonError(c, err)
	}
	b, err := h.Buildings.GetByID(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toBuildingResp(b))
}

// DeleteBuilding removes a building and everything under it.
func (h *AdminBuildingHandler) DeleteBuilding(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Buildings.Delete(ctx, id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type floorPlanCreateReq struct {
	Floor   int    `json:"floor"`
	ImageID string `json:"image_id"`
}

// AddFloorPlan adds a floor to a building.  Places can only be
// created on floors that have a plan.
func (h *AdminBuildingHandler) AddFloorPlan(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	var req floorPlanCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.ImageID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	fp := model.FloorPlan{BuildingID: id, Floor: req.Floor, ImageID: req.ImageID}
	if err := h.Buildings.InsertFloorPlan(ctx, fp); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, floorPlanResp{BuildingID: id, Floor: req.Floor, ImageID: req.ImageID})
}

type floorPlanUpdateReq struct {
	NewFloor *int    `json:"new_floor"`
	ImageID  *string `json:"image_id"`
}

// UpdateFloorPlan renumbers a floor and/or replaces its scheme image.
// Places on the floor follow the renumbering.
func (h *AdminBuildingHandler) UpdateFloorPlan(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	floor, err := strconv.Atoi(c.Param("floor"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor"})
	}
	var req floorPlanUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.NewFloor == nil && req.ImageID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	exists, err := h.Buildings.FloorPlanExists(ctx, id, floor)
	if err != nil {
		return jsonError(c, err)
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
	}
	if req.NewFloor != nil && *req.NewFloor != floor {
		taken, err := h.Buildings.FloorPlanExists(ctx, id, *req.NewFloor)
		if err != nil {
			return jsonError(c, err)
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "floor already exists"})
		}
	}

	if err := h.Buildings.MoveFloor(ctx, id, floor, req.NewFloor, req.ImageID); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteFloorPlan removes a floor together with its places and their
// visits.
func (h *AdminBuildingHandler) DeleteFloorPlan(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	floor, err := strconv.Atoi(c.Param("floor"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Buildings.DeleteFloorPlan(ctx, id, floor); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
