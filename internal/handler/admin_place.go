package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/model"
	"github.com/iliyamo/coworking-booking/internal/repository"
)

// AdminPlaceHandler exposes place management for administrators.
type AdminPlaceHandler struct {
	Places    *repository.PlaceRepo
	Buildings *repository.BuildingRepo
}

func NewAdminPlaceHandler(p *repository.PlaceRepo, b *repository.BuildingRepo) *AdminPlaceHandler {
	return &AdminPlaceHandler{Places: p, Buildings: b}
}

type placeCreateReq struct {
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

// CreatePlace adds a bookable place to a floor.  The floor must have
// a plan; a place cannot sit on a floor that does not exist.
func (h *AdminPlaceHandler) CreatePlace(c echo.Context) error {
	var req placeCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.BuildingID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "building_id and name required"})
	}
	if !validListValues(req.Features) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "feature tags must not contain commas"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, req.BuildingID); err != nil {
		return jsonError(c, err)
	}
	exists, err := h.Buildings.FloorPlanExists(ctx, req.BuildingID, req.Floor)
	if err != nil {
		return jsonError(c, err)
	}
	if !exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "floor does not exist"})
	}

	p := &model.Place{
		BuildingID: req.BuildingID,
		Floor:      req.Floor,
		Name:       req.Name,
		Features:   req.Features,
		Size:       req.Size,
		Rotate:     req.Rotate,
		X:          req.X,
		Y:          req.Y,
		ImageID:    req.ImageID,
	}
	if err := h.Places.Create(ctx, p); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toPlaceResp(p))
}

type placeUpdateReq struct {
	Name     *string   `json:"name"`
	Features *[]string `json:"features"`
	Size     *float64  `json:"size"`
	Rotate   *int      `json:"rotate"`
	X        *float64  `json:"x"`
	Y        *float64  `json:"y"`
	ImageID  *string   `json:"image_id"`
}

// UpdatePlace applies a partial update.  Geometry and image columns
// are nullable, so their presence in the body is detected separately:
// an explicit null clears the column while an absent key leaves it
// untouched.
func (h *AdminPlaceHandler) UpdatePlace(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var req placeUpdateReq
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	_, hasX := keys["x"]
	_, hasY := keys["y"]
	_, hasImage := keys["image_id"]
	if req.Features != nil && !validListValues(*req.Features) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "feature tags must not contain commas"})
	}

	patch := repository.PlacePatch{
		Name:       req.Name,
		Features:   req.Features,
		Size:       req.Size,
		Rotate:     req.Rotate,
		SetX:       hasX,
		X:          req.X,
		SetY:       hasY,
		Y:          req.Y,
		SetImageID: hasImage,
		ImageID:    req.ImageID,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Places.Update(ctx, id, patch); err != nil {
		return jsonError(c, err)
	}
	p, err := h.Places.GetPlace(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toPlaceResp(p))
}

// DeletePlace removes a place together with its visits.
func (h *AdminPlaceHandler) DeletePlace(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Places.Delete(ctx, id); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
