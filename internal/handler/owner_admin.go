package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/model"
	"github.com/iliyamo/coworking-booking/internal/repository"
)

// OwnerHandler exposes administrator-account management, available to
// the platform owner only.
type OwnerHandler struct {
	Clients *repository.ClientRepo
}

func NewOwnerHandler(cl *repository.ClientRepo) *OwnerHandler {
	return &OwnerHandler{Clients: cl}
}

// ListAdmins returns every administrator account.
func (h *OwnerHandler) ListAdmins(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	admins, err := h.Clients.ListAdmins(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]clientPart, 0, len(admins))
	for _, a := range admins {
		out = append(out, clientPart{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role})
	}
	return c.JSON(http.StatusOK, out)
}

type setRoleReq struct {
	Role string `json:"role"`
}

// SetRole promotes a client to ADMIN or demotes an admin back to
// CLIENT.  The OWNER role is assigned out of band and can be neither
// granted nor revoked here.
func (h *OwnerHandler) SetRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client id"})
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != model.RoleClient && role != model.RoleAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be CLIENT or ADMIN"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cl, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if cl.Role == model.RoleOwner {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner role can not be changed"})
	}

	if err := h.Clients.SetRole(ctx, id, role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, clientPart{ID: cl.ID, Email: cl.Email, Name: cl.Name, Role: role})
}
