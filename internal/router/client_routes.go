package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/handler"
	"github.com/iliyamo/coworking-booking/internal/middleware"
	"github.com/iliyamo/coworking-booking/internal/model"
)

// RegisterClient registers client-scoped endpoints under /v1.  All
// routes require a valid JWT; administrators pass through as well so
// they can cancel any visit via the same endpoint.
func RegisterClient(e *echo.Echo, h *handler.VisitHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleClient, model.RoleAdmin, model.RoleOwner),
	)

	g.POST("/visits", h.Reserve)
	g.DELETE("/visits/:id", h.Cancel)
	g.GET("/my-visits", h.MyVisits)

	// Visit lifecycle: feedback closes a visited visit, with or
	// without a review.
	g.POST("/visits/:id/feedback", h.SubmitFeedback)
	g.POST("/visits/:id/feedback/refuse", h.RefuseFeedback)
}
