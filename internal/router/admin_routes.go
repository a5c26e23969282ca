package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/handler"
	"github.com/iliyamo/coworking-booking/internal/middleware"
	"github.com/iliyamo/coworking-booking/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN or OWNER role.
func RegisterAdmin(e *echo.Echo, b *handler.AdminBuildingHandler, p *handler.AdminPlaceHandler, v *handler.AdminVisitHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleOwner),
	)

	// ---- Buildings ----
	g.POST("/buildings", b.CreateBuilding)
	g.PATCH("/buildings/:id", b.UpdateBuilding)
	g.DELETE("/buildings/:id", b.DeleteBuilding)

	// ---- Floor plans ----
	g.POST("/buildings/:id/floors", b.AddFloorPlan)
	g.PATCH("/buildings/:id/floors/:floor", b.UpdateFloorPlan)
	g.DELETE("/buildings/:id/floors/:floor", b.DeleteFloorPlan)

	// ---- Places ----
	g.POST("/places", p.CreatePlace)
	g.PATCH("/places/:id", p.UpdatePlace)
	g.DELETE("/places/:id", p.DeletePlace)

	// ---- Visits ----
	g.POST("/visits/:id/visited", v.MarkVisited)
	g.GET("/buildings/:id/visits", v.ListBuildingVisits)
	g.GET("/visiting", v.ListCurrentlyVisiting)
	g.GET("/feedbacks", v.ListFeedbacks)
}

// RegisterOwner registers OWNER-scoped endpoints: administrator
// account management and global settings.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, s *handler.SettingsHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner),
	)

	g.GET("/admins", o.ListAdmins)
	g.PUT("/clients/:id/role", o.SetRole)
	g.PATCH("/settings", s.UpdateSettings)
}
