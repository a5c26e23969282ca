package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/handler"
	"github.com/iliyamo/coworking-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout sits outside the JWT middleware: a refresh token in the
	// body is enough to end a session even when the access token has
	// already expired.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PATCH("/me", a.UpdateMe)
}

// RegisterPublic registers unauthenticated browse endpoints: the
// building catalogue, floor plans, places and feedback listings.
// Guests can explore the platform before registering.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, s *handler.SettingsHandler) {
	// Branding is read before login, so the settings read is public.
	e.GET("/v1/settings", s.GetSettings)
	e.GET("/v1/buildings", p.GetBuildings)
	e.GET("/v1/buildings/:id", p.GetBuilding)
	e.GET("/v1/buildings/:id/floors", p.GetFloorPlans)
	// Use the optional ?floor= query parameter to narrow to one floor.
	e.GET("/v1/buildings/:id/places", p.GetBuildingPlaces)
	e.GET("/v1/places/:id", p.GetPlace)
	e.GET("/v1/buildings/:id/feedbacks", p.GetBuildingFeedbacks)
}
