package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/model"
	"github.com/iliyamo/coworking-booking/internal/repository"
)

// SettingsHandler serves the global application settings: branding
// values every visitor reads and only the owner edits.
type SettingsHandler struct {
	Settings *repository.SettingsRepo
}

func NewSettingsHandler(s *repository.SettingsRepo) *SettingsHandler {
	return &SettingsHandler{Settings: s}
}

type settingsResp struct {
	AccentColor     string `json:"accent_color"`
	ApplicationName string `json:"application_name"`
	LogoID          string `json:"logo_id"`
}

// GetSettings returns the current settings.  The endpoint is public:
// the frontend needs branding before anyone logs in.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	kv, err := h.Settings.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, settingsResp{
		AccentColor:     kv[model.SettingAccentColor],
		ApplicationName: kv[model.SettingApplicationName],
		LogoID:          kv[model.SettingLogoID],
	})
}

type settingsUpdateReq struct {
	AccentColor     *string `json:"accent_color"`
	ApplicationName *string `json:"application_name"`
	LogoID          *string `json:"logo_id"`
}

// UpdateSettings applies the provided values.  The key set is fixed,
// so at least one known field must be present.
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req settingsUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.AccentColor == nil && req.ApplicationName == nil && req.LogoID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}
	if req.ApplicationName != nil && strings.TrimSpace(*req.ApplicationName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "application_name can not be empty"})
	}

	updates := []struct {
		key string
		val *string
	}{
		{model.SettingAccentColor, req.AccentColor},
		{model.SettingApplicationName, req.ApplicationName},
		{model.SettingLogoID, req.LogoID},
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	for _, u := range updates {
		if u.val == nil {
			continue
		}
		if err := h.Settings.Set(ctx, u.key, *u.val); err != nil {
			return jsonError(c, err)
		}
	}
	return h.GetSettings(c)
}
