package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// newJSONCtx builds an Echo context carrying a JSON body.  The
// handlers under test reject the request during validation, before
// any repository call, so they run against nil repositories.
func newJSONCtx(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestCreateBuilding_RejectsCommaInImageID(t *testing.T) {
	h := NewAdminBuildingHandler(nil)
	c, rec := newJSONCtx(t, http.MethodPost,
		`{"name":"North Hub","image_ids":["img-1,img-2"]}`)

	require.NoError(t, h.CreateBuilding(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "image ids")
}

func TestUpdateBuilding_RejectsCommaInImageID(t *testing.T) {
	h := NewAdminBuildingHandler(nil)
	c, rec := newJSONCtx(t, http.MethodPatch, `{"image_ids":["ok","bad,split"]}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.UpdateBuilding(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "image ids")
}

func TestCreatePlace_RejectsCommaInFeatureTag(t *testing.T) {
	h := NewAdminPlaceHandler(nil, nil)
	c, rec := newJSONCtx(t, http.MethodPost,
		`{"building_id":1,"name":"Desk 1","features":["wifi,lamp"]}`)

	require.NoError(t, h.CreatePlace(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "feature tags")
}

func TestUpdateMe_RequiresSomethingToUpdate(t *testing.T) {
	h := &AuthHandler{}
	c, rec := newJSONCtx(t, http.MethodPatch, `{}`)

	require.NoError(t, h.UpdateMe(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "nothing to update")
}

func TestUpdateMe_RejectsBlankName(t *testing.T) {
	h := &AuthHandler{}
	c, rec := newJSONCtx(t, http.MethodPatch, `{"name":"   "}`)

	require.NoError(t, h.UpdateMe(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "name can not be empty")
}

func TestUpdateMe_RejectsEmptyPassword(t *testing.T) {
	h := &AuthHandler{}
	c, rec := newJSONCtx(t, http.MethodPatch, `{"password":""}`)

	require.NoError(t, h.UpdateMe(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "password can not be empty")
}

func TestUpdateSettings_RequiresKnownField(t *testing.T) {
	h := NewSettingsHandler(nil)
	c, rec := newJSONCtx(t, http.MethodPatch, `{"theme":"dark"}`)

	require.NoError(t, h.UpdateSettings(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "nothing to update")
}

func TestUpdateSettings_RejectsBlankApplicationName(t *testing.T) {
	h := NewSettingsHandler(nil)
	c, rec := newJSONCtx(t, http.MethodPatch, `{"application_name":" "}`)

	require.NoError(t, h.UpdateSettings(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "application_name")
}
