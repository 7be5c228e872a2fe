package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/er-knight/leetcodedaily/pkg/middleware"
)

type stub struct{}

func ok(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

func (stub) ListProblems(c echo.Context) error { return ok(c) }
func (stub) Sync(c echo.Context) error         { return ok(c) }
func (stub) Generate(c echo.Context) error     { return ok(c) }
func (stub) List(c echo.Context) error         { return ok(c) }
func (stub) Export(c echo.Context) error       { return ok(c) }
func (stub) Health(c echo.Context) error       { return ok(c) }

func TestRoutes(t *testing.T) {
	e := New(echo.New(), zap.NewNop(), "s3cret", stub{}, stub{}, stub{})

	cases := []struct {
		method, path string
		token        bool
		want         int
	}{
		{http.MethodGet, "/health", false, http.StatusNoContent},
		{http.MethodGet, "/problems", false, http.StatusNoContent},
		{http.MethodGet, "/schedule", false, http.StatusNoContent},
		{http.MethodGet, "/schedule/export", false, http.StatusNoContent},
		{http.MethodPost, "/schedule", false, http.StatusUnauthorized},
		{http.MethodPost, "/schedule", true, http.StatusNoContent},
		{http.MethodPost, "/catalog/sync", false, http.StatusUnauthorized},
		{http.MethodPost, "/catalog/sync", true, http.StatusNoContent},
		{http.MethodDelete, "/schedule", true, http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.token {
			req.Header.Set(middleware.AdminTokenHeader, "s3cret")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s %s token=%v: status = %d, want %d", tc.method, tc.path, tc.token, rec.Code, tc.want)
		}
	}
}
