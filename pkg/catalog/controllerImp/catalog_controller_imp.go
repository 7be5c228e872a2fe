package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/catalog/service"
	"github.com/er-knight/leetcodedaily/pkg/catalog/types"
	"github.com/er-knight/leetcodedaily/pkg/errs"
)

// SourceFunc opens a fresh page source for one sync.
type SourceFunc func() (service.PageSource, error)

type CatalogCtrl struct {
	svc       service.Synchronizer
	newSource SourceFunc
}

func New(svc service.Synchronizer, newSource SourceFunc) *CatalogCtrl {
	return &CatalogCtrl{svc: svc, newSource: newSource}
}

func (h *CatalogCtrl) ListProblems(c echo.Context) error {
	var difficulty entities.Difficulty
	if q := c.QueryParam("difficulty"); q != "" {
		d, err := types.ParseDifficulty(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		difficulty = d
	}
	limit := 0
	if q := c.QueryParam("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad limit"})
		}
		limit = n
	}

	out, err := h.svc.ListProblems(c.Request().Context(), difficulty, limit)
	if err != nil {
		return c.JSON(errs.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogCtrl) Sync(c echo.Context) error {
	src, err := h.newSource()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	rep, err := h.svc.SyncAll(c.Request().Context(), src)
	if err != nil {
		return c.JSON(errs.HTTPStatus(err), map[string]any{"error": err.Error(), "report": rep})
	}
	return c.JSON(http.StatusOK, rep)
}
