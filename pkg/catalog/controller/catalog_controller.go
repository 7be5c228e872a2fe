package controller

import "github.com/labstack/echo/v4"

type CatalogController interface {
	ListProblems(c echo.Context) error
	Sync(c echo.Context) error
}
