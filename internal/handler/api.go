package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movies-catalogue/internal/model"
	"github.com/iliyamo/movies-catalogue/internal/tmdb"
)

// MaxSampleSize caps ?count= on the sample endpoint.
const MaxSampleSize = 20

// APIMovies returns the homepage selection as JSON:
// {"list_type": ..., "items": [...]}.
func (h *MovieHandler) APIMovies(c echo.Context) error {
	selected := model.ResolveCategory(c.QueryParam("list_type"))
	list, err := h.Catalog.FetchMovieList(c.Request().Context(), selected)
	if err != nil {
		return h.failJSON(c, err, tmdb.OpList)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"list_type": selected,
		"items":     firstN(list.Results, HomepageLimit),
	})
}

// APISample returns ?count= random movies (default 4, at most
// MaxSampleSize) from ?list_type=.
func (h *MovieHandler) APISample(c echo.Context) error {
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil || count < 1 {
		count = tmdb.DefaultSampleSize
	}
	if count > MaxSampleSize {
		count = MaxSampleSize
	}
	selected := model.ResolveCategory(c.QueryParam("list_type"))
	items, err := h.Catalog.SampleMovies(c.Request().Context(), count, selected)
	if err != nil {
		return h.failJSON(c, err, tmdb.OpList)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"list_type": selected,
		"items":     items,
	})
}

// APILists returns every selectable list with its label and movies.
func (h *MovieHandler) APILists(c echo.Context) error {
	lists, err := h.Catalog.FetchAllLists(c.Request().Context())
	if err != nil {
		return h.failJSON(c, err, tmdb.OpList)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": lists})
}
