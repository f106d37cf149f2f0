// Package handler exposes the HTTP handlers of the movie front-end.  This
// file holds the two HTML pages: the homepage list and the movie detail.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movies-catalogue/internal/model"
	"github.com/iliyamo/movies-catalogue/internal/queue"
	"github.com/iliyamo/movies-catalogue/internal/render"
	"github.com/iliyamo/movies-catalogue/internal/tmdb"
)

// HomepageLimit is the number of movies shown on the homepage.
const HomepageLimit = 8

// Catalog is the subset of *tmdb.Client the handlers use.
type Catalog interface {
	FetchMovieList(ctx context.Context, category model.ListCategory) (*model.MovieList, error)
	FetchMovieDetail(ctx context.Context, movieID string) (model.MovieDetail, error)
	FetchMovieCast(ctx context.Context, movieID string, limit int) ([]model.CastEntry, error)
	FetchMovieImages(ctx context.Context, movieID string) (*model.ImageSet, error)
	SampleMovies(ctx context.Context, count int, category model.ListCategory) ([]model.MovieSummary, error)
	FetchAllLists(ctx context.Context) ([]model.CategoryList, error)
}

// ViewPublisher receives an event for every rendered detail page.
type ViewPublisher interface {
	PublishMovieViewed(ctx context.Context, ev queue.MovieViewedEvent) error
}

// ErrorReporter forwards server-side failures to an error tracker.
type ErrorReporter func(err error, tags map[string]string)

// MovieHandler serves the movie pages and the JSON API.
type MovieHandler struct {
	Catalog Catalog         // upstream movie catalog
	Rand    tmdb.Randomizer // backdrop selection
	Log     *logrus.Entry   // request-scoped fields are added per call
	Events  ViewPublisher   // optional
	Report  ErrorReporter   // optional
}

// NewMovieHandler wires a MovieHandler.  A nil rand uses the process-wide
// source; events and report may be nil.
func NewMovieHandler(catalog Catalog, rand tmdb.Randomizer, log *logrus.Entry, events ViewPublisher, report ErrorReporter) *MovieHandler {
	if catalog == nil || log == nil {
		panic("nil dependency passed to NewMovieHandler")
	}
	if rand == nil {
		rand = tmdb.DefaultRandomizer()
	}
	return &MovieHandler{Catalog: catalog, Rand: rand, Log: log, Events: events, Report: report}
}

// HomepageData is the homepage template input.
type HomepageData struct {
	Movies   []model.MovieSummary
	Lists    []model.CategoryOption
	Selected model.ListCategory
}

// MovieDetailData is the detail page template input.  Backdrop is nil when
// the movie has no backdrops; the page then shows a placeholder.
type MovieDetailData struct {
	Movie    model.MovieDetail
	Cast     []model.CastEntry
	Backdrop model.Image
}

// Homepage renders up to HomepageLimit movies of the requested list.
// ?list_type= outside the known set falls back to popular.
func (h *MovieHandler) Homepage(c echo.Context) error {
	selected := model.ResolveCategory(c.QueryParam("list_type"))
	list, err := h.Catalog.FetchMovieList(c.Request().Context(), selected)
	if err != nil {
		return h.failPage(c, err, tmdb.OpList)
	}
	return c.Render(http.StatusOK, render.PageHome, HomepageData{
		Movies:   firstN(list.Results, HomepageLimit),
		Lists:    model.Categories(),
		Selected: selected,
	})
}

// MovieDetail renders one movie with its first cast members and a random
// backdrop.  The three upstream calls run one after another.
func (h *MovieHandler) MovieDetail(c echo.Context) error {
	movieID := c.Param("movie_id")
	if _, err := strconv.ParseUint(movieID, 10, 64); err != nil {
		return h.renderError(c, http.StatusBadRequest, "Invalid movie id", "Movie ids are numeric.")
	}
	ctx := c.Request().Context()

	detail, err := h.Catalog.FetchMovieDetail(ctx, movieID)
	if err != nil {
		return h.failPage(c, err, tmdb.OpDetail)
	}
	cast, err := h.Catalog.FetchMovieCast(ctx, movieID, tmdb.DefaultCastLimit)
	if err != nil {
		return h.failPage(c, err, tmdb.OpCredits)
	}
	images, err := h.Catalog.FetchMovieImages(ctx, movieID)
	if err != nil {
		return h.failPage(c, err, tmdb.OpImages)
	}

	backdrop, err := tmdb.PickBackdrop(images, h.Rand)
	if errors.Is(err, tmdb.ErrNoImageAvailable) {
		h.Log.WithField("movie_id", movieID).Debug("no backdrops, rendering placeholder")
	}

	if err := c.Render(http.StatusOK, render.PageMovie, MovieDetailData{
		Movie:    detail,
		Cast:     cast,
		Backdrop: backdrop,
	}); err != nil {
		return err
	}
	h.publishView(c, movieID, detail, backdrop, len(cast))
	return nil
}

// publishView sends the event without holding up the response.  The
// request context is detached so the publish survives the client leaving.
func (h *MovieHandler) publishView(c echo.Context, movieID string, detail model.MovieDetail, backdrop model.Image, castShown int) {
	if h.Events == nil {
		return
	}
	title, _ := detail["title"].(string)
	ev := queue.MovieViewedEvent{
		MovieID:      movieID,
		Title:        title,
		BackdropPath: backdrop.FilePath(),
		CastShown:    castShown,
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		ViewedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	ctx := context.WithoutCancel(c.Request().Context())
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := h.Events.PublishMovieViewed(ctx, ev); err != nil {
			h.Log.WithError(err).WithField("movie_id", movieID).Warn("publish movie viewed")
		}
	}()
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
