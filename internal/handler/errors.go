package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movies-catalogue/internal/render"
	"github.com/iliyamo/movies-catalogue/internal/tmdb"
)

// ErrorData is the error page template input.
type ErrorData struct {
	Status  int
	Title   string
	Message string
}

// StatusFor maps a catalog error to the status returned to the browser:
// 404 for unknown movies, 504 when upstream timed out, 502 for any other
// upstream or decoding failure and 500 otherwise.
func StatusFor(err error) int {
	var (
		ue *tmdb.UpstreamError
		me *tmdb.MalformedResponseError
	)
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ue):
		if ue.Timeout() {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.As(err, &me):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func statusTitle(status int) (title, message string) {
	switch status {
	case http.StatusNotFound:
		return "Movie not found", "The movie database has no entry for this page."
	case http.StatusGatewayTimeout:
		return "Movie database timed out", "Please try again in a moment."
	case http.StatusBadGateway:
		return "Movie database unavailable", "The movie database returned an unexpected answer."
	}
	return "Something went wrong", "Please try again later."
}

// logFailure logs err once per failed request and reports 5xx failures.
func (h *MovieHandler) logFailure(c echo.Context, err error, op string, status int) {
	entry := h.Log.WithFields(logrus.Fields{
		"op":         op,
		"status":     status,
		"path":       c.Request().URL.Path,
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("catalog request failed")
		if h.Report != nil {
			h.Report(err, map[string]string{"op": op, "status": strconv.Itoa(status)})
		}
		return
	}
	entry.Info("catalog request rejected")
}

// failPage renders the error page for a failed catalog call.
func (h *MovieHandler) failPage(c echo.Context, err error, op string) error {
	status := StatusFor(err)
	h.logFailure(c, err, op, status)
	title, msg := statusTitle(status)
	return h.renderError(c, status, title, msg)
}

// failJSON is failPage for the JSON API.
func (h *MovieHandler) failJSON(c echo.Context, err error, op string) error {
	status := StatusFor(err)
	h.logFailure(c, err, op, status)
	title, _ := statusTitle(status)
	return c.JSON(status, echo.Map{"error": title})
}

func (h *MovieHandler) renderError(c echo.Context, status int, title, message string) error {
	return c.Render(status, render.PageError, ErrorData{Status: status, Title: title, Message: message})
}
