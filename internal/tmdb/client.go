// Package tmdb is a small client for the movie catalog API.  Every fetch is
// one authenticated GET; nothing is cached, batched or retried here.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/movies-catalogue/internal/model"
)

const (
	// DefaultBaseURL is the upstream API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds each upstream request.
	DefaultTimeout = 10 * time.Second
	// DefaultCastLimit is the number of cast entries shown on a detail page.
	DefaultCastLimit = 8
	// DefaultSampleSize is the number of movies SampleMovies returns.
	DefaultSampleSize = 4
)

// Operation names, used in errors and request observations.
const (
	OpList    = "list"
	OpDetail  = "detail"
	OpCredits = "credits"
	OpImages  = "images"
)

// RequestObserver is notified after every upstream round trip.  status is
// zero when the request failed before a response arrived.
type RequestObserver func(op string, status int, elapsed time.Duration)

// Config holds everything the client needs.  Token is required.
//
// Fields:
//  Token      bearer token sent on every request.
//  BaseURL    API root; DefaultBaseURL when empty.
//  Timeout    per-request bound; DefaultTimeout when zero.
//  HTTPClient optional; its Timeout is left as is.
//  Rand       randomness for SampleMovies; DefaultRandomizer when nil.
//  Observer   optional hook for metrics.
type Config struct {
	Token      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Rand       Randomizer
	Observer   RequestObserver
}

// Client talks to the movie catalog API.  It is safe for concurrent use;
// all fields are read-only after NewClient.
type Client struct {
	token    string
	baseURL  string
	http     *http.Client
	rand     Randomizer
	observer RequestObserver
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("tmdb: empty API token")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, err
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: timeout,
				MaxIdleConnsPerHost:   16,
			},
		}
	}
	r := cfg.Rand
	if r == nil {
		r = DefaultRandomizer()
	}
	return &Client{
		token:    token,
		baseURL:  base,
		http:     hc,
		rand:     r,
		observer: cfg.Observer,
	}, nil
}

// FetchMovieList returns the upstream list for category.  The category is
// sent as given; callers resolve user input with model.ResolveCategory.
func (c *Client) FetchMovieList(ctx context.Context, category model.ListCategory) (*model.MovieList, error) {
	path := "/movie/" + url.PathEscape(string(category))
	var list model.MovieList
	if err := c.get(ctx, OpList, path, &list); err != nil {
		return nil, err
	}
	if list.Results == nil {
		return nil, &MalformedResponseError{Op: OpList, URL: c.baseURL + path, Err: errors.New(`missing "results"`)}
	}
	return &list, nil
}

// FetchMovieDetail returns the upstream detail record for movieID.
func (c *Client) FetchMovieDetail(ctx context.Context, movieID string) (model.MovieDetail, error) {
	path := "/movie/" + url.PathEscape(movieID)
	var detail model.MovieDetail
	if err := c.get(ctx, OpDetail, path, &detail); err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, &MalformedResponseError{Op: OpDetail, URL: c.baseURL + path, Err: errors.New("empty body")}
	}
	return detail, nil
}

// FetchMovieCast returns the first limit cast entries in upstream order.
// A limit of zero or less means DefaultCastLimit.
func (c *Client) FetchMovieCast(ctx context.Context, movieID string, limit int) ([]model.CastEntry, error) {
	if limit <= 0 {
		limit = DefaultCastLimit
	}
	path := "/movie/" + url.PathEscape(movieID) + "/credits"
	var credits struct {
		Cast []model.CastEntry `json:"cast"`
	}
	if err := c.get(ctx, OpCredits, path, &credits); err != nil {
		return nil, err
	}
	if credits.Cast == nil {
		return nil, &MalformedResponseError{Op: OpCredits, URL: c.baseURL + path, Err: errors.New(`missing "cast"`)}
	}
	if len(credits.Cast) > limit {
		credits.Cast = credits.Cast[:limit]
	}
	return credits.Cast, nil
}

// FetchMovieImages returns the upstream image set for movieID.
func (c *Client) FetchMovieImages(ctx context.Context, movieID string) (*model.ImageSet, error) {
	path := "/movie/" + url.PathEscape(movieID) + "/images"
	var raw struct {
		model.ImageSet
		Backdrops *[]model.Image `json:"backdrops"`
	}
	if err := c.get(ctx, OpImages, path, &raw); err != nil {
		return nil, err
	}
	if raw.Backdrops == nil {
		return nil, &MalformedResponseError{Op: OpImages, URL: c.baseURL + path, Err: errors.New(`missing "backdrops"`)}
	}
	set := raw.ImageSet
	set.Backdrops = *raw.Backdrops
	return &set, nil
}

// SampleMovies fetches category and returns up to count of its movies in
// random order.  count of zero or less means DefaultSampleSize.
func (c *Client) SampleMovies(ctx context.Context, count int, category model.ListCategory) ([]model.MovieSummary, error) {
	if count <= 0 {
		count = DefaultSampleSize
	}
	list, err := c.FetchMovieList(ctx, category)
	if err != nil {
		return nil, err
	}
	return Sample(list.Results, count, c.rand), nil
}

// FetchAllLists fetches every selectable category, one request each, in
// selector order.  The first failure aborts the walk.
func (c *Client) FetchAllLists(ctx context.Context) ([]model.CategoryList, error) {
	opts := model.Categories()
	out := make([]model.CategoryList, 0, len(opts))
	for _, opt := range opts {
		list, err := c.FetchMovieList(ctx, opt.Category)
		if err != nil {
			return nil, err
		}
		out = append(out, model.CategoryList{CategoryOption: opt, Movies: list.Results})
	}
	return out, nil
}

// get issues one GET against path and decodes a 2xx JSON body into dst.
func (c *Client) get(ctx context.Context, op, path string, dst any) error {
	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &UpstreamError{Op: op, URL: reqURL, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		return &UpstreamError{Op: op, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()
	c.observe(op, resp.StatusCode, start)

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &NotFoundError{Op: op, URL: reqURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{Op: op, URL: reqURL, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	// Numbers stay json.Number so large ids render as digits, not 1.2e+06.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if ue := (&UpstreamError{Op: op, URL: reqURL, Err: err}); ue.Timeout() || ctx.Err() != nil {
			return ue
		}
		return &MalformedResponseError{Op: op, URL: reqURL, Err: err}
	}
	return nil
}

func (c *Client) observe(op string, status int, start time.Time) {
	if c.observer != nil {
		c.observer(op, status, time.Since(start))
	}
}
