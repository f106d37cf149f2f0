package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/iliyamo/movies-catalogue/internal/model"
)

func mustRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func parse(t *testing.T, buf *bytes.Buffer) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestRender_HomepageMarksSelectedList(t *testing.T) {
	r := mustRenderer(t)
	data := map[string]any{
		"Movies": []model.MovieSummary{
			{"id": 1, "title": "One", "poster_path": "/one.jpg"},
			{"id": 2, "title": "Two", "poster_path": nil},
		},
		"Lists":    model.Categories(),
		"Selected": model.CategoryTopRated,
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, PageHome, data, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parse(t, &buf)

	if n := doc.Find("article.movie").Length(); n != 2 {
		t.Fatalf("movies = %d", n)
	}
	if src, _ := doc.Find("article.movie img").First().Attr("src"); src != "https://image.tmdb.org/t/p/w342//one.jpg" {
		t.Fatalf("poster src = %q", src)
	}
	if n := doc.Find("article.movie img").Length(); n != 1 {
		t.Fatalf("movie without poster must not render an img, got %d imgs", n)
	}
	active := doc.Find("a.list-type.active")
	if active.Length() != 1 || strings.TrimSpace(active.Text()) != "Top rated" {
		t.Fatalf("active list = %q", active.Text())
	}
	if href, _ := doc.Find("a.list-type").First().Attr("href"); href != "/?list_type=now_playing" {
		t.Fatalf("first href = %q", href)
	}
}

func TestRender_MovieDetailPlaceholderWithoutBackdrop(t *testing.T) {
	r := mustRenderer(t)
	data := map[string]any{
		"Movie":    model.MovieDetail{"title": "Heat", "overview": "LA crime"},
		"Cast":     []model.CastEntry{{"name": "Al Pacino", "character": "Vincent Hanna"}},
		"Backdrop": model.Image(nil),
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, PageMovie, data, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parse(t, &buf)

	if doc.Find(".backdrop.placeholder").Length() != 1 {
		t.Fatalf("expected placeholder backdrop")
	}
	if got := strings.TrimSpace(doc.Find("h1").Text()); got != "Heat" {
		t.Fatalf("title = %q", got)
	}
	if got := strings.TrimSpace(doc.Find("figcaption").Text()); got != "Al Pacino as Vincent Hanna" {
		t.Fatalf("cast = %q", got)
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r := mustRenderer(t)
	if err := r.Render(&bytes.Buffer{}, "nope", nil, nil); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}

func TestImageURL_IgnoresNull(t *testing.T) {
	if got := imageURL(nil, "w342"); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := imageURL("/x.jpg", "w500"); got != "https://image.tmdb.org/t/p/w500//x.jpg" {
		t.Fatalf("got %q", got)
	}
}
