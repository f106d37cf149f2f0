package model

import "testing"

func TestResolveCategory(t *testing.T) {
	cases := map[string]ListCategory{
		"now_playing": CategoryNowPlaying,
		"popular":     CategoryPopular,
		"top_rated":   CategoryTopRated,
		"upcoming":    CategoryUpcoming,
		"":            CategoryPopular,
		"latest":      CategoryPopular,
		"Popular":     CategoryPopular,
		" upcoming":   CategoryPopular,
		"../popular":  CategoryPopular,
	}
	for raw, want := range cases {
		if got := ResolveCategory(raw); got != want {
			t.Errorf("ResolveCategory(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCategories_OrderAndLabels(t *testing.T) {
	got := Categories()
	want := []CategoryOption{
		{CategoryNowPlaying, "Now playing"},
		{CategoryPopular, "Popular"},
		{CategoryTopRated, "Top rated"},
		{CategoryUpcoming, "Upcoming"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	got[0].Label = "changed"
	if Categories()[0].Label != "Now playing" {
		t.Fatalf("Categories returned shared storage")
	}
}

func TestListCategory_Label(t *testing.T) {
	if CategoryTopRated.Label() != "Top rated" {
		t.Fatalf("label = %q", CategoryTopRated.Label())
	}
	if ListCategory("nope").Label() != "" {
		t.Fatalf("unknown category must have empty label")
	}
}
