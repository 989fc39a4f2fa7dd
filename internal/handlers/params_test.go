package handlers

import (
	"net/url"
	"reflect"
	"testing"

	"carmarket/internal/models"
)

func TestParseListingFilterAllFields(t *testing.T) {
	q := url.Values{}
	q.Set("brand", "Toyota")
	q.Set("category", "suv")
	q.Set("minPrice", "5000")
	q.Set("maxPrice", "20000")
	q.Set("minYear", "2010")
	q.Set("maxYear", "2022")

	f := parseListingFilter(q)

	if f.Brand != "Toyota" || f.Category != "suv" {
		t.Fatalf("unexpected string filters: %+v", f)
	}
	if f.MinPrice == nil || *f.MinPrice != 5000 {
		t.Errorf("expected minPrice 5000, got %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 20000 {
		t.Errorf("expected maxPrice 20000, got %v", f.MaxPrice)
	}
	if f.MinYear == nil || *f.MinYear != 2010 {
		t.Errorf("expected minYear 2010, got %v", f.MinYear)
	}
	if f.MaxYear == nil || *f.MaxYear != 2022 {
		t.Errorf("expected maxYear 2022, got %v", f.MaxYear)
	}
}

func TestParseListingFilterMalformedNumbersDropped(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"letters", "abc"},
		{"empty", ""},
		{"float", "12.5"},
		{"negative", "-100"},
		{"trailing garbage", "100x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := url.Values{}
			q.Set("minPrice", tc.value)

			f := parseListingFilter(q)
			if f.MinPrice != nil {
				t.Fatalf("expected malformed minPrice %q to be dropped, got %d", tc.value, *f.MinPrice)
			}
		})
	}
}

func TestParseListingFilterIdempotent(t *testing.T) {
	q := url.Values{}
	q.Set("brand", "BMW")
	q.Set("minPrice", "1000")
	q.Set("maxYear", "2020")
	q.Set("minYear", "oops")

	first := parseListingFilter(q)
	second := parseListingFilter(encodeListingFilter(first))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-extraction changed the filter: %+v vs %+v", first, second)
	}
}

func TestParseListingFilterEmptyIsUnconstrained(t *testing.T) {
	f := parseListingFilter(url.Values{})

	if !reflect.DeepEqual(f, models.ListingFilter{}) {
		t.Fatalf("expected zero filter, got %+v", f)
	}
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"1", 1},
		{"7", 7},
	}

	for _, tc := range cases {
		if got := parsePage(tc.in); got != tc.want {
			t.Errorf("parsePage(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
