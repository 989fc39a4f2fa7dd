package utils

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{5, "$5"},
		{100, "$100"},
		{1000, "$1,000"},
		{24500, "$24,500"},
		{1234567, "$1,234,567"},
		{999.6, "$1,000"},
		{15499.49, "$15,499"},
		{-5000, "-$5,000"},
	}

	for _, tc := range cases {
		if got := FormatCurrency(tc.amount); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
