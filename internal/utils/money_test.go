package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{10000, "100.00"},
		{15723, "157.23"},
		{-1502, "-15.02"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.minor); got != tc.want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}
