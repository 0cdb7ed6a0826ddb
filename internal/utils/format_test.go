package utils

import "testing"

func TestFormatCount(t *testing.T) {
	tests := []struct {
		count int64
		want  string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1_000, "1.0K"},
		{1_250, "1.2K"},
		{1_299, "1.2K"},
		{999_950, "999.9K"},
		{999_999, "999.9K"},
		{1_000_000, "1.0M"},
		{2_450_000, "2.4M"},
		{2_499_999, "2.4M"},
	}

	for _, tc := range tests {
		if got := FormatCount(tc.count); got != tc.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{7322, "2:02:02"},
	}

	for _, tc := range tests {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
