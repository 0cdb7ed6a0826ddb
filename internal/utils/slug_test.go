package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"My Channel", "my-channel"},
		{"  Gadgets & Gizmos!  ", "gadgets-gizmos"},
		{"already-slugged", "already-slugged"},
		{"UPPER", "upper"},
		{"100 Days of Code", "100-days-of-code"},
		{"___", ""},
		{"", ""},
		{"a--b", "a-b"},
	}

	for _, tc := range tests {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSlugCandidate(t *testing.T) {
	if got := SlugCandidate("my-channel", 0); got != "my-channel" {
		t.Errorf("attempt 0 must be the plain slug, got %q", got)
	}
	if got := SlugCandidate("my-channel", 1); got != "my-channel-1" {
		t.Errorf("attempt 1 = %q, want my-channel-1", got)
	}
	if got := SlugCandidate("my-channel", 12); got != "my-channel-12" {
		t.Errorf("attempt 12 = %q, want my-channel-12", got)
	}
}
