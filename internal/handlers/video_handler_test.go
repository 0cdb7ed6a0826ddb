package handlers

import (
	"strings"
	"testing"

	"github.com/avlok/vidfeed_server/internal/store"
)

func TestValidateVideoInput(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		videoPath   string
		duration    int
		tags        []string
		wantOK      bool
	}{
		{"valid", "My Video", "a talk", "/videos/a.mp4", 120, []string{"go", "tutorial"}, true},
		{"no tags", "My Video", "", "/videos/a.mp4", 0, nil, true},
		{"empty title", "  ", "", "/videos/a.mp4", 120, nil, false},
		{"title too long", strings.Repeat("a", maxTitleLength+1), "", "/videos/a.mp4", 120, nil, false},
		{"description too long", "My Video", strings.Repeat("a", maxDescriptionLength+1), "/videos/a.mp4", 120, nil, false},
		{"missing path", "My Video", "", " ", 120, nil, false},
		{"negative duration", "My Video", "", "/videos/a.mp4", -1, nil, false},
		{"empty tag", "My Video", "", "/videos/a.mp4", 120, []string{""}, false},
		{"tag too long", "My Video", "", "/videos/a.mp4", 120, []string{strings.Repeat("x", maxTagLength+1)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := validateVideoInput(tc.title, tc.description, tc.videoPath, tc.duration, tc.tags)
			if (msg == "") != tc.wantOK {
				t.Errorf("validateVideoInput = %q, want ok=%v", msg, tc.wantOK)
			}
		})
	}
}

func TestValidateChannelInput(t *testing.T) {
	tests := []struct {
		name   string
		params store.ChannelParams
		wantOK bool
	}{
		{"valid", store.ChannelParams{Name: "My Channel"}, true},
		{"empty name", store.ChannelParams{Name: "  "}, false},
		{"name too long", store.ChannelParams{Name: strings.Repeat("a", maxChannelNameLength+1)}, false},
		{"description too long", store.ChannelParams{Name: "ok", Description: strings.Repeat("a", maxChannelDescriptionLength+1)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := validateChannelInput(tc.params)
			if (msg == "") != tc.wantOK {
				t.Errorf("validateChannelInput = %q, want ok=%v", msg, tc.wantOK)
			}
		})
	}
}
