package store

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildFeedQueryDefaults(t *testing.T) {
	now := time.Now()

	where, order, args := buildFeedQuery(FeedParams{Content: ContentSFW, SortBy: SortByLatest}, now)

	if !strings.Contains(where, "v.is_published = true") {
		t.Errorf("expected published clause, got %q", where)
	}
	if !strings.Contains(where, "v.visibility = 'public'") {
		t.Errorf("expected visibility clause, got %q", where)
	}
	if !strings.Contains(where, "v.is_nsfw = false") {
		t.Errorf("expected sfw partition, got %q", where)
	}
	if order != "ORDER BY v.created_at DESC" {
		t.Errorf("expected latest ordering, got %q", order)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildFeedQueryNSFWPartition(t *testing.T) {
	where, _, _ := buildFeedQuery(FeedParams{Content: ContentNSFW}, time.Now())

	if !strings.Contains(where, "v.is_nsfw = true") {
		t.Errorf("expected nsfw partition, got %q", where)
	}
	if strings.Contains(where, "v.is_nsfw = false") {
		t.Errorf("partition must be exclusive, got %q", where)
	}
}

func TestBuildFeedQueryChannelScope(t *testing.T) {
	channelID := uuid.New()

	where, _, args := buildFeedQuery(FeedParams{ChannelID: &channelID}, time.Now())

	if !strings.Contains(where, "v.channel_id = $1") {
		t.Errorf("expected channel clause, got %q", where)
	}
	if len(args) != 1 || args[0] != channelID {
		t.Errorf("expected channel id arg, got %v", args)
	}
}

func TestBuildFeedQuerySearch(t *testing.T) {
	where, _, args := buildFeedQuery(FeedParams{Search: "  Go Tutorial "}, time.Now())

	if !strings.Contains(where, "LOWER(v.title) LIKE $1") {
		t.Errorf("expected title search clause, got %q", where)
	}
	if len(args) != 1 || args[0] != "%go tutorial%" {
		t.Errorf("expected trimmed lowercased like arg, got %v", args)
	}
}

func TestBuildFeedQueryBlankSearchIgnored(t *testing.T) {
	where, _, args := buildFeedQuery(FeedParams{Search: "   "}, time.Now())

	if strings.Contains(where, "LIKE") {
		t.Errorf("blank search should add no clause, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildFeedQuerySortModes(t *testing.T) {
	tests := []struct {
		sortBy SortBy
		order  string
	}{
		{SortByLatest, "ORDER BY v.created_at DESC"},
		{SortByPopular, "ORDER BY v.views_count DESC, v.created_at DESC"},
		{SortByLiked, "ORDER BY v.likes_count DESC, v.created_at DESC"},
	}

	for _, tc := range tests {
		t.Run(string(tc.sortBy), func(t *testing.T) {
			_, order, _ := buildFeedQuery(FeedParams{SortBy: tc.sortBy}, time.Now())
			if order != tc.order {
				t.Errorf("expected %q, got %q", tc.order, order)
			}
		})
	}
}

func TestBuildFeedQueryTrendingWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	where, order, args := buildFeedQuery(FeedParams{SortBy: SortByTrending}, now)

	if !strings.Contains(where, "v.created_at >= $1") {
		t.Errorf("expected window clause, got %q", where)
	}
	if order != "ORDER BY v.views_count DESC, v.created_at DESC" {
		t.Errorf("expected views ordering, got %q", order)
	}
	if len(args) != 1 {
		t.Fatalf("expected one arg, got %v", args)
	}

	cutoff, ok := args[0].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time arg, got %T", args[0])
	}
	if !cutoff.Equal(now.Add(-TrendingWindow)) {
		t.Errorf("expected cutoff a week back, got %v", cutoff)
	}
}

func TestBuildFeedQueryArgPositions(t *testing.T) {
	channelID := uuid.New()
	params := FeedParams{
		ChannelID: &channelID,
		Search:    "cats",
		SortBy:    SortByTrending,
	}

	where, _, args := buildFeedQuery(params, time.Now())

	for _, placeholder := range []string{"$1", "$2", "$3"} {
		if !strings.Contains(where, placeholder) {
			t.Errorf("expected placeholder %s in %q", placeholder, where)
		}
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d", len(args))
	}
}

func TestValidateSortBy(t *testing.T) {
	tests := []struct {
		input string
		want  SortBy
	}{
		{"latest", SortByLatest},
		{"popular", SortByPopular},
		{"trending", SortByTrending},
		{"liked", SortByLiked},
		{"", SortByLatest},
		{"garbage", SortByLatest},
	}

	for _, tc := range tests {
		if got := ValidateSortBy(tc.input); got != tc.want {
			t.Errorf("ValidateSortBy(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestValidateContentFilter(t *testing.T) {
	tests := []struct {
		input string
		want  ContentFilter
	}{
		{"sfw", ContentSFW},
		{"nsfw", ContentNSFW},
		{"", ContentSFW},
		{"anything", ContentSFW},
	}

	for _, tc := range tests {
		if got := ValidateContentFilter(tc.input); got != tc.want {
			t.Errorf("ValidateContentFilter(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
