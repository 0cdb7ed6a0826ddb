package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SortBy string
type ContentFilter string

const (
	SortByLatest   SortBy = "latest"
	SortByPopular  SortBy = "popular"
	SortByTrending SortBy = "trending"
	SortByLiked    SortBy = "liked"

	ContentSFW  ContentFilter = "sfw"
	ContentNSFW ContentFilter = "nsfw"
)

const (
	HomeFeedLimit      = 24
	ListingLimit       = 20
	RelatedVideosLimit = 10

	// Trending only considers videos uploaded inside this window.
	TrendingWindow = 7 * 24 * time.Hour
)

type FeedParams struct {
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	Search  string        `json:"search"`
	Content ContentFilter `json:"content"`
	SortBy  SortBy        `json:"sort_by"`

	// ChannelID scopes the feed to a single channel when set.
	ChannelID *uuid.UUID `json:"channel_id,omitempty"`
}

// buildFeedQuery composes the visibility policy, rating partition, search and
// sort mode into a WHERE/ORDER BY pair with positional args. Only published,
// public videos are ever candidates; the content filter is a binary partition
// on the video's own NSFW flag.
func buildFeedQuery(params FeedParams, now time.Time) (string, string, []interface{}) {
	whereClauses := []string{"v.is_published = true", "v.visibility = 'public'"}
	args := []interface{}{}
	argPos := 1

	if params.Content == ContentNSFW {
		whereClauses = append(whereClauses, "v.is_nsfw = true")
	} else {
		whereClauses = append(whereClauses, "v.is_nsfw = false")
	}

	if params.ChannelID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("v.channel_id = $%d", argPos))
		args = append(args, *params.ChannelID)
		argPos++
	}

	if strings.TrimSpace(params.Search) != "" {
		likeQuery := "%" + strings.ToLower(strings.TrimSpace(params.Search)) + "%"
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(LOWER(v.title) LIKE $%d OR LOWER(v.description) LIKE $%d)", argPos, argPos))
		args = append(args, likeQuery)
		argPos++
	}

	orderClause := "ORDER BY v.created_at DESC"
	switch params.SortBy {
	case SortByPopular:
		orderClause = "ORDER BY v.views_count DESC, v.created_at DESC"
	case SortByTrending:
		whereClauses = append(whereClauses, fmt.Sprintf("v.created_at >= $%d", argPos))
		args = append(args, now.Add(-TrendingWindow))
		argPos++
		orderClause = "ORDER BY v.views_count DESC, v.created_at DESC"
	case SortByLiked:
		orderClause = "ORDER BY v.likes_count DESC, v.created_at DESC"
	}

	return strings.Join(whereClauses, " AND "), orderClause, args
}

func ValidateSortBy(sortBy string) SortBy {
	switch SortBy(sortBy) {
	case SortByLatest:
		return SortByLatest
	case SortByPopular:
		return SortByPopular
	case SortByTrending:
		return SortByTrending
	case SortByLiked:
		return SortByLiked
	default:
		return SortByLatest // Default to latest
	}
}

func ValidateContentFilter(content string) ContentFilter {
	switch ContentFilter(content) {
	case ContentNSFW:
		return ContentNSFW
	case ContentSFW:
		return ContentSFW
	default:
		return ContentSFW // Default to SFW
	}
}
