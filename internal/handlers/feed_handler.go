package handlers

import (
	"log"
	"net/http"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/utils"
)

const trendingChannelsLimit = 8

type FeedHandler struct {
	VideoStore   store.VideoStore
	ChannelStore store.ChannelStore
	HomeCache    store.HomeCache
	Logger       *log.Logger
}

func NewFeedHandler(videoStore store.VideoStore, channelStore store.ChannelStore, homeCache store.HomeCache, logger *log.Logger) *FeedHandler {
	return &FeedHandler{
		VideoStore:   videoStore,
		ChannelStore: channelStore,
		HomeCache:    homeCache,
		Logger:       logger,
	}
}

// HandlerGetHomeFeed serves the landing page: the filtered/sorted video feed
// plus the trending-channels and platform-stats sidebar.
func (fh *FeedHandler) HandlerGetHomeFeed(w http.ResponseWriter, r *http.Request) {
	content := store.ValidateContentFilter(r.URL.Query().Get("content"))
	sortBy := store.ValidateSortBy(r.URL.Query().Get("sort"))
	search := r.URL.Query().Get("search")
	page := parsePage(r)

	params := store.FeedParams{
		Page:    page,
		Limit:   store.HomeFeedLimit,
		Search:  search,
		Content: content,
		SortBy:  sortBy,
	}

	feed, err := fh.VideoStore.GetFeed(params)
	if err != nil {
		fh.Logger.Printf("Error getting home feed from store: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	trending, stats := fh.sidebar(r)

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{
		"data":              feed,
		"trending_channels": trending,
		"stats":             stats,
		"filters": map[string]string{
			"content": string(content),
			"search":  search,
			"sort":    string(sortBy),
		},
	})
}

// sidebar serves trending channels and platform stats from the Redis cache,
// falling back to Postgres and repopulating on a miss. Sidebar failures never
// fail the feed.
func (fh *FeedHandler) sidebar(r *http.Request) ([]models.Channel, *store.PlatformStats) {
	ctx := r.Context()

	trending, ok := fh.HomeCache.GetTrendingChannels(ctx)
	if !ok {
		var err error
		trending, err = fh.ChannelStore.GetTrendingChannels(trendingChannelsLimit)
		if err != nil {
			fh.Logger.Printf("Error getting trending channels: %v", err)
		} else if err := fh.HomeCache.SetTrendingChannels(ctx, trending); err != nil {
			fh.Logger.Printf("Error caching trending channels: %v", err)
		}
	}

	stats, ok := fh.HomeCache.GetPlatformStats(ctx)
	if !ok {
		var err error
		stats, err = fh.VideoStore.GetPlatformStats()
		if err != nil {
			fh.Logger.Printf("Error getting platform stats: %v", err)
		} else if err := fh.HomeCache.SetPlatformStats(ctx, stats); err != nil {
			fh.Logger.Printf("Error caching platform stats: %v", err)
		}
	}

	return trending, stats
}
