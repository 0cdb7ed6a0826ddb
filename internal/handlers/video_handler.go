package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/store/analytics"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 5000
	maxTagLength         = 50
)

type VideoHandler struct {
	VideoStore        store.VideoStore
	CommentStore      store.CommentStore
	ReactionStore     store.ReactionStore
	SubscriptionStore store.SubscriptionStore
	ViewStore         analytics.ViewStore
	Logger            *log.Logger
}

func NewVideoHandler(
	videoStore store.VideoStore,
	commentStore store.CommentStore,
	reactionStore store.ReactionStore,
	subscriptionStore store.SubscriptionStore,
	viewStore analytics.ViewStore,
	logger *log.Logger,
) *VideoHandler {
	return &VideoHandler{
		VideoStore:        videoStore,
		CommentStore:      commentStore,
		ReactionStore:     reactionStore,
		SubscriptionStore: subscriptionStore,
		ViewStore:         viewStore,
		Logger:            logger,
	}
}

// HandlerGetVideos is the videos listing page: same filters as the home feed,
// smaller page size.
func (vh *VideoHandler) HandlerGetVideos(w http.ResponseWriter, r *http.Request) {
	params := store.FeedParams{
		Page:    parsePage(r),
		Limit:   store.ListingLimit,
		Search:  r.URL.Query().Get("search"),
		Content: store.ValidateContentFilter(r.URL.Query().Get("content")),
		SortBy:  store.ValidateSortBy(r.URL.Query().Get("sort")),
	}

	response, err := vh.VideoStore.GetFeed(params)
	if err != nil {
		vh.Logger.Printf("Error getting videos from store: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": response})
}

// HandlerGetVideoByID is the detail page. Every load counts one view, then
// the comment tree, related videos and the viewer's own state come along.
func (vh *VideoHandler) HandlerGetVideoByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	video, err := vh.VideoStore.ViewVideo(videoID)
	if err != nil {
		writeStoreError(vh.Logger, w, err)
		return
	}

	comments, err := vh.CommentStore.GetCommentTree(videoID)
	if err != nil {
		vh.Logger.Printf("Error getting comment tree: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	related, err := vh.VideoStore.GetRelatedVideos(video)
	if err != nil {
		vh.Logger.Printf("Error getting related videos: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	var userReaction *models.ReactionType
	isSubscribed := false
	var viewerID *uuid.UUID

	if user, ok := middlewares.GetUserFromContext(r); ok {
		viewerID = &user.ID

		userReaction, err = vh.ReactionStore.GetVideoReaction(user.ID, videoID)
		if err != nil {
			vh.Logger.Printf("Error getting user reaction: %v", err)
		}

		isSubscribed, err = vh.SubscriptionStore.IsSubscribed(user.ID, video.Channel_ID)
		if err != nil {
			vh.Logger.Printf("Error checking subscription: %v", err)
		}
	}

	// Analytics events ride along without holding up the response.
	go func(videoID uuid.UUID, viewerID *uuid.UUID) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := vh.ViewStore.RecordView(ctx, videoID, viewerID); err != nil {
			vh.Logger.Printf("Error recording view event: %v", err)
		}
	}(videoID, viewerID)

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{
		"data":               video,
		"comments":           comments,
		"related_videos":     related,
		"user_reaction":      userReaction,
		"is_subscribed":      isSubscribed,
		"formatted_views":    utils.FormatCount(video.Views_Count),
		"formatted_duration": utils.FormatDuration(video.Duration),
	})
}

func (vh *VideoHandler) HandlerCreateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	var params store.CreateVideoParams
	if err := utils.ReadJSON(r, &params); err != nil {
		vh.Logger.Println("Error decoding create video request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if msg := validateVideoInput(params.Title, params.Description, params.VideoPath, params.Duration, params.Tags); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": msg})
		return
	}

	video, err := vh.VideoStore.CreateVideo(user.ID, params)
	if err != nil {
		writeStoreError(vh.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": video})
}

func (vh *VideoHandler) HandlerUpdateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	var params store.UpdateVideoParams
	if err := utils.ReadJSON(r, &params); err != nil {
		vh.Logger.Println("Error decoding update video request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if msg := validateVideoInput(params.Title, params.Description, "-", 0, params.Tags); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": msg})
		return
	}

	switch params.Visibility {
	case models.VisibilityPublic, models.VisibilityUnlisted, models.VisibilityPrivate:
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "visibility must be public, unlisted or private"})
		return
	}

	video, err := vh.VideoStore.UpdateVideo(user.ID, videoID, params)
	if err != nil {
		writeStoreError(vh.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": video})
}

func (vh *VideoHandler) HandlerDeleteVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if err := vh.VideoStore.DeleteVideo(user.ID, videoID); err != nil {
		writeStoreError(vh.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Success"})
}

func validateVideoInput(title, description, videoPath string, duration int, tags []string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if len(title) > maxTitleLength {
		return "title is too long"
	}
	if len(description) > maxDescriptionLength {
		return "description is too long"
	}
	if strings.TrimSpace(videoPath) == "" {
		return "video_path is required"
	}
	if duration < 0 {
		return "duration cannot be negative"
	}
	for _, tag := range tags {
		if tag == "" || len(tag) > maxTagLength {
			return "invalid tag"
		}
	}
	return ""
}
