package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxChannelNameLength        = 255
	maxChannelDescriptionLength = 1000
)

type ChannelHandler struct {
	ChannelStore store.ChannelStore
	VideoStore   store.VideoStore
	Logger       *log.Logger
}

func NewChannelHandler(channelStore store.ChannelStore, videoStore store.VideoStore, logger *log.Logger) *ChannelHandler {
	return &ChannelHandler{
		ChannelStore: channelStore,
		VideoStore:   videoStore,
		Logger:       logger,
	}
}

func (ch *ChannelHandler) HandlerGetChannels(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := parsePage(r)

	response, err := ch.ChannelStore.GetChannels(search, page)
	if err != nil {
		ch.Logger.Printf("Error getting channels from store: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": response})
}

// HandlerGetChannelBySlug serves the channel page: the channel, its videos for
// the selected tab, and whether the viewer is subscribed. The NSFW tab only
// exists on channels that opted into it.
func (ch *ChannelHandler) HandlerGetChannelBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	channel, err := ch.ChannelStore.GetChannelBySlug(slug)
	if err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	content := store.ContentSFW
	if r.URL.Query().Get("tab") == "nsfw" && channel.Allow_NSFW {
		content = store.ContentNSFW
	}

	params := store.FeedParams{
		Page:      parsePage(r),
		Limit:     store.ListingLimit,
		Content:   content,
		SortBy:    store.ValidateSortBy(r.URL.Query().Get("sort")),
		ChannelID: &channel.Id,
	}

	videos, err := ch.VideoStore.GetFeed(params)
	if err != nil {
		ch.Logger.Printf("Error getting channel videos: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{
		"data":            channel,
		"videos":          videos,
		"formatted_subs":  utils.FormatCount(int64(channel.Subscribers_Count)),
		"nsfw_tab_active": content == store.ContentNSFW,
	})
}

// HandlerGetMyChannel returns the authed user's own channel, 404 if they
// never created one.
func (ch *ChannelHandler) HandlerGetMyChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	channel, err := ch.ChannelStore.GetChannelByUserID(user.ID)
	if err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": channel})
}

func (ch *ChannelHandler) HandlerCreateChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	var params store.ChannelParams
	if err := utils.ReadJSON(r, &params); err != nil {
		ch.Logger.Println("Error decoding create channel request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if msg := validateChannelInput(params); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": msg})
		return
	}

	channel, err := ch.ChannelStore.CreateChannel(user.ID, params)
	if err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": channel})
}

func (ch *ChannelHandler) HandlerUpdateChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ch.Logger.Println("Error parsing channel id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	var params store.ChannelParams
	if err := utils.ReadJSON(r, &params); err != nil {
		ch.Logger.Println("Error decoding update channel request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if msg := validateChannelInput(params); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": msg})
		return
	}

	channel, err := ch.ChannelStore.UpdateChannel(user.ID, channelID, params)
	if err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": channel})
}

func (ch *ChannelHandler) HandlerDeleteChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ch.Logger.Println("Error parsing channel id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if err := ch.ChannelStore.DeleteChannel(user.ID, channelID); err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Success"})
}

func validateChannelInput(params store.ChannelParams) string {
	if strings.TrimSpace(params.Name) == "" {
		return "name is required"
	}
	if len(params.Name) > maxChannelNameLength {
		return "name is too long"
	}
	if len(params.Description) > maxChannelDescriptionLength {
		return "description is too long"
	}
	return ""
}
