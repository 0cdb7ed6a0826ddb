package analytics

import (
	"log"
	"net/http"

	"github.com/avlok/vidfeed_server/internal/store/analytics"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type VideoAnalyticsHandler struct {
	ViewStore analytics.ViewStore
	Logger    *log.Logger
}

func NewVideoAnalyticsHandler(viewStore analytics.ViewStore, logger *log.Logger) *VideoAnalyticsHandler {
	return &VideoAnalyticsHandler{
		ViewStore: viewStore,
		Logger:    logger,
	}
}

func (vh *VideoAnalyticsHandler) HandlerGetDailyViews(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	daily, err := vh.ViewStore.GetDailyViewsByVideoID(videoID)
	if err != nil {
		vh.Logger.Printf("Error getting daily views: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": daily})
}
