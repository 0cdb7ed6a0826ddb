package handlers

import (
	"log"
	"net/http"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/google/uuid"
)

type ReactionHandler struct {
	ReactionStore store.ReactionStore
	Logger        *log.Logger
}

func NewReactionHandler(reactionStore store.ReactionStore, logger *log.Logger) *ReactionHandler {
	return &ReactionHandler{
		ReactionStore: reactionStore,
		Logger:        logger,
	}
}

type reactionRequest struct {
	TargetID   uuid.UUID           `json:"target_id"`
	TargetKind models.TargetKind   `json:"target_kind"`
	Type       models.ReactionType `json:"type"`
}

// HandlerReact toggles the caller's reaction on a video or comment. The
// response carries the caller's resulting reaction (null when removed) and
// the fresh counters so the client never has to guess.
func (rh *ReactionHandler) HandlerReact(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		rh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	var req reactionRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		rh.Logger.Println("Error decoding reaction request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if req.TargetID == uuid.Nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "target_id is required"})
		return
	}

	switch req.TargetKind {
	case models.TargetVideo, models.TargetComment:
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "target_kind must be video or comment"})
		return
	}

	switch req.Type {
	case models.ReactionLike, models.ReactionDislike:
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "type must be like or dislike"})
		return
	}

	state, err := rh.ReactionStore.React(user.ID, req.TargetID, req.TargetKind, req.Type)
	if err != nil {
		writeStoreError(rh.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": state})
}
