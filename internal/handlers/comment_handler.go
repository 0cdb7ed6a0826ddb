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

const maxCommentLength = 1000

type CommentHandler struct {
	CommentStore store.CommentStore
	Logger       *log.Logger
}

func NewCommentHandler(commentStore store.CommentStore, logger *log.Logger) *CommentHandler {
	return &CommentHandler{
		CommentStore: commentStore,
		Logger:       logger,
	}
}

type createCommentRequest struct {
	VideoID  uuid.UUID  `json:"video_id"`
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (ch *CommentHandler) HandlerCreateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	var req createCommentRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		ch.Logger.Println("Error decoding create comment request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if req.VideoID == uuid.Nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "video_id is required"})
		return
	}
	if msg := validateCommentContent(req.Content); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": msg})
		return
	}

	comment, err := ch.CommentStore.CreateComment(req.VideoID, user.ID, req.Content, req.ParentID)
	if err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": comment})
}

func (ch *CommentHandler) HandlerUpdateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ch.Logger.Println("Error parsing comment id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	var req updateCommentRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		ch.Logger.Println("Error decoding update comment request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if msg := validateCommentContent(req.Content); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": msg})
		return
	}

	comment, err := ch.CommentStore.UpdateComment(user.ID, commentID, req.Content)
	if err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": comment})
}

func (ch *CommentHandler) HandlerDeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ch.Logger.Println("Error parsing comment id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if err := ch.CommentStore.DeleteComment(user.ID, commentID); err != nil {
		writeStoreError(ch.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Success"})
}

func validateCommentContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return "content is required"
	}
	if len(content) > maxCommentLength {
		return "content is too long"
	}
	return ""
}
