package handlers

import (
	"log"
	"net/http"

	"github.com/avlok/vidfeed_server/internal/middlewares"
	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	SubscriptionStore store.SubscriptionStore
	Logger            *log.Logger
}

func NewSubscriptionHandler(subscriptionStore store.SubscriptionStore, logger *log.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		SubscriptionStore: subscriptionStore,
		Logger:            logger,
	}
}

func (sh *SubscriptionHandler) HandlerGetSubscriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	subscriptions, err := sh.SubscriptionStore.GetSubscriptionsByUserID(user.ID)
	if err != nil {
		sh.Logger.Printf("Error getting subscriptions from store: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": subscriptions})
}

func (sh *SubscriptionHandler) HandlerSubscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
	if err != nil {
		sh.Logger.Println("Error parsing channel id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	subscription, err := sh.SubscriptionStore.Subscribe(user.ID, channelID)
	if err != nil {
		writeStoreError(sh.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": subscription})
}

func (sh *SubscriptionHandler) HandlerUnsubscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
	if err != nil {
		sh.Logger.Println("Error parsing channel id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Bad Request"})
		return
	}

	if err := sh.SubscriptionStore.Unsubscribe(user.ID, channelID); err != nil {
		writeStoreError(sh.Logger, w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Success"})
}
