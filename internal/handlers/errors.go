package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/avlok/vidfeed_server/internal/store"
	"github.com/avlok/vidfeed_server/internal/utils"
)

// writeStoreError maps the store sentinels onto HTTP statuses. Anything not
// recognized is a storage failure and stays a plain 500.
func writeStoreError(logger *log.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"error": "Not Found"})
	case errors.Is(err, store.ErrNotOwner):
		utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Forbidden"})
	case errors.Is(err, store.ErrInvalidParent):
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": err.Error()})
	case errors.Is(err, store.ErrChannelExists),
		errors.Is(err, store.ErrNoChannel),
		errors.Is(err, store.ErrSelfSubscription),
		errors.Is(err, store.ErrAlreadySubscribed),
		errors.Is(err, store.ErrNotSubscribed),
		errors.Is(err, store.ErrNSFWNotAllowed):
		utils.WriteJSON(w, http.StatusConflict, utils.Envelope{"error": err.Error()})
	default:
		logger.Println("Unexpected store error:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
	}
}

// parsePage reads a 1-indexed page query param, defaulting to the first page.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
