package bot

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizwise/maya/internal/store"
)

// Read-only directory endpoints: the persistence contract the dashboard
// consumes. Writes stay behind the excluded dashboard/auth layer.

func (h *Handler) HandleListBusinesses(w http.ResponseWriter, r *http.Request) {
	all, err := h.directory.ListAll()
	if err != nil {
		log.Printf("bot: listing businesses: %v", err)
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, all)
}

func (h *Handler) HandleGetBusiness(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")

	biz, err := h.directory.FindByBotID(botID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.Printf("bot: fetching business %s: %v", botID, err)
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, biz)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("bot: encoding response: %v", err)
	}
}
