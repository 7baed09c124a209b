package bot

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	// The webhook answers its own 405 so non-POST probes get a plain-text
	// body instead of the router default.
	r.HandleFunc("/webhook", h.HandleWebhook)

	r.Get("/businesses", h.HandleListBusinesses)
	r.Get("/businesses/{botID}", h.HandleGetBusiness)
}
