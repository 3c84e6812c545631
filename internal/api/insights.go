package api

import (
	"net/http"

	"example.com/routine/internal/analytics"
)

// insights serves the weekly focus report over a trailing seven-day window.
func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	activities, err := h.service.ActivitiesInWindow(r.Context(), claims.Subject, 7)
	if err != nil {
		serviceError(w, err)
		return
	}
	interruptions, err := h.service.InterruptionsInWindow(r.Context(), claims.Subject, 7)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.GenerateInsights(activities, interruptions))
}
