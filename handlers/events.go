// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type EventHandler struct {
	journal Journal
}

func NewEventHandler(journal Journal) *EventHandler {
	return &EventHandler{journal: journal}
}

// ListEvents handles GET /events?after=&limit=
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var after uint64
	if s := r.URL.Query().Get("after"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "after must be a non-negative integer")
			return
		}
		after = v
	}

	var limit int
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = v
	}

	entries, err := h.journal.List(r.Context(), after, limit)
	if err != nil {
		slog.Error("failed to list events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.JournalResponse{Entries: entries})
}
