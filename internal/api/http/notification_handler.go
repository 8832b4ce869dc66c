package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"renthub-backend/internal/service"
)

type notificationHandler struct {
	notifications service.NotificationService
}

func (h *notificationHandler) list(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	page, pageSize := pagination(r)
	notifications, total, err := h.notifications.List(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: notifications, Total: total, Page: page})
}

func (h *notificationHandler) markAsRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	if err := h.notifications.MarkAsRead(r.Context(), claims.UserID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
