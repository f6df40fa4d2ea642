package handler

import (
	"net/http"

	"medizy/internal/notifications/service"
	apperrors "medizy/pkg/errors"
	httputil "medizy/pkg/http"
	"medizy/pkg/logger"
	"medizy/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type NotificationHandler struct {
	service service.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

func (h *NotificationHandler) GetMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, "GetMine", apperrors.Unauthorized("Missing identity"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetMine", err)
		return
	}

	notifications, total, err := h.service.ListForActor(r.Context(), actor, limit, offset)
	if err != nil {
		h.writeError(w, "GetMine", err)
		return
	}

	if err := httputil.WritePaginated(w, notifications, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetMine", "operation", "WritePaginated", "error", err)
	}
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, "MarkRead", apperrors.Unauthorized("Missing identity"))
		return
	}

	if err := h.service.MarkRead(r.Context(), actor, ps.ByName("id")); err != nil {
		h.writeError(w, "MarkRead", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/notifications", h.GetMine)
	router.POST("/api/v1/notifications/id/:id/read", h.MarkRead)
}

func (h *NotificationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
