package handler

import (
	"net/http"

	"medizy/internal/doctors/service"
	apperrors "medizy/pkg/errors"
	httputil "medizy/pkg/http"
	"medizy/pkg/logger"
	"medizy/pkg/middleware"
	"medizy/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type DoctorHandler struct {
	service service.DoctorService
	log     *logger.Logger
}

func NewDoctorHandler(service service.DoctorService, log *logger.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		log:     log,
	}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("Missing identity"))
		return
	}

	var doctor model.Doctor
	if err := httputil.DecodeJSON(r, &doctor); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), actor, &doctor); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, doctor); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doctor, err := h.service.ResolveProfile(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, doctor); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DoctorHandler) GetSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots, err := h.service.ListSlots(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetSlots", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSlots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DoctorHandler) AddSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, "AddSlot", apperrors.Unauthorized("Missing identity"))
		return
	}

	var input model.SlotInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "AddSlot", err)
		return
	}

	slot, err := h.service.AddSlot(r.Context(), actor, ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, "AddSlot", err)
		return
	}

	if err := httputil.WriteCreated(w, slot); err != nil {
		h.log.Error("failed to write created response", "handler", "AddSlot", "operation", "WriteCreated", "error", err)
	}
}

func (h *DoctorHandler) DeleteSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, "DeleteSlot", apperrors.Unauthorized("Missing identity"))
		return
	}

	if err := h.service.DeleteSlot(r.Context(), actor, ps.ByName("id"), ps.ByName("slot_id")); err != nil {
		h.writeError(w, "DeleteSlot", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DoctorHandler) ReplaceSchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, "ReplaceSchedule", apperrors.Unauthorized("Missing identity"))
		return
	}

	var input model.ScheduleInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "ReplaceSchedule", err)
		return
	}

	doctor, err := h.service.ReplaceSchedule(r.Context(), actor, ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, "ReplaceSchedule", err)
		return
	}

	if err := httputil.WriteSuccess(w, doctor); err != nil {
		h.log.Error("failed to write success response", "handler", "ReplaceSchedule", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DoctorHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/doctors", h.Create)
	router.GET("/api/v1/doctors/id/:id", h.GetByID)
	router.GET("/api/v1/doctors/id/:id/slots", h.GetSlots)
	router.POST("/api/v1/doctors/id/:id/slots", h.AddSlot)
	router.DELETE("/api/v1/doctors/id/:id/slots/:slot_id", h.DeleteSlot)
	router.PUT("/api/v1/doctors/id/:id/schedule", h.ReplaceSchedule)
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
