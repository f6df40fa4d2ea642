package handler

import (
	"net/http"

	"medizy/internal/appointments/service"
	apperrors "medizy/pkg/errors"
	httputil "medizy/pkg/http"
	"medizy/pkg/logger"
	"medizy/pkg/middleware"
	"medizy/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AppointmentHandler struct {
	service service.AppointmentService
	log     *logger.Logger
}

func NewAppointmentHandler(service service.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r, "Create")
	if !ok {
		return
	}

	var appt model.Appointment
	if err := httputil.DecodeJSON(r, &appt); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), actor, &appt); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, appt); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "GetByID")
	if !ok {
		return
	}

	appt, err := h.service.GetByID(r.Context(), actor, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, appt); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r, "GetAll")
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	query := r.URL.Query()
	filter := model.AppointmentFilter{
		PatientID: query.Get("patient_id"),
		DoctorID:  query.Get("doctor_id"),
	}

	appts, total, err := h.service.List(r.Context(), actor, filter, limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, appts, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *AppointmentHandler) GetMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := h.actor(w, r, "GetMine")
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetMine", err)
		return
	}

	appts, total, err := h.service.ListForActor(r.Context(), actor, limit, offset)
	if err != nil {
		h.writeError(w, "GetMine", err)
		return
	}

	if err := httputil.WritePaginated(w, appts, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetMine", "operation", "WritePaginated", "error", err)
	}
}

func (h *AppointmentHandler) GetByDoctor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "GetByDoctor")
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetByDoctor", err)
		return
	}

	appts, total, err := h.service.ListByDoctor(r.Context(), actor, ps.ByName("doctor_id"), limit, offset)
	if err != nil {
		h.writeError(w, "GetByDoctor", err)
		return
	}

	if err := httputil.WritePaginated(w, appts, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByDoctor", "operation", "WritePaginated", "error", err)
	}
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "Update")
	if !ok {
		return
	}

	var update model.AppointmentUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	appt, err := h.service.AdminUpdate(r.Context(), actor, ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, appt); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "Delete")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AppointmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "ChangeStatus")
	if !ok {
		return
	}

	var change model.StatusChange
	if err := httputil.DecodeJSON(r, &change); err != nil {
		h.writeError(w, "ChangeStatus", err)
		return
	}

	appt, err := h.service.TransitionStatus(r.Context(), actor, ps.ByName("id"), &change)
	if err != nil {
		h.writeError(w, "ChangeStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, appt); err != nil {
		h.log.Error("failed to write success response", "handler", "ChangeStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) RequestReschedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "RequestReschedule")
	if !ok {
		return
	}

	var input model.RescheduleInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "RequestReschedule", err)
		return
	}

	appt, err := h.service.RequestReschedule(r.Context(), actor, ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, "RequestReschedule", err)
		return
	}

	if err := httputil.WriteCreated(w, appt); err != nil {
		h.log.Error("failed to write created response", "handler", "RequestReschedule", "operation", "WriteCreated", "error", err)
	}
}

func (h *AppointmentHandler) AcceptReschedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "AcceptReschedule")
	if !ok {
		return
	}

	appt, err := h.service.AcceptReschedule(r.Context(), actor, ps.ByName("id"), ps.ByName("request_id"))
	if err != nil {
		h.writeError(w, "AcceptReschedule", err)
		return
	}

	if err := httputil.WriteSuccess(w, appt); err != nil {
		h.log.Error("failed to write success response", "handler", "AcceptReschedule", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) RejectReschedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := h.actor(w, r, "RejectReschedule")
	if !ok {
		return
	}

	appt, err := h.service.RejectReschedule(r.Context(), actor, ps.ByName("id"), ps.ByName("request_id"))
	if err != nil {
		h.writeError(w, "RejectReschedule", err)
		return
	}

	if err := httputil.WriteSuccess(w, appt); err != nil {
		h.log.Error("failed to write success response", "handler", "RejectReschedule", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/appointments", h.Create)
	router.GET("/api/v1/appointments", h.GetAll)
	router.GET("/api/v1/appointments/me", h.GetMine)
	router.GET("/api/v1/appointments/doctor/:doctor_id", h.GetByDoctor)
	router.GET("/api/v1/appointments/id/:id", h.GetByID)
	router.PATCH("/api/v1/appointments/id/:id", h.Update)
	router.DELETE("/api/v1/appointments/id/:id", h.Delete)
	router.POST("/api/v1/appointments/id/:id/status", h.ChangeStatus)
	router.POST("/api/v1/appointments/id/:id/reschedule", h.RequestReschedule)
	router.POST("/api/v1/appointments/id/:id/reschedule/:request_id/accept", h.AcceptReschedule)
	router.POST("/api/v1/appointments/id/:id/reschedule/:request_id/reject", h.RejectReschedule)
}

func (h *AppointmentHandler) actor(w http.ResponseWriter, r *http.Request, handler string) (model.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.writeError(w, handler, apperrors.Unauthorized("Missing identity"))
	}
	return actor, ok
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
