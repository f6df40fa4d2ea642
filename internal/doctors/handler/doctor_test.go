package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medizy/internal/doctors/service"
	apperrors "medizy/pkg/errors"
	"medizy/pkg/logger"
	"medizy/pkg/middleware"
	"medizy/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type stubDoctorService struct {
	service.DoctorService

	gotID    string
	gotInput *model.SlotInput
	addErr   error
}

func (s *stubDoctorService) ResolveProfile(_ context.Context, anyID string) (*model.Doctor, error) {
	s.gotID = anyID
	if anyID == "missing" {
		return nil, apperrors.NotFoundWithID("Doctor", anyID)
	}
	return &model.Doctor{ID: "665f1c2e9b1e8a3d4c5b6a79", UserID: anyID}, nil
}

func (s *stubDoctorService) AddSlot(_ context.Context, _ model.Actor, id string, input *model.SlotInput) (*model.AvailableSlot, error) {
	s.gotID = id
	s.gotInput = input
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &model.AvailableSlot{ID: "slot-1", From: input.From, To: input.To}, nil
}

func router(svc service.DoctorService) *httprouter.Router {
	r := httprouter.New()
	NewDoctorHandler(svc, logger.Discard()).RegisterRoutes(r)
	return r
}

func TestGetByID(t *testing.T) {
	svc := &stubDoctorService{}

	rec := httptest.NewRecorder()
	router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/id/doctor-1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "doctor-1", svc.gotID)

	rec = httptest.NewRecorder()
	router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/id/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddSlot(t *testing.T) {
	doctor := model.Actor{ID: "doctor-1", Role: model.RoleDoctor}
	body := `{"date":"2025-06-11","from":"10:00","to":"12:00"}`

	tests := []struct {
		name    string
		actor   *model.Actor
		addErr  error
		status  int
		content string
	}{
		{"created", &doctor, nil, http.StatusCreated, "slot-1"},
		{"no identity", nil, nil, http.StatusUnauthorized, apperrors.CodeUnauthorized},
		{"duplicate", &doctor, apperrors.Conflict("Available slot already exists"), http.StatusConflict, apperrors.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubDoctorService{addErr: tt.addErr}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/id/doctor-1/slots", strings.NewReader(body))
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}

			rec := httptest.NewRecorder()
			router(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.content)
			if tt.actor != nil {
				assert.Equal(t, "10:00", svc.gotInput.From)
			}
		})
	}
}
