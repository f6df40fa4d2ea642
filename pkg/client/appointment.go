package client

import (
	"context"
	"fmt"
	"net/url"

	"medizy/pkg/model"
)

type AppointmentClient struct {
	httpClient *HttpClient
}

func NewAppointmentClient(httpClient *HttpClient) *AppointmentClient {
	return &AppointmentClient{httpClient: httpClient}
}

func (c *AppointmentClient) Create(ctx context.Context, appt *model.Appointment) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/appointments", appt)
}

func (c *AppointmentClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/appointments/id/"+url.PathEscape(id))
}

func (c *AppointmentClient) GetMine(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/appointments/me?limit=%d&offset=%d", limit, offset))
}

func (c *AppointmentClient) GetByDoctor(ctx context.Context, doctorID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/appointments/doctor/%s?limit=%d&offset=%d", url.PathEscape(doctorID), limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *AppointmentClient) ChangeStatus(ctx context.Context, id, status string) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/appointments/id/"+url.PathEscape(id)+"/status", model.StatusChange{Status: status})
}

func (c *AppointmentClient) RequestReschedule(ctx context.Context, id string, input model.RescheduleInput) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/appointments/id/"+url.PathEscape(id)+"/reschedule", input)
}

func (c *AppointmentClient) AcceptReschedule(ctx context.Context, id, requestID string) (*Response, error) {
	return c.httpClient.POST(ctx, c.reschedulePath(id, requestID)+"/accept", nil)
}

func (c *AppointmentClient) RejectReschedule(ctx context.Context, id, requestID string) (*Response, error) {
	return c.httpClient.POST(ctx, c.reschedulePath(id, requestID)+"/reject", nil)
}

func (c *AppointmentClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/appointments/id/"+url.PathEscape(id))
}

func (c *AppointmentClient) reschedulePath(id, requestID string) string {
	return "/api/v1/appointments/id/" + url.PathEscape(id) + "/reschedule/" + url.PathEscape(requestID)
}
