package client

import (
	"context"
	"net/url"

	"medizy/pkg/model"
)

type DoctorClient struct {
	httpClient *HttpClient
}

func NewDoctorClient(httpClient *HttpClient) *DoctorClient {
	return &DoctorClient{httpClient: httpClient}
}

func (c *DoctorClient) Create(ctx context.Context, doctor *model.Doctor) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/doctors", doctor)
}

// Get accepts either the doctor profile id or the doctor's user id.
func (c *DoctorClient) Get(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/doctors/id/"+url.PathEscape(id))
}

func (c *DoctorClient) GetSlots(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/doctors/id/"+url.PathEscape(id)+"/slots")
}

func (c *DoctorClient) AddSlot(ctx context.Context, id string, slot model.SlotInput) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/doctors/id/"+url.PathEscape(id)+"/slots", slot)
}

func (c *DoctorClient) DeleteSlot(ctx context.Context, id, slotID string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/doctors/id/"+url.PathEscape(id)+"/slots/"+url.PathEscape(slotID))
}

func (c *DoctorClient) ReplaceSchedule(ctx context.Context, id string, schedule model.ScheduleInput) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/doctors/id/"+url.PathEscape(id)+"/schedule", schedule)
}
