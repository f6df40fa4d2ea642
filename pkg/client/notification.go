package client

import (
	"context"
	"fmt"
	"net/url"
)

type NotificationClient struct {
	httpClient *HttpClient
}

func NewNotificationClient(httpClient *HttpClient) *NotificationClient {
	return &NotificationClient{httpClient: httpClient}
}

func (c *NotificationClient) GetMine(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/notifications?limit=%d&offset=%d", limit, offset))
}

func (c *NotificationClient) MarkRead(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/notifications/id/"+url.PathEscape(id)+"/read", nil)
}
