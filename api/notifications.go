package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/trezcool/skillshare/core/dashboard"
	"github.com/trezcool/skillshare/core/notification"
)

var _ dashboard.Gateway = (*Client)(nil)

func (c *Client) Notifications(ctx context.Context, userID int) ([]notification.Notification, error) {
	var res []notification.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications/user/"+strconv.Itoa(userID), nil, nil, &res)
	return res, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/"+strconv.Itoa(id)+"/read", nil, nil, nil)
}
