package client

import (
	"context"
	"net/http"

	"github.com/condohub/condoctl/internal/model"
)

// GetDashboardStats fetches the aggregate counters for the landing view.
func (c *Client) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.do(ctx, "dashboard", "stats", http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
