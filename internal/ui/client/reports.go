package client

import (
	"context"
	"fmt"

	"github.com/petly-community/petly/internal/ui/schemas"
	"github.com/petly-community/petly/internal/ui/types"
)

// CreateReport files a report. Reports can be anonymous, in which case token is empty
func (c *Client) CreateReport(ctx context.Context, token string, payload types.CreateReportPayload) (*types.Report, error) {
	return Post[*types.Report](ctx, c, "/reports", payload, token, schemas.Report)
}

func (c *Client) ListReports(ctx context.Context, token string) ([]types.Report, error) {
	return Get[[]types.Report](ctx, c, "/reports", token, schemas.ReportList)
}

func (c *Client) GetReport(ctx context.Context, token string, id int64) (*types.Report, error) {
	return Get[*types.Report](ctx, c, fmt.Sprintf("/reports/%d", id), token, schemas.Report)
}

func (c *Client) UpdateReportStatus(ctx context.Context, token string, id int64, payload types.UpdateReportPayload) (*types.Report, error) {
	return Patch[*types.Report](ctx, c, fmt.Sprintf("/reports/%d", id), payload, token, schemas.Report)
}
