package refresher

import "context"

// Client keeps the first page list fresh on a schedule.
type Client interface {
	// Start schedules the refresh job. A disabled schedule is a no-op.
	Start(ctx context.Context) error
	// RefreshNow runs one refresh outside the schedule.
	RefreshNow(ctx context.Context) error
	Stop() error
}
