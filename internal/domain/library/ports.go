package library

import "context"

// WorkItemStore selects rows whose target attribute is absent and writes
// fetched values back to them.
type WorkItemStore interface {
	SelectMissing(ctx context.Context, limit int) ([]WorkItem, error)
	Fill(ctx context.Context, id string, value string) error
}

type Fetcher interface {
	Fetch(ctx context.Context, item WorkItem) (string, error)
}

type RowSource interface {
	List(ctx context.Context, filter Filter) ([]WorkItem, error)
}

type Notifier interface {
	ItemFilled(ctx context.Context, job string, item WorkItem, value string) error
}
