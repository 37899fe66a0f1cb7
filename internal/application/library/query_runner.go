package library

import (
	"context"
	"fmt"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
)

// QueryRunner lists rows from a single source without modifying them.
type QueryRunner struct {
	name   string
	source domain.RowSource
}

func NewQueryRunner(name string, source domain.RowSource) *QueryRunner {
	return &QueryRunner{name: name, source: source}
}

func (r *QueryRunner) Name() string {
	return r.name
}

func (r *QueryRunner) Run(ctx context.Context, filter domain.Filter) ([]domain.WorkItem, error) {
	rows, err := r.source.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQueryRows, r.name, err)
	}
	if rows == nil {
		rows = []domain.WorkItem{}
	}
	return rows, nil
}
