package library_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/YaRavva/Fiction-Library-sub007/internal/application/library"
	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/google/go-cmp/cmp"
)

type fakeRowSource struct {
	rows      []domain.WorkItem
	err       error
	gotFilter domain.Filter
}

func (f *fakeRowSource) List(ctx context.Context, filter domain.Filter) ([]domain.WorkItem, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.WorkItem
	for _, row := range f.rows {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func TestQueryRunnerReturnsRowsUnmodified(t *testing.T) {
	t.Parallel()

	source := &fakeRowSource{rows: []domain.WorkItem{
		{ID: "1", SourceRef: "file-1", Status: "pending"},
		{ID: "2", SourceRef: "file-2", Status: "completed", Value: strPtr("books/2.epub")},
	}}
	before := append([]domain.WorkItem(nil), source.rows...)

	runner := app.NewQueryRunner("download-queue", source)

	got, err := runner.Run(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(before, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}

	again, err := runner.Run(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("rows changed between reads (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, source.rows); diff != "" {
		t.Fatalf("source rows were mutated (-want +got):\n%s", diff)
	}
}

func TestQueryRunnerPassesFilter(t *testing.T) {
	t.Parallel()

	source := &fakeRowSource{rows: []domain.WorkItem{
		{ID: "1", Status: "pending"},
		{ID: "2", Status: "failed"},
	}}
	runner := app.NewQueryRunner("download-queue", source)

	got, err := runner.Run(context.Background(), domain.Filter{Status: "failed"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if source.gotFilter.Status != "failed" {
		t.Fatalf("unexpected filter: %+v", source.gotFilter)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestQueryRunnerEmptyResultIsNotNil(t *testing.T) {
	t.Parallel()

	got, err := app.NewQueryRunner("settings", &fakeRowSource{}).Run(context.Background(), domain.Filter{Key: "missing"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestQueryRunnerSourceError(t *testing.T) {
	t.Parallel()

	_, err := app.NewQueryRunner("settings", &fakeRowSource{err: errors.New("db down")}).Run(context.Background(), domain.Filter{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, app.ErrQueryRows) {
		t.Fatalf("expected ErrQueryRows, got %v", err)
	}
}
