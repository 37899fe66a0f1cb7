package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
)

type RunSyncInput struct {
	Job       string
	BatchSize int
}

type RunSync interface {
	Execute(ctx context.Context, in RunSyncInput) (domain.SyncResult, error)
	Jobs() []string
}

type InspectInput struct {
	Source string
	Filter domain.Filter
}

type Inspect interface {
	Execute(ctx context.Context, in InspectInput) ([]domain.WorkItem, error)
	Sources() []string
}

type runSync struct {
	jobs map[string]*SyncJob
}

func NewRunSync(jobs ...*SyncJob) RunSync {
	uc := &runSync{jobs: make(map[string]*SyncJob, len(jobs))}
	for _, job := range jobs {
		uc.jobs[job.Name()] = job
	}
	return uc
}

func (uc *runSync) Execute(ctx context.Context, in RunSyncInput) (domain.SyncResult, error) {
	job, ok := uc.jobs[strings.TrimSpace(in.Job)]
	if !ok {
		return domain.SyncResult{}, fmt.Errorf("%w: %q", ErrUnknownJob, in.Job)
	}
	return job.Run(ctx, in.BatchSize)
}

func (uc *runSync) Jobs() []string {
	return sortedKeys(uc.jobs)
}

type inspect struct {
	runners map[string]*QueryRunner
}

func NewInspect(runners ...*QueryRunner) Inspect {
	uc := &inspect{runners: make(map[string]*QueryRunner, len(runners))}
	for _, runner := range runners {
		uc.runners[runner.Name()] = runner
	}
	return uc
}

func (uc *inspect) Execute(ctx context.Context, in InspectInput) ([]domain.WorkItem, error) {
	runner, ok := uc.runners[strings.TrimSpace(in.Source)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, in.Source)
	}
	return runner.Run(ctx, in.Filter)
}

func (uc *inspect) Sources() []string {
	return sortedKeys(uc.runners)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
