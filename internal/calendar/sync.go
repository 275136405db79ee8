package calendar

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/sam-go/internal/parallel"
	"github.com/nibzard/sam-go/internal/task"
)

// Result counts what a sync did.
type Result struct {
	Created   int
	Updated   int
	Unchanged int
	Skipped   int // todos, finished tasks and duplicates
}

func (r Result) String() string {
	return fmt.Sprintf("%d created, %d updated, %d unchanged, %d skipped",
		r.Created, r.Updated, r.Unchanged, r.Skipped)
}

// Syncer pushes tasks through an EventService.
type Syncer struct {
	svc     EventService
	slot    time.Duration
	workers int
	logger  *log.Logger
}

// NewSyncer returns a syncer that books slot for each deadline and sends
// one request at a time.
func NewSyncer(svc EventService, slot time.Duration, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Syncer{svc: svc, slot: slot, workers: 1, logger: logger}
}

// SetWorkers bounds how many tasks are synced concurrently. Values below
// one are treated as one.
func (s *Syncer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	s.workers = n
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeUpdated
	outcomeUnchanged
)

// Sync creates or patches one calendar event per pending deadline and
// event. The first API error cancels the remaining work; the counts
// cover what finished before that.
func (s *Syncer) Sync(ctx context.Context, tasks []task.Task) (Result, error) {
	var res Result
	if err := ctx.Err(); err != nil {
		return res, err
	}

	pool := parallel.NewWorkerPool[outcome](ctx, s.workers, true)
	seen := make(map[string]bool)
	for _, t := range tasks {
		if t.Done() || t.Kind() == task.KindTodo {
			res.Skipped++
			continue
		}
		// Identical tasks share one event.
		id := TaskID(t)
		if seen[id] {
			res.Skipped++
			continue
		}
		seen[id] = true

		pool.Submit(fmt.Sprintf("sync %q", t.Description()), func(ctx context.Context) (outcome, error) {
			return s.syncOne(ctx, t, id)
		})
	}

	results, errs := pool.Wait()
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		switch r.Value {
		case outcomeCreated:
			res.Created++
		case outcomeUpdated:
			res.Updated++
		case outcomeUnchanged:
			res.Unchanged++
		}
	}
	if len(errs) > 0 {
		return res, errs[0]
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	s.logger.Info("calendar sync finished", "created", res.Created, "updated", res.Updated,
		"unchanged", res.Unchanged, "skipped", res.Skipped)
	return res, nil
}

func (s *Syncer) syncOne(ctx context.Context, t task.Task, id string) (outcome, error) {
	target, err := ToEvent(t, s.slot)
	if err != nil {
		return 0, err
	}

	existing, err := s.svc.FindByTaskID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("search: %w", err)
	}
	if existing == nil {
		created, err := s.svc.Insert(ctx, target)
		if err != nil {
			return 0, fmt.Errorf("insert: %w", err)
		}
		s.logger.Debug("created calendar event", "task", t.Description(), "event", created.Id)
		return outcomeCreated, nil
	}

	patch, err := eventPatch(existing, target)
	if err != nil {
		return 0, err
	}
	if patch == nil {
		return outcomeUnchanged, nil
	}
	if _, err := s.svc.Patch(ctx, existing.Id, patch); err != nil {
		return 0, fmt.Errorf("patch: %w", err)
	}
	s.logger.Debug("patched calendar event", "task", t.Description(), "event", existing.Id)
	return outcomeUpdated, nil
}
