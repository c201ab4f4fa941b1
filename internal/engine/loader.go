// Package engine implements the retrieve, filter and paginate pipeline that
// backs the task list view. It holds no rendering code: callers read the
// derived values (loading flag, error message, visible page) and drive it
// through SetSearchTerm and SetPage.
package engine

import (
	"context"
	"sync"

	"github.com/fentz26/taskview/internal/models"
	log "github.com/sirupsen/logrus"
)

// Phase is the tri-state of a Loader.
type Phase int

const (
	PhasePending Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher retrieves the full task collection in one call.
type Fetcher interface {
	FetchTasks(ctx context.Context) ([]models.Task, error)
}

// LoadState is a snapshot of a Loader.
type LoadState struct {
	Phase Phase
	Tasks []models.Task
	Err   string
}

// Ticket identifies one activation of a Loader. Results delivered with a
// stale ticket are dropped.
type Ticket uint64

// Loader issues a single retrieval per activation and records its outcome.
// Errors never escape a Loader; they are folded into PhaseFailed.
type Loader struct {
	fetcher Fetcher

	mu        sync.Mutex
	phase     Phase
	tasks     []models.Task
	reason    string
	activated bool
	closed    bool
	gen       Ticket
}

// NewLoader creates a Loader in the pending phase.
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Begin starts the first activation. ok is false when the loader was already
// activated or has been closed, in which case no retrieval should be issued.
func (l *Loader) Begin() (Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.activated {
		return 0, false
	}
	l.activated = true
	return l.restart(), true
}

// BeginRetry restarts a failed loader from pending.
func (l *Loader) BeginRetry() (Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, ErrClosed
	}
	if l.phase != PhaseFailed {
		return 0, ErrNotFailed
	}
	return l.restart(), nil
}

// restart must be called with l.mu held.
func (l *Loader) restart() Ticket {
	l.gen++
	l.phase = PhasePending
	l.tasks = nil
	l.reason = ""
	return l.gen
}

// Run performs the retrieval for ticket and applies its result. It reports
// whether the result was applied.
func (l *Loader) Run(ctx context.Context, ticket Ticket) bool {
	tasks, err := l.fetcher.FetchTasks(ctx)
	return l.Complete(ticket, tasks, err)
}

// Complete applies a retrieval result. Results for a stale ticket, for a
// loader that is no longer pending, or for a closed loader are discarded.
func (l *Loader) Complete(ticket Ticket, tasks []models.Task, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || ticket != l.gen || l.phase != PhasePending {
		log.WithField("ticket", ticket).Debug("discarding stale task retrieval")
		return false
	}

	if err != nil {
		l.phase = PhaseFailed
		l.reason = err.Error()
		log.WithError(err).Warn("task retrieval failed")
		return true
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	l.phase = PhaseReady
	l.tasks = tasks
	log.WithField("count", len(tasks)).Debug("tasks loaded")
	return true
}

// Load activates the loader and blocks until the retrieval finishes.
// Calling Load on an activated loader returns the current state unchanged.
func (l *Loader) Load(ctx context.Context) LoadState {
	if ticket, ok := l.Begin(); ok {
		l.Run(ctx, ticket)
	}
	return l.State()
}

// Retry re-issues the retrieval after a failure and blocks until it finishes.
func (l *Loader) Retry(ctx context.Context) (LoadState, error) {
	ticket, err := l.BeginRetry()
	if err != nil {
		return l.State(), err
	}
	l.Run(ctx, ticket)
	return l.State(), nil
}

// Close tears the loader down. Outstanding retrievals are discarded when they
// complete.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

// State returns a snapshot of the loader.
func (l *Loader) State() LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoadState{Phase: l.phase, Tasks: l.tasks, Err: l.reason}
}
