package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/condohub/condoctl/internal/model"
	"github.com/condohub/condoctl/internal/notifier"
	"github.com/condohub/condoctl/pkg/errors"
	"github.com/condohub/condoctl/pkg/logger"
)

// State of a list controller
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "unknown"
}

// EmptyState distinguishes an empty collection from an empty filter result.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	EmptyNoRecords
	EmptyNoMatches
)

// DefaultDebounce applies to free-text criteria changes.
const DefaultDebounce = 300 * time.Millisecond

// ResourceClient is the slice of the remote client a list controller needs.
type ResourceClient[T any] interface {
	ListAll(ctx context.Context) ([]T, error)
	Deactivate(ctx context.Context, id int) error
}

// ListController owns the local copy of one resource collection and
// orchestrates load, filter and mutate-then-reload cycles. Consistency is
// always re-derived from the server: mutations never patch local state.
type ListController[T model.Record] struct {
	mu       sync.Mutex
	client   ResourceClient[T]
	notifier *notifier.Center
	logger   *logger.Logger
	label    string

	state    State
	records  []T
	filtered []T
	criteria Criteria
	errMsg   string

	// generation discards responses of superseded loads, so overlapping
	// reloads cannot overwrite newer state with older data.
	generation uint64

	debounce     time.Duration
	pendingText  *time.Timer
	sortFiltered func(a, b T) bool

	gate   Gate
	closed bool
}

// Option configures a ListController.
type Option[T model.Record] func(*ListController[T])

// WithDebounce overrides the free-text debounce window. Zero applies text
// criteria synchronously.
func WithDebounce[T model.Record](d time.Duration) Option[T] {
	return func(c *ListController[T]) { c.debounce = d }
}

// WithSort adds an explicit display sort applied after filtering.
func WithSort[T model.Record](less func(a, b T) bool) Option[T] {
	return func(c *ListController[T]) { c.sortFiltered = less }
}

func WithLogger[T model.Record](l *logger.Logger) Option[T] {
	return func(c *ListController[T]) { c.logger = l }
}

// NewListController builds a controller for one resource. label names the
// resource in notifications ("aviso", "denuncia", ...).
func NewListController[T model.Record](client ResourceClient[T], center *notifier.Center, label string, opts ...Option[T]) *ListController[T] {
	c := &ListController[T]{
		client:   client,
		notifier: center,
		label:    label,
		state:    StateIdle,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.NewLogger(nil)
	}
	return c
}

// Load fetches the full collection and recomputes the filtered view. Safe
// to call concurrently; only the latest issued load lands.
func (c *ListController[T]) Load(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.mu.Unlock()

	records, err := c.client.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		// A newer load was issued while this one was in flight.
		return
	}
	if err != nil {
		c.logger.Error(err, "failed to load collection", "resource", c.label)
		c.state = StateError
		c.errMsg = errors.Message(err)
		c.records = nil
		c.filtered = nil
		return
	}
	c.records = records
	c.errMsg = ""
	c.recomputeLocked()
	c.state = StateLoaded
}

func (c *ListController[T]) recomputeLocked() {
	// Soft-deleted records the backend still returns never reach the view.
	active := make([]T, 0, len(c.records))
	for _, r := range c.records {
		if r.IsActive() {
			active = append(active, r)
		}
	}
	c.filtered = Apply(active, c.criteria)
	if c.sortFiltered != nil {
		sort.SliceStable(c.filtered, func(i, j int) bool {
			return c.sortFiltered(c.filtered[i], c.filtered[j])
		})
	}
}

// SetSearchText updates the free-text criterion. Recomputation is debounced
// so rapid keystrokes collapse into one recompute; each call cancels the
// previously scheduled one.
func (c *ListController[T]) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.pendingText != nil {
		c.pendingText.Stop()
		c.pendingText = nil
	}
	if c.debounce <= 0 {
		c.criteria.Text = text
		c.recomputeLocked()
		return
	}
	c.pendingText = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return
		}
		c.pendingText = nil
		c.criteria.Text = text
		c.recomputeLocked()
	})
}

// SetFieldFilter updates one categorical criterion; applies immediately.
func (c *ListController[T]) SetFieldFilter(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.criteria = c.criteria.WithField(name, value)
	c.recomputeLocked()
}

// SetFuzzy toggles fuzzy text matching; applies immediately.
func (c *ListController[T]) SetFuzzy(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.criteria.Fuzzy = on
	c.recomputeLocked()
}

func (c *ListController[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *ListController[T]) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *ListController[T]) Criteria() Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Records returns the last loaded full collection.
func (c *ListController[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// Filtered returns the current filtered view.
func (c *ListController[T]) Filtered() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.filtered))
	copy(out, c.filtered)
	return out
}

// Empty distinguishes "no records at all" from "no matches for the current
// filters" so the UI can show the right message.
func (c *ListController[T]) Empty() EmptyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	hasActive := false
	for _, r := range c.records {
		if r.IsActive() {
			hasActive = true
			break
		}
	}
	if !hasActive {
		return EmptyNoRecords
	}
	if len(c.filtered) == 0 {
		return EmptyNoMatches
	}
	return EmptyNone
}

// Confirmation exposes the delete gate for inspection by the UI.
func (c *ListController[T]) Confirmation() *Gate { return &c.gate }

// RequestDelete opens the confirmation gate for one record. Nothing is
// mutated until the gate is confirmed.
func (c *ListController[T]) RequestDelete(id int) {
	c.gate.Request(
		id,
		"Confirmar exclusão",
		fmt.Sprintf("Tem certeza que deseja excluir este %s?", c.label),
		notifier.SeverityWarning,
		func(ctx context.Context) { c.deactivate(ctx, id) },
	)
}

// ConfirmDelete runs the pending deactivation, then reloads.
func (c *ListController[T]) ConfirmDelete(ctx context.Context) {
	c.gate.Confirm(ctx)
}

// CancelDelete discards the pending request; no side effects.
func (c *ListController[T]) CancelDelete() {
	c.gate.Cancel()
}

func (c *ListController[T]) deactivate(ctx context.Context, id int) {
	if err := c.client.Deactivate(ctx, id); err != nil {
		c.logger.Error(err, "failed to deactivate", "resource", c.label, "id", id)
		// The stale collection stays as-is; never guess removals locally.
		c.notifier.Error(fmt.Sprintf("failed to remove %s: %s", c.label, errors.Message(err)))
		return
	}
	c.notifier.Success(fmt.Sprintf("%s removed", c.label))
	c.Load(ctx)
}

// FormSuccess is wired as the form's success callback: reload and notify.
func (c *ListController[T]) FormSuccess(ctx context.Context) {
	c.notifier.Success(fmt.Sprintf("%s saved", c.label))
	c.Load(ctx)
}

// Close cancels any pending debounce; the controller drops everything after.
func (c *ListController[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.pendingText != nil {
		c.pendingText.Stop()
		c.pendingText = nil
	}
}
