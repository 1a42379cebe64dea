package ops

import (
	"context"
	"time"

	"github.com/condohub/condoctl/pkg/logger"
)

// Target is one resource the watcher keeps reloading.
type Target struct {
	Name string
	Load func(ctx context.Context)
}

// Watcher polls resource controllers on a fixed interval, keeping the
// client metrics live for the ops server to expose.
type Watcher struct {
	interval time.Duration
	targets  []Target
	logger   *logger.Logger
}

func NewWatcher(interval time.Duration, targets []Target, log *logger.Logger) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{interval: interval, targets: targets, logger: log}
}

// Run polls until ctx is canceled. The first round fires immediately.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	for _, target := range w.targets {
		if ctx.Err() != nil {
			return
		}
		w.logger.Debug("polling resource", "resource", target.Name)
		target.Load(ctx)
	}
}
