package controller

import (
	"context"
	"sync"

	"github.com/condohub/condoctl/internal/notifier"
)

// Gate defers a destructive action until explicit confirmation. One-shot:
// each delete intent opens a fresh request.
type Gate struct {
	mu        sync.Mutex
	open      bool
	recordID  int
	title     string
	message   string
	severity  notifier.Severity
	onConfirm func(ctx context.Context)
}

// Request opens the gate for one record. A request already open is replaced.
func (g *Gate) Request(recordID int, title, message string, severity notifier.Severity, onConfirm func(ctx context.Context)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.open = true
	g.recordID = recordID
	g.title = title
	g.message = message
	g.severity = severity
	g.onConfirm = onConfirm
}

// Confirm closes the gate and runs the deferred action.
func (g *Gate) Confirm(ctx context.Context) {
	g.mu.Lock()
	if !g.open {
		g.mu.Unlock()
		return
	}
	onConfirm := g.onConfirm
	g.reset()
	g.mu.Unlock()

	if onConfirm != nil {
		onConfirm(ctx)
	}
}

// Cancel closes the gate without side effects.
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

func (g *Gate) reset() {
	g.open = false
	g.recordID = 0
	g.title = ""
	g.message = ""
	g.severity = ""
	g.onConfirm = nil
}

func (g *Gate) Open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.open
}

func (g *Gate) RecordID() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recordID
}

func (g *Gate) Prompt() (title, message string, severity notifier.Severity) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.title, g.message, g.severity
}
