// Package view holds the presentation state of a truth-table front end,
// independent of the UI that renders it.
package view

import (
	"context"
	"errors"
	"sync"

	"dmath-truthtable/internal/observability"
	"dmath-truthtable/internal/truthtable"

	"go.uber.org/zap"
)

// ErrSuperseded is returned by Submit when a newer submission started
// before this one completed. Its result was discarded.
var ErrSuperseded = errors.New("submission superseded by a newer one")

// Fetcher retrieves the truth table for a formula. *client.Client
// implements it.
type Fetcher interface {
	Fetch(ctx context.Context, formula string) (*truthtable.Response, error)
}

// State is a snapshot of the presenter. After a completed submission
// exactly one of Model and Err is set. Model is shared between snapshots
// and must not be modified.
type State struct {
	Formula string
	Model   *truthtable.DisplayModel
	Err     error
	Pending bool
	// Seq numbers submissions; it increases by one per Submit.
	Seq uint64
}

// Message is the user-facing text for Err.
func (s State) Message() string {
	return Message(s.Err)
}

// Presenter mediates between the formula input, the Fetcher and the
// results display. It is safe for concurrent use.
type Presenter struct {
	fetcher Fetcher

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	observers []observer
	nextID    int
	version   uint64 // bumped on every state change

	// notifyMu serializes delivery; delivered is the newest version
	// observers have seen.
	notifyMu  sync.Mutex
	delivered uint64
}

// change is one state transition waiting to reach the observers.
type change struct {
	version uint64
	state   State
	fns     []func(State)
}

type observer struct {
	id int
	fn func(State)
}

// New returns a Presenter that loads truth tables through fetcher.
func New(fetcher Fetcher) *Presenter {
	return &Presenter{fetcher: fetcher}
}

// SetFormula replaces the formula read by the next Submit.
func (p *Presenter) SetFormula(formula string) {
	p.mu.Lock()
	p.state.Formula = formula
	c := p.changeLocked()
	p.mu.Unlock()

	p.notify(c)
}

// Snapshot returns the current state.
func (p *Presenter) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers fn to be called with the new state after every
// change. Observers run synchronously, in subscription order, on the
// goroutine that made the change. Changes are delivered one at a time in
// the order they happened; a change that lost the race to a newer one is
// not delivered. Observers must not call back into the Presenter.
func (p *Presenter) Subscribe(fn func(State)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.observers = append(p.observers, observer{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, o := range p.observers {
			if o.id == id {
				p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

// Submit fetches the truth table for the current formula and stores either
// the display model or the error. Starting a submission cancels the one in
// flight; a superseded submission never touches the state and returns
// ErrSuperseded.
func (p *Presenter) Submit(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.state.Seq++
	p.state.Model = nil
	p.state.Err = nil
	p.state.Pending = true
	seq := p.state.Seq
	formula := p.state.Formula
	started := p.changeLocked()
	p.mu.Unlock()

	p.notify(started)

	model, err := p.load(ctx, formula)

	p.mu.Lock()
	if p.state.Seq != seq {
		p.mu.Unlock()
		return ErrSuperseded
	}
	p.cancel = nil
	p.state.Pending = false
	p.state.Model = model
	p.state.Err = err
	done := p.changeLocked()
	p.mu.Unlock()

	if err != nil {
		observability.LoggerWithTrace(ctx).Info("submission failed",
			zap.Uint64("seq", seq),
			zap.String("formula", formula),
			zap.Error(err),
		)
	}

	p.notify(done)
	return err
}

func (p *Presenter) load(ctx context.Context, formula string) (*truthtable.DisplayModel, error) {
	resp, err := p.fetcher.Fetch(ctx, formula)
	if err != nil {
		return nil, err
	}
	return truthtable.Reshape(resp)
}

func (p *Presenter) changeLocked() change {
	p.version++
	fns := make([]func(State), len(p.observers))
	for i, o := range p.observers {
		fns[i] = o.fn
	}
	return change{version: p.version, state: p.state, fns: fns}
}

func (p *Presenter) notify(c change) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	if c.version <= p.delivered {
		return
	}
	p.delivered = c.version
	for _, fn := range c.fns {
		fn(c.state)
	}
}
