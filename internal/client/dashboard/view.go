// Package dashboard holds the CLI's current dashboard and decides which
// results are allowed to replace it.
//
// Every Refresh or Push starts a new generation. A fetch result is applied
// only if its generation is still the latest and its context is still live,
// so the last request always wins and a slow, superseded or cancelled fetch
// never overwrites newer data.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
)

// ErrSuperseded is returned by Refresh when a newer request replaced it
// before it finished.
var ErrSuperseded = errors.New("dashboard request superseded")

// Fetcher loads a dashboard. Cached reports whether it came from the local
// cache rather than the server.
type Fetcher func(ctx context.Context) (d *api.Dashboard, cached bool, err error)

// State is what the view currently shows.
type State struct {
	Dashboard *api.Dashboard
	Cached    bool
}

type View struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current State
}

func NewView() *View {
	return &View{}
}

// begin opens a new generation and cancels the in-flight fetch, if any.
func (v *View) begin(ctx context.Context) (context.Context, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	cctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	return cctx, v.gen
}

// Refresh runs fetch and applies its result unless it was superseded or ctx
// was cancelled first.
func (v *View) Refresh(ctx context.Context, fetch Fetcher) (State, error) {
	cctx, gen := v.begin(ctx)

	d, cached, err := fetch(cctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		return State{}, ErrSuperseded
	}
	v.cancel()
	v.cancel = nil

	if ctxErr := ctx.Err(); ctxErr != nil {
		return State{}, ctxErr
	}
	if err != nil {
		return State{}, err
	}

	v.current = State{Dashboard: d, Cached: cached}
	return v.current, nil
}

// Push applies a dashboard delivered by the server stream. It supersedes any
// fetch still in flight.
func (v *View) Push(d *api.Dashboard) State {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++
	v.current = State{Dashboard: d}
	return v.current
}

// Current returns the last applied state.
func (v *View) Current() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
