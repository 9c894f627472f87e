package simulation

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/logging"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/pathmodel"
)

// DefaultRebuildDelay is how long a Rebuilder waits for edits to stop before simulating.
const DefaultRebuildDelay = 200 * time.Millisecond

// A Rebuilder re-simulates a path after it stops changing. Bursts of requests collapse
// into one simulation of the latest request, run off the caller's goroutine.
type Rebuilder struct {
	sim       *Simulator
	logger    logging.Logger
	debounced func(f func())

	mu         sync.Mutex
	closed     bool
	generation uint64
	results    chan *Result
}

// NewRebuilder returns a Rebuilder that waits delay after the last request before
// simulating. A non-positive delay uses DefaultRebuildDelay.
func NewRebuilder(logger logging.Logger, delay time.Duration) *Rebuilder {
	if delay <= 0 {
		delay = DefaultRebuildDelay
	}
	return &Rebuilder{
		sim:       NewSimulator(logger.Sublogger("simulator")),
		logger:    logger,
		debounced: debounce.New(delay),
		results:   make(chan *Result, 1),
	}
}

// Request schedules a simulation of a snapshot of p under c. Later edits to p do not
// affect the scheduled run.
func (r *Rebuilder) Request(p *pathmodel.Path, c config.Constraints) {
	snapshot := p.Clone()
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.generation++
	generation := r.generation
	r.mu.Unlock()

	r.debounced(func() {
		r.rebuild(generation, snapshot, c)
	})
}

// Results delivers the latest finished simulation. An unread result is replaced by a
// newer one. The channel is closed by Close.
func (r *Rebuilder) Results() <-chan *Result {
	return r.results
}

// Close stops delivery of results. Requests made after Close are ignored.
func (r *Rebuilder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.results)
}

func (r *Rebuilder) rebuild(generation uint64, p *pathmodel.Path, c config.Constraints) {
	if p == nil {
		p = pathmodel.New()
	}
	res := r.sim.Simulate(p, c, DefaultTimestep)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || generation != r.generation {
		r.logger.Debugw("dropping stale simulation", "generation", generation)
		return
	}
	select {
	case <-r.results:
	default:
	}
	r.results <- res
}
