package scores

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

// Fetcher is the part of Client the poller needs; tests substitute a stub.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.GameScore, error)
}

// Poller periodically fetches the live score and fans it out to subscribers.
// A fetch failure keeps the last known score. SetMock overrides the feed for
// demos and tests.
type Poller struct {
	fetcher  Fetcher
	clock    clockwork.Clock
	interval time.Duration

	mu     sync.Mutex
	latest models.GameScore
	mocked bool
	subs   map[int]func(models.GameScore)
	nextID int
}

// NewPoller creates a poller over the given fetcher. Interval must be
// positive.
func NewPoller(fetcher Fetcher, clock clockwork.Clock, interval time.Duration) *Poller {
	return &Poller{
		fetcher:  fetcher,
		clock:    clock,
		interval: interval,
		subs:     make(map[int]func(models.GameScore)),
	}
}

// Run polls until ctx is cancelled. It fetches once immediately, then on
// every tick.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	mocked := p.mocked
	p.mu.Unlock()
	if mocked {
		return
	}

	score, err := p.fetcher.Fetch(ctx)
	if err != nil {
		slog.Warn("Score fetch failed", "error", err)
		return
	}
	p.publish(*score)
}

// Latest returns the most recent score seen, zero-valued before the first
// successful fetch.
func (p *Poller) Latest() models.GameScore {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// SetMock overrides the feed with a manually supplied score. Once called,
// polling stops updating the score; subscribers still get each mock update.
func (p *Poller) SetMock(score models.GameScore) {
	p.mu.Lock()
	p.mocked = true
	p.mu.Unlock()
	p.publish(score)
}

// Subscribe registers a callback for score updates and returns an
// unsubscribe function. Callbacks run synchronously on the polling goroutine.
func (p *Poller) Subscribe(fn func(models.GameScore)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *Poller) publish(score models.GameScore) {
	p.mu.Lock()
	p.latest = score
	subs := make([]func(models.GameScore), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(score)
	}
}
