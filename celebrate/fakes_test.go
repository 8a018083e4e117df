package celebrate

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aouyang1/errorparty/assets"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves time forward and runs due timers in deadline order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// Pending counts timers that have neither fired nor been stopped.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *manualClock) Armed() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []time.Duration
	for _, t := range c.timers {
		out = append(out, t.at.Sub(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	}
	return out
}

const blank = "<blank>"

type fakeDisplay struct {
	mu          sync.Mutex
	unavailable bool
	frames      []string
}

func (d *fakeDisplay) Available() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.unavailable
}

func (d *fakeDisplay) ShowImage(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, path)
	return nil
}

func (d *fakeDisplay) ShowBlank() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, blank)
	return nil
}

func (d *fakeDisplay) Frames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.frames...)
}

func (d *fakeDisplay) Last() string {
	frames := d.Frames()
	if len(frames) == 0 {
		return ""
	}
	return frames[len(frames)-1]
}

// fakePicker hands out queued picks; an empty queue means not found.
type fakePicker struct {
	mu    sync.Mutex
	picks map[assets.Category][]string
	order []assets.Category
}

func newFakePicker(images, sounds []string) *fakePicker {
	return &fakePicker{picks: map[assets.Category][]string{
		assets.Image: images,
		assets.Sound: sounds,
	}}
}

func (p *fakePicker) Pick(c assets.Category) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.order = append(p.order, c)
	pool := p.picks[c]
	if len(pool) == 0 {
		return "", assets.ErrEmptyPool
	}
	pick := pool[0]
	if len(pool) > 1 {
		p.picks[c] = pool[1:]
	}
	return pick, nil
}

type fakePlayer struct {
	mu     sync.Mutex
	played []string
	err    error
	done   chan string
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{done: make(chan string, 16)}
}

func (p *fakePlayer) Play(_ context.Context, path string) error {
	p.mu.Lock()
	p.played = append(p.played, path)
	err := p.err
	p.mu.Unlock()
	p.done <- path
	return err
}

type fakeProber struct {
	mu       sync.Mutex
	duration time.Duration
	probed   []string
}

func (p *fakeProber) Duration(_ context.Context, path string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, path)
	return p.duration
}
