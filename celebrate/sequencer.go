// Package celebrate sequences one celebration: an image on the panel, a
// sound through the speakers, then back to a blank panel.
package celebrate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aouyang1/errorparty/assets"
	"github.com/google/uuid"
)

// NoSoundTimeout is how long an image stays up when no sound is available.
const NoSoundTimeout = 10000 * time.Millisecond

type State int

const (
	Idle State = iota
	Celebrating
)

func (s State) String() string {
	if s == Celebrating {
		return "celebrating"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "celebrating":
		*s = Celebrating
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}

// Display is the surface celebrations are rendered on.
type Display interface {
	Available() bool
	ShowImage(path string) error
	ShowBlank() error
}

type Picker interface {
	Pick(c assets.Category) (string, error)
}

type Player interface {
	Play(ctx context.Context, path string) error
}

type Prober interface {
	Duration(ctx context.Context, path string) time.Duration
}

// Snapshot describes the sequencer at one point in time.
type Snapshot struct {
	State    State     `json:"state"`
	CycleID  string    `json:"cycle_id,omitempty"`
	Image    string    `json:"image,omitempty"`
	Sound    string    `json:"sound,omitempty"`
	RevertAt time.Time `json:"revert_at,omitzero"`
	Cycles   int       `json:"cycles"`
}

type cycle struct {
	id       uuid.UUID
	image    string
	sound    string
	revertAt time.Time
}

type Sequencer struct {
	display Display
	picker  Picker
	player  Player
	prober  Prober
	clock   Clock

	// playback outlives Trigger and is cancelled by Stop
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	state   State
	current *cycle
	timer   Timer
	cycles  int
}

type Config struct {
	Display Display
	Picker  Picker
	Player  Player
	Prober  Prober
	// Clock defaults to SystemClock.
	Clock Clock
}

func NewSequencer(cfg Config) *Sequencer {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Sequencer{
		display: cfg.Display,
		picker:  cfg.Picker,
		player:  cfg.Player,
		prober:  cfg.Prober,
		clock:   clock,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Trigger starts a celebration. While one is already running it only swaps
// the image; the pending revert is left alone. Every failure degrades to a
// no-op.
func (s *Sequencer) Trigger(ctx context.Context) {
	if s.display == nil || !s.display.Available() {
		slog.Debug("display unavailable, skipping celebration")
		return
	}

	image, err := s.picker.Pick(assets.Image)
	if err != nil {
		slog.Debug("no image available, skipping celebration", "error", err)
		return
	}

	sound, err := s.picker.Pick(assets.Sound)
	if err != nil {
		slog.Debug("no sound available, celebrating silently", "error", err)
		sound = ""
	}

	s.mu.Lock()
	if s.state == Celebrating {
		s.show(image)
		s.mu.Unlock()
		slog.Debug("celebration in progress, refreshed image only", "image", image)
		return
	}
	c := &cycle{id: uuid.New(), image: image, sound: sound}
	s.state = Celebrating
	s.current = c
	s.cycles++
	s.show(image)
	s.mu.Unlock()

	delay := NoSoundTimeout
	if sound != "" {
		delay = s.prober.Duration(ctx, sound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != c {
		// stopped while probing
		return
	}
	c.revertAt = s.clock.Now().Add(delay)
	s.timer = s.clock.AfterFunc(delay, func() { s.revert(c) })
	if sound != "" {
		s.wg.Add(1)
		go s.play(sound)
	}

	slog.Info("celebrating", "cycle", c.id, "image", image, "sound", sound, "duration", delay)
}

func (s *Sequencer) play(sound string) {
	defer s.wg.Done()
	if err := s.player.Play(s.ctx, sound); err != nil {
		slog.Warn("unable to play celebration sound", "sound", sound, "error", err)
	}
}

func (s *Sequencer) revert(c *cycle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != c {
		return
	}
	s.state = Idle
	s.current = nil
	s.timer = nil
	if err := s.display.ShowBlank(); err != nil {
		slog.Warn("unable to blank display", "error", err)
	}
	slog.Debug("celebration finished", "cycle", c.id)
}

// show must be called with mu held.
func (s *Sequencer) show(image string) {
	if err := s.display.ShowImage(image); err != nil {
		slog.Warn("unable to show celebration image", "image", image, "error", err)
	}
}

// State returns a snapshot of the sequencer.
func (s *Sequencer) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{State: s.state, Cycles: s.cycles}
	if c := s.current; c != nil {
		snap.CycleID = c.id.String()
		snap.Image = c.image
		snap.Sound = c.sound
		snap.RevertAt = c.revertAt
	}
	return snap
}

// Stop cancels any pending revert and playback, blanks the display and waits
// for playback goroutines to exit. The sequencer must not be triggered again.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	wasCelebrating := s.state == Celebrating
	s.state = Idle
	s.current = nil
	if wasCelebrating && s.display != nil {
		if err := s.display.ShowBlank(); err != nil {
			slog.Warn("unable to blank display", "error", err)
		}
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
