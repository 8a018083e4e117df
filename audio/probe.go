package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultDuration is used when no probe can tell how long a sound is.
	DefaultDuration = 5000 * time.Millisecond

	defaultProbeTimeout = 3 * time.Second

	maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))
)

// ProbeCommands print a sound's duration in seconds, in order of preference.
var ProbeCommands = Chain{
	{Template: []string{"ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", PathPlaceholder}},
	{Template: []string{"soxi", "-D", PathPlaceholder}},
	{Template: []string{"sox", "--i", "-D", PathPlaceholder}},
	{Template: []string{"mdls", "-raw", "-name", "kMDItemDurationSeconds", PathPlaceholder}},
}

// Prober estimates playback duration with external probe tools.
type Prober struct {
	runner  Runner
	chain   Chain
	timeout time.Duration
}

func NewProber(runner Runner) *Prober {
	return NewProberWithChain(runner, ProbeCommands)
}

func NewProberWithChain(runner Runner, chain Chain) *Prober {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Prober{runner: runner, chain: chain, timeout: defaultProbeTimeout}
}

// Duration returns the sound's length floored to whole milliseconds, or
// DefaultDuration if it cannot be determined. The first probe that succeeds
// decides; its output is not retried against later probes.
func (p *Prober) Duration(ctx context.Context, path string) time.Duration {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.chain.Run(ctx, p.runner, path)
	if err != nil {
		slog.Debug("unable to probe sound duration, using default", "path", path, "default", DefaultDuration, "error", err)
		return DefaultDuration
	}

	d, err := ParseSeconds(string(out))
	if err != nil {
		slog.Debug("unable to parse sound duration, using default", "path", path, "output", string(out), "default", DefaultDuration, "error", err)
		return DefaultDuration
	}
	return d
}

// ParseSeconds parses a float number of seconds and floors it to whole
// milliseconds. Zero, negative, non-finite and out of range values are
// rejected.
func ParseSeconds(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	ms := math.Floor(secs * 1000)
	if ms <= 0 {
		return 0, fmt.Errorf("non-positive duration %q", s)
	}
	if ms > maxMillis {
		return 0, fmt.Errorf("duration %q out of range", s)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
