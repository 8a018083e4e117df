package audio

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// PlaybackCommands maps GOOS to the players tried, in order.
var PlaybackCommands = map[string]Chain{
	"darwin": {
		{Template: []string{"afplay", PathPlaceholder}},
	},
	"linux": {
		{Template: []string{"paplay", PathPlaceholder}},
		{Template: []string{"aplay", "-q", PathPlaceholder}},
		{Template: []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", PathPlaceholder}},
		{Template: []string{"mpg123", "-q", PathPlaceholder}},
		{Template: []string{"cvlc", "--play-and-exit", "--quiet", PathPlaceholder}},
	},
	"windows": {
		{
			Template: []string{"powershell.exe", "-NoProfile", "-c", "(New-Object Media.SoundPlayer '" + PathPlaceholder + "').PlaySync()"},
			Quote:    powershellQuote,
		},
		{Template: []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", PathPlaceholder}},
	},
}

// powershellQuote escapes a path for use inside a single-quoted PowerShell
// string literal.
func powershellQuote(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}

// Player plays a sound file through the first external player that works.
type Player struct {
	runner Runner
	chain  Chain
}

// NewPlayer builds a player for the current platform. A nil runner uses
// ExecRunner.
func NewPlayer(runner Runner) *Player {
	return NewPlayerWithChain(runner, PlaybackCommands[runtime.GOOS])
}

func NewPlayerWithChain(runner Runner, chain Chain) *Player {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Player{runner: runner, chain: chain}
}

// Play blocks until playback finishes or every player failed.
func (p *Player) Play(ctx context.Context, path string) error {
	if len(p.chain) == 0 {
		return fmt.Errorf("no audio players known for %s", runtime.GOOS)
	}
	if _, err := p.chain.Run(ctx, p.runner, path); err != nil {
		return fmt.Errorf("failed to play %s: %w", path, err)
	}
	slog.Debug("played sound", "path", path)
	return nil
}
