// Package audio plays sound files and estimates their duration by trying an
// ordered list of external commands until one works.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// PathPlaceholder is replaced by the sound file path in command templates.
const PathPlaceholder = "{path}"

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports whether the named binary can be executed.
	LookPath(name string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (ExecRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}

// Strategy is one command template plus the check that decides if its
// result counts as success. Quote, when set, is applied to the path before
// it is substituted into the template.
type Strategy struct {
	Template []string
	Check    func(out []byte, err error) bool
	Quote    func(path string) string
}

// Success is the default check: the command exited with status 0.
func Success(_ []byte, err error) bool {
	return err == nil
}

// Command returns the binary name and arguments with the path substituted.
func (s Strategy) Command(path string) (string, []string) {
	if s.Quote != nil {
		path = s.Quote(path)
	}
	args := make([]string, len(s.Template)-1)
	for i, arg := range s.Template[1:] {
		args[i] = strings.ReplaceAll(arg, PathPlaceholder, path)
	}
	return s.Template[0], args
}

func (s Strategy) String() string {
	return strings.Join(s.Template, " ")
}

// Chain is an ordered list of strategies.
type Chain []Strategy

var ErrChainExhausted = errors.New("no command in chain succeeded")

// Run tries each strategy in order and returns the stdout of the first one
// whose check passes. Strategies whose binary is missing are skipped.
func (c Chain) Run(ctx context.Context, runner Runner, path string) ([]byte, error) {
	var errs []error
	for _, s := range c {
		if len(s.Template) == 0 {
			continue
		}
		name, args := s.Command(path)
		if err := runner.LookPath(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		out, err := runner.Run(ctx, name, args...)
		check := s.Check
		if check == nil {
			check = Success
		}
		if check(out, err) {
			return out, nil
		}
		if err == nil {
			err = errors.New("check failed")
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, err))

		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, ErrChainExhausted
	}
	return nil, fmt.Errorf("%w: %w", ErrChainExhausted, errors.Join(errs...))
}
