package audio

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

type fakeResult struct {
	out string
	err error
}

// fakeRunner answers commands by binary name and records every call.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]fakeResult
	missing map[string]bool
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: make(map[string]fakeResult),
		missing: make(map[string]bool),
	}
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	res, ok := f.results[name]
	if !ok {
		return nil, errors.New("exit status 1")
	}
	return []byte(res.out), res.err
}

func (f *fakeRunner) LookPath(name string) error {
	if f.missing[name] {
		return exec.ErrNotFound
	}
	return nil
}

func (f *fakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
