package diagnostics

import "sync"

// Observer remembers the last error total it saw.
type Observer struct {
	mu   sync.Mutex
	last int
}

// Observe records the report's error total and reports whether it is
// strictly lower than the previous one. The first baseline is zero.
func (o *Observer) Observe(r Report) bool {
	total := r.Errors()

	o.mu.Lock()
	defer o.mu.Unlock()
	decreased := total < o.last
	o.last = total
	return decreased
}

// Last returns the most recently observed error total.
func (o *Observer) Last() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}
