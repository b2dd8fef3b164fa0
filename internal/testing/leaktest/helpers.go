// Package leaktest detects goroutines left running after a test finishes.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	// settleTimeout bounds how long Check waits for goroutines to exit
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
)

// GoroutineChecker records the goroutine count at construction and compares
// against it later.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a checker once background goroutines settle.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(pollInterval)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines are still running
// after the settle timeout. Goroutines that exit while polling are not leaks.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	leaked := g.leaked()
	deadline := time.Now().Add(settleTimeout)
	for leaked > tolerance && time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		runtime.GC()
		leaked = g.leaked()
	}

	if leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, leaked=%d (tolerance=%d)",
			g.before, leaked, tolerance)
	}
}

func (g *GoroutineChecker) leaked() int {
	return runtime.NumGoroutine() - g.before
}

// VerifyNone registers a cleanup that checks for leaked goroutines when the
// test ends.
func VerifyNone(t testing.TB, tolerance int) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	t.Cleanup(func() { checker.Check(tolerance) })
}
