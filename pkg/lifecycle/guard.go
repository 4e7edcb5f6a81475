// Package lifecycle guarantees that a run's cleanup happens exactly once,
// whether the run ends normally, fails, or is interrupted by a signal.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/arthur-debert/modbisect/pkg/logging"
)

// DefaultSignals are the termination signals a Guard listens for.
var DefaultSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Guard owns a signal-aware context and the cleanup bound to it.
type Guard struct {
	cancel  context.CancelFunc
	cleanup func() error

	sigCh chan os.Signal
	done  chan struct{}
	wg    sync.WaitGroup

	mu       sync.Mutex
	received os.Signal

	once sync.Once
	err  error
}

// New returns a context that is cancelled when one of sigs arrives (or
// DefaultSignals when none are given) and a Guard whose Release runs
// cleanup. Callers defer Release right away.
func New(parent context.Context, cleanup func() error, sigs ...os.Signal) (context.Context, *Guard) {
	if len(sigs) == 0 {
		sigs = DefaultSignals
	}
	ctx, cancel := context.WithCancel(parent)

	g := &Guard{
		cancel:  cancel,
		cleanup: cleanup,
		sigCh:   make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	signal.Notify(g.sigCh, sigs...)

	g.wg.Add(1)
	go g.watch()
	return ctx, g
}

func (g *Guard) watch() {
	defer g.wg.Done()
	select {
	case sig := <-g.sigCh:
		logger := logging.GetLogger("lifecycle")
		logger.Warn().Str("signal", sig.String()).Msg("Interrupted, restoring folders")
		g.mu.Lock()
		g.received = sig
		g.mu.Unlock()
		// a second signal gets the default behaviour
		signal.Stop(g.sigCh)
		g.cancel()
	case <-g.done:
	}
}

// Signal returns the signal that interrupted the run, or nil.
func (g *Guard) Signal() os.Signal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.received
}

// Interrupted reports whether a signal cancelled the context.
func (g *Guard) Interrupted() bool {
	return g.Signal() != nil
}

// Release stops listening for signals, cancels the context and runs the
// cleanup. Only the first call does any work; later calls return the same
// error.
func (g *Guard) Release() error {
	g.once.Do(func() {
		signal.Stop(g.sigCh)
		close(g.done)
		g.wg.Wait()
		g.cancel()
		if g.cleanup != nil {
			g.err = g.cleanup()
		}
	})
	return g.err
}
