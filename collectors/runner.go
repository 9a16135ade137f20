package collectors

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultUpdateBufferSize is the default capacity of the updates
	// channel. A buffered channel prevents a slow consumer from
	// blocking collectors.
	DefaultUpdateBufferSize = 64

	// DefaultStopTimeout is the maximum time Stop() will wait for
	// goroutines to finish before returning.
	DefaultStopTimeout = 5 * time.Second
)

// Update is one live collection result fanned in from the runner.
type Update struct {
	Source    string
	Result    *Result
	Timestamp time.Time
	Err       error
}

// errTracker deduplicates repeated identical errors per collector.
type errTracker struct {
	lastMsg    string
	lastTime   time.Time
	suppressed int64
}

// Runner drives collectors for live mode. Each registered collector
// runs in its own goroutine with an independent ticker at its
// Interval(). Results fan in to a single updates channel.
type Runner struct {
	registry    *Registry
	updates     chan<- Update
	logger      *slog.Logger
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	stopped     chan struct{}
	once        sync.Once
	mu          sync.Mutex
	errTrackers map[string]*errTracker
}

// NewRunner creates a runner that sends collection results to the
// provided updates channel. The caller is responsible for creating and
// reading from the channel. If logger is nil, a no-op logger is used.
func NewRunner(registry *Registry, updates chan<- Update, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		registry:    registry,
		updates:     updates,
		logger:      logger,
		stopped:     make(chan struct{}),
		errTrackers: make(map[string]*errTracker),
	}
}

// Start launches a goroutine for each registered collector. Each
// goroutine runs Collect() immediately and then at the collector's
// Interval(). An empty registry is not an error; the runner simply does
// nothing.
//
// The provided context controls the lifetime of all collector
// goroutines. Cancelling it (or calling Stop) shuts them down.
func (r *Runner) Start(ctx context.Context) error {
	ctx, r.cancel = context.WithCancel(ctx)

	cs := r.registry.All()
	if len(cs) == 0 {
		// Close stopped immediately so Stop() doesn't block.
		close(r.stopped)
		return nil
	}

	for _, c := range cs {
		r.wg.Add(1)
		go r.runCollector(ctx, c)
	}

	// Wait for all goroutines in a background goroutine, then signal
	// stopped.
	go func() {
		r.wg.Wait()
		close(r.stopped)
	}()

	return nil
}

// Stop cancels the runner context and waits for all collector
// goroutines to finish, with a timeout to prevent indefinite blocking.
func (r *Runner) Stop() {
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
	})

	select {
	case <-r.stopped:
		// All goroutines finished.
	case <-time.After(DefaultStopTimeout):
		r.logger.Warn("runner stop timed out", slog.Duration("timeout", DefaultStopTimeout))
	}
}

// runCollector is the per-collector goroutine. It ticks at
// c.Interval(), performs a collection, and sends the result on the
// updates channel. Errors are logged but do not stop the goroutine.
func (r *Runner) runCollector(ctx context.Context, c Collector) {
	defer r.wg.Done()

	interval := c.Interval()
	if interval <= 0 {
		interval = time.Second
	}

	// Run immediately on start, then tick.
	r.collectAndSend(ctx, c)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.collectAndSend(ctx, c)
		}
	}
}

// collectAndSend performs one collection cycle and sends the result.
func (r *Runner) collectAndSend(ctx context.Context, c Collector) {
	name := c.Name()
	start := time.Now()

	res, err := c.Collect(ctx)
	if err != nil {
		r.logCollectorError(name, err)
	}

	update := Update{
		Source:    name,
		Result:    res,
		Timestamp: start,
		Err:       err,
	}

	// Non-blocking send: if the channel is full, drop the update and
	// log. This prevents a slow consumer from blocking all collectors.
	select {
	case r.updates <- update:
	default:
		r.logger.Warn("update channel full, dropping update", slog.String("collector", name))
	}
}

// logCollectorError deduplicates repeated identical errors from the
// same collector. If the same message recurs within 1 hour it is
// suppressed, with a summary logged every 100 suppressions. Live mode
// re-collects every few seconds, so a permanently failing probe would
// otherwise flood the log.
func (r *Runner) logCollectorError(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := err.Error()
	tracker := r.errTrackers[name]
	if tracker == nil {
		tracker = &errTracker{}
		r.errTrackers[name] = tracker
	}
	now := time.Now()
	if msg == tracker.lastMsg && now.Sub(tracker.lastTime) < time.Hour {
		tracker.suppressed++
		if tracker.suppressed%100 == 0 {
			r.logger.Warn("collector error repeating",
				slog.String("collector", name),
				slog.Int64("repeats", tracker.suppressed),
				slog.String("error", msg),
			)
		}
		return
	}
	if tracker.suppressed > 0 {
		r.logger.Warn("previous collector error repeated",
			slog.String("collector", name),
			slog.Int64("repeats", tracker.suppressed),
		)
	}
	r.logger.Warn("collector error", slog.String("collector", name), slog.String("error", msg))
	tracker.lastMsg = msg
	tracker.lastTime = now
	tracker.suppressed = 0
}
