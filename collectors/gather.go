package collectors

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultTimeout bounds a single collector run during one-shot
// gathering. Probes are local reads, so anything slower than this is
// stuck, not slow.
const DefaultTimeout = 2 * time.Second

// Gather runs every registered collector once, in parallel, and returns
// the results in registration order. A failing collector leaves a nil
// entry instead of aborting the run; its section is simply absent from
// the banner. If timeout is not positive, DefaultTimeout applies per
// collector. If logger is nil, a no-op logger is used.
func Gather(ctx context.Context, reg *Registry, logger *slog.Logger, timeout time.Duration) []*Result {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cs := reg.All()
	results := make([]*Result, len(cs))

	var wg sync.WaitGroup
	wg.Add(len(cs))
	for i, c := range cs {
		go func(i int, c Collector) {
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			res, err := c.Collect(cctx)
			if err != nil {
				logger.Warn("collector failed",
					slog.String("collector", c.Name()),
					slog.String("error", err.Error()),
				)
				return
			}

			for _, w := range res.Warnings {
				logger.Warn("collector warning",
					slog.String("collector", c.Name()),
					slog.String("warning", w),
				)
			}
			logger.Debug("collector finished",
				slog.String("collector", c.Name()),
				slog.Duration("elapsed", time.Since(start)),
				slog.Int("fields", len(res.Fields)),
			)
			results[i] = res
		}(i, c)
	}
	wg.Wait()

	return results
}
