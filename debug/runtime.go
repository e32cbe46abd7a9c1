package debug

// Periodic runtime logger, started only when config.Debug is true. Logs
// goroutine count, Go heap figures and the process resident set so native
// allocations from OpenCV or onnxruntime can be told apart from Go heap growth.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// Extra returns additional attributes appended to every sample.
type Extra func() []slog.Attr

// StartRuntimeLogger logs a sample every interval until ctx is done.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, extra Extra) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			attrs := []slog.Attr{
				slog.Uint64("goroutines", samples[0].Value.Uint64()),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("heap_sys", ms.HeapSys),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			}
			rss, err := residentSetSize()
			if err != nil {
				if !rssErrLogged {
					logger.Warn("runtime-stats: rss unavailable", slog.String("err", err.Error()))
					rssErrLogged = true
				}
			} else {
				attrs = append(attrs, slog.Uint64("rss", rss))
			}
			if extra != nil {
				attrs = append(attrs, extra()...)
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "runtime-stats", attrs...)
		}
	}()
}
