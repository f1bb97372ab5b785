package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs process RSS along with Go heap stats to correlate native vs heap growth.

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// StartMemLogger launches a goroutine that logs memory stats every interval.
// It is best-effort; failures to query RSS are logged once and suppressed.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		proc, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			logger.Warn("memlog: process handle unavailable", slog.String("err", err.Error()))
			proc = nil
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for range ticker.C {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			gcount := runtime.NumGoroutine()
			rss := uint64(0)
			if proc != nil {
				if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
					rss = mi.RSS
				} else if err != nil && !rssErrLogged {
					logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
					rssErrLogged = true
				}
			}
			logger.Info("memstats",
				slog.Int("goroutines", gcount),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("heap_idle", ms.HeapIdle),
				slog.Uint64("heap_sys", ms.HeapSys),
				slog.Uint64("next_gc", ms.NextGC),
				slog.Uint64("rss", rss),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}
