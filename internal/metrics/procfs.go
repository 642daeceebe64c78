package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/procfs"
)

var (
	cpuSelfGauge = NewGauge("cpu_self")
	memAllGauge  = NewGauge("mem_all")
	memSelfGauge = NewGauge("mem_self")
)

// Logger receives sampling failures.
type Logger interface {
	Warnf(format string, args ...any)
}

// StartProcStat samples system memory and the resources of this process
// every interval until ctx is done.
func StartProcStat(ctx context.Context, interval time.Duration, logger Logger) error {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return fmt.Errorf("create procfs: %w", err)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			if err := sampleMem(fs); err != nil {
				logger.Warnf("sample memory: %v", err)
			}
			if err := sampleSelf(fs); err != nil {
				logger.Warnf("sample process: %v", err)
			}
		}
	}()

	return nil
}

func sampleMem(fs procfs.FS) error {
	mem, err := fs.Meminfo()
	if err != nil {
		return fmt.Errorf("get meminfo: %w", err)
	}

	for label, v := range map[string]*uint64{
		"total":     mem.MemTotal,
		"free":      mem.MemFree,
		"available": mem.MemAvailable,
		"cached":    mem.Cached,
	} {
		if v != nil {
			memAllGauge.Set(float64(*v), label)
		}
	}

	return nil
}

func sampleSelf(fs procfs.FS) error {
	proc, err := fs.Self()
	if err != nil {
		return fmt.Errorf("get self: %w", err)
	}

	stat, err := proc.Stat()
	if err != nil {
		return fmt.Errorf("get stat: %w", err)
	}

	cpuSelfGauge.Set(stat.CPUTime(), "total")
	memSelfGauge.Set(float64(stat.ResidentMemory()), "resident")
	memSelfGauge.Set(float64(stat.VirtualMemory()), "virtual")

	return nil
}
