//go:build dev

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/felixge/fgprof"
	"github.com/mazrean/jsonagent/internal/metrics"
	"github.com/mazrean/jsonagent/log"
)

const procStatInterval = 100 * time.Millisecond

type DevFlag struct {
	CPUProf     string       `kong:"optional,help='CPU profile output file',type='path'"`
	CPUProfFile *os.File     `kong:"-"`
	MemProf     string       `kong:"optional,help='Memory profile output file',type='path'"`
	Metrics     string       `kong:"optional,help='Metrics output file',type='path'"`
	FgProf      string       `kong:"optional,help='fgprof output file',type='path'"`
	fgprofStop  func() error `kong:"-"`
}

func (d *DevFlag) StartProfiling(ctx context.Context, logger log.Logger) error {
	if d.CPUProf != "" {
		f, err := os.Create(d.CPUProf)
		if err != nil {
			return fmt.Errorf("create CPU profile file: %w", err)
		}
		d.CPUProfFile = f

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start CPU profiling: %w", err)
		}
	}

	if d.FgProf != "" {
		f, err := os.Create(d.FgProf)
		if err != nil {
			return fmt.Errorf("create fgprof file: %w", err)
		}

		d.fgprofStop = fgprof.Start(f, fgprof.FormatPprof)
	}

	if d.Metrics != "" {
		if err := metrics.StartProcStat(ctx, procStatInterval, logger); err != nil {
			return fmt.Errorf("start proc stat: %w", err)
		}
	}

	logger.Debugf("profiling started")

	return nil
}

func (d *DevFlag) StopProfiling(logger log.Logger) {
	if d.CPUProfFile != nil {
		pprof.StopCPUProfile()
		defer d.CPUProfFile.Close()
	}

	if d.fgprofStop != nil {
		if err := d.fgprofStop(); err != nil {
			logger.Errorf("could not stop fgprof: %v", err)
		}
	}

	if d.MemProf != "" {
		if err := writeFile(d.MemProf, func(f *os.File) error {
			runtime.GC()
			return pprof.WriteHeapProfile(f)
		}); err != nil {
			logger.Errorf("could not write memory profile: %v", err)
		}
	}

	if d.Metrics != "" {
		if err := writeFile(d.Metrics, func(f *os.File) error {
			return metrics.WriteMetrics(f)
		}); err != nil {
			logger.Errorf("could not write metrics: %v", err)
		}
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return write(f)
}
