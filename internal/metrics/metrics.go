// Package metrics keeps in-memory time series that can be dumped as CSV.
package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

var (
	startTime    = time.Now()
	gaugesLocker = &sync.RWMutex{}
	gauges       = map[string]*Gauge{}
	gaugeNames   []string
)

// NewGauge returns the gauge registered under name, creating it on first use.
func NewGauge(name string) *Gauge {
	gaugesLocker.Lock()
	defer gaugesLocker.Unlock()

	if gauge, ok := gauges[name]; ok {
		return gauge
	}

	gauge := &Gauge{name: name}
	gauges[name] = gauge
	gaugeNames = append(gaugeNames, name)

	return gauge
}

// WriteMetrics writes every record of every gauge as CSV rows of
// name, label, value and nanoseconds since start.
func WriteMetrics(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write([]string{"name", "label", "value", "time"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	gaugesLocker.RLock()
	defer gaugesLocker.RUnlock()

	for _, name := range gaugeNames {
		gauge := gauges[name]
		for _, record := range gauge.Records() {
			err := csvWriter.Write([]string{
				gauge.name,
				record.Label,
				strconv.FormatFloat(record.Value, 'f', -1, 64),
				strconv.FormatInt(record.Time.Sub(startTime).Nanoseconds(), 10),
			})
			if err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}

	return nil
}

type Record struct {
	Value float64
	Time  time.Time
	Label string
}

type Gauge struct {
	name          string
	recordsLocker sync.RWMutex
	records       []Record
}

func (g *Gauge) Name() string {
	return g.name
}

func (g *Gauge) Set(value float64, label string) {
	g.recordsLocker.Lock()
	defer g.recordsLocker.Unlock()

	g.records = append(g.records, Record{
		Value: value,
		Time:  time.Now(),
		Label: label,
	})
}

// Records returns a copy of the recorded values in insertion order.
func (g *Gauge) Records() []Record {
	g.recordsLocker.RLock()
	defer g.recordsLocker.RUnlock()

	records := make([]Record, len(g.records))
	copy(records, g.records)

	return records
}

// Stopwatch records how long f took, in nanoseconds.
func (g *Gauge) Stopwatch(f func(), label string) time.Duration {
	start := time.Now()
	f()
	d := time.Since(start)
	g.Set(float64(d.Nanoseconds()), label)

	return d
}
