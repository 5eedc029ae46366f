// Package metrics keeps operational gauges and counters in an embedded
// time-series store under the application workdir.
package metrics

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
)

var (
	mu      sync.RWMutex
	storage tstorage.Storage
)

// InitMetrics opens the time-series store under workdir.
func InitMetrics(workdir string) error {
	dataPath := filepath.Join(workdir, "metrics")
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return errors.Wrap(err, "create metrics dir")
	}
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(dataPath),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return errors.Wrap(err, "open metrics storage")
	}
	mu.Lock()
	storage = s
	mu.Unlock()
	return nil
}

// SetGauge records the current value of a gauge metric.
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// IncrCounter records one occurrence of a counter metric.
func IncrCounter(name string) {
	insert(name, 1)
}

func insert(name string, value float64) {
	mu.RLock()
	s := storage
	mu.RUnlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{
		{Metric: name, DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value}},
	})
}

// Latest returns the most recent value of a metric within the window, or
// zero when nothing was recorded.
func Latest(name string, window time.Duration) float64 {
	points := Series(name, window)
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Value
}

// Series returns all points of a metric within the window, oldest first.
func Series(name string, window time.Duration) []*tstorage.DataPoint {
	mu.RLock()
	s := storage
	mu.RUnlock()
	if s == nil {
		return nil
	}
	end := time.Now().Unix()
	points, err := s.Select(name, nil, end-int64(window.Seconds()), end+1)
	if err != nil {
		return nil
	}
	return points
}

// CounterSum totals a counter metric over the window.
func CounterSum(name string, window time.Duration) int64 {
	var total float64
	for _, p := range Series(name, window) {
		total += p.Value
	}
	return int64(total)
}

// Close flushes and closes the store.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
