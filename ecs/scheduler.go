package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/plus3/leapfrog/gfx"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Failures        int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	FailureCount   int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	failureCount   int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// SystemError reports which system failed and in which frame.
type SystemError struct {
	System string
	Frame  uint64
	Err    error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("system %s failed in frame %d: %v", e.System, e.Frame, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	registry    *Registry
	systems     []System
	systemStats []*systemStatsInternal
	frames      uint64
	failures    int64
}

// NewScheduler creates a new scheduler for the given registry.
func NewScheduler(registry *Registry) *Scheduler {
	return &Scheduler{
		registry: registry,
		systems:  make([]System, 0),
	}
}

// Register appends a system. Systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if named, ok := system.(Named); ok {
		return named.Name()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Registry returns the registry the scheduler runs over.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Once executes all registered systems once. The first failing system stops
// the frame and its error is returned wrapped in a *SystemError. The registry
// is committed whether or not the frame completed.
func (s *Scheduler) Once(elapsed time.Duration, target gfx.Target) error {
	s.frames++
	frame := newUpdateFrame(s.frames, elapsed, s.registry, target)
	defer s.registry.Commit()

	for i, system := range s.systems {
		start := time.Now()
		err := system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			stats.failureCount++
			s.failures++
			return &SystemError{System: stats.name, Frame: frame.Number, Err: err}
		}
	}

	return nil
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled or a frame fails. Cancellation is only observed between frames.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, target gfx.Target) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(lastTime)
			lastTime = now
			if err := s.Once(elapsed, target); err != nil {
				return err
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Failures:    s.failures,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			FailureCount:   internal.failureCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
