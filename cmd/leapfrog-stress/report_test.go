package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestRunGame(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	result, err := runGame(ctx, config.New(), "", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), result.Seed)
	assert.Positive(t, result.Frames)
	assert.Positive(t, result.Draws)
	assert.Positive(t, result.Distance)
	assert.Zero(t, result.Failures)
	assert.Len(t, result.UpdateTime.Samples, int(result.Frames))

	report := &Report{Duration: time.Second, Runs: []RunResult{result}}
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "## Seed 7")
	assert.Contains(t, buf.String(), "**Frame Step:** 16.666666ms")
}

func TestRunGameFailures(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	failEveryOther := ecs.SystemFunc(func(frame *ecs.UpdateFrame) error {
		if frame.Number%2 == 0 {
			return errors.New("boom")
		}
		return nil
	})

	result, err := runGame(ctx, config.New(), "", 3, failEveryOther)
	require.NoError(t, err, "failed frames do not end the run")
	require.Greater(t, result.Frames, int64(1))
	assert.Positive(t, result.Failures)
	assert.Less(t, result.Failures, result.Frames)
}
