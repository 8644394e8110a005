package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllSucceed(t *testing.T) {
	t.Parallel()

	ids := []string{"a", "b", "c", "d"}
	var calls atomic.Int32

	report := Run(context.Background(), ids, 2, func(ctx context.Context, id string) error {
		calls.Add(1)
		return nil
	})

	assert.Equal(t, 4, report.Processed)
	assert.Equal(t, 4, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Failures)
	assert.Equal(t, int32(4), calls.Load())
}

func TestRun_FailureIsIsolated(t *testing.T) {
	t.Parallel()

	ids := []string{"u1", "u2", "u3"}
	boom := errors.New("no active salary")

	report := Run(context.Background(), ids, 2, func(ctx context.Context, id string) error {
		if id == "u2" {
			return boom
		}
		return nil
	})

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "u2", report.Failures[0].ID)
	assert.Equal(t, boom.Error(), report.Failures[0].Message)
}

func TestRun_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	const limit = 3
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}

	Run(context.Background(), ids, limit, func(ctx context.Context, id string) error {
		mu.Lock()
		active++
		if active > maxSeen {
			maxSeen = active
		}
		mu.Unlock()

		mu.Lock()
		active--
		mu.Unlock()
		return nil
	})

	assert.LessOrEqual(t, maxSeen, limit)
}

func TestRun_DefaultLimit(t *testing.T) {
	t.Parallel()

	report := Run(context.Background(), []string{"x"}, 0, func(ctx context.Context, id string) error {
		return nil
	})
	assert.Equal(t, 1, report.Succeeded)
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()

	report := Run(context.Background(), nil, 5, func(ctx context.Context, id string) error {
		t.Fatal("fn called for empty input")
		return nil
	})
	assert.Equal(t, 0, report.Processed)
}
