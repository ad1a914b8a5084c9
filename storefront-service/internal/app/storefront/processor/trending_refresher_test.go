package processor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefresher struct {
	calls int32
	err   error
}

func (s *stubRefresher) RefreshTrending(ctx context.Context) error {
	atomic.AddInt32(&s.calls, 1)
	return s.err
}

func TestStart_RunsInitialWarmup(t *testing.T) {
	stub := &stubRefresher{}
	refresher := NewTrendingRefresher(stub)

	err := refresher.Start(context.Background(), "@every 1h")
	defer refresher.Stop()

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))
}

func TestStart_WarmupErrorIsNotFatal(t *testing.T) {
	stub := &stubRefresher{err: errors.New("redis down")}
	refresher := NewTrendingRefresher(stub)

	err := refresher.Start(context.Background(), "@every 1h")
	defer refresher.Stop()

	// Сбой прогрева не мешает запуску, следующий тик попробует снова
	require.NoError(t, err)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	refresher := NewTrendingRefresher(&stubRefresher{})

	err := refresher.Start(context.Background(), "not-a-schedule")

	assert.Error(t, err)
}
