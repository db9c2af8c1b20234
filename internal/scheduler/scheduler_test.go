package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls     atomic.Int32
	retention time.Duration
	err       error
}

func (f *fakePurger) Purge(_ context.Context, retention time.Duration) (int64, error) {
	f.calls.Add(1)
	f.retention = retention
	return 3, f.err
}

func TestAddAuditPurge(t *testing.T) {
	s := New()
	p := &fakePurger{}

	require.NoError(t, s.AddAuditPurge("@daily", 30, p))
	assert.Equal(t, 1, s.Jobs())

	assert.Error(t, s.AddAuditPurge("not a schedule", 30, p))
	assert.Error(t, s.AddAuditPurge("@daily", 0, p))
	assert.Equal(t, 1, s.Jobs())
}

func TestScheduledPurgeRuns(t *testing.T) {
	s := New()
	p := &fakePurger{}
	require.NoError(t, s.AddAuditPurge("@every 1s", 7, p))

	s.Start()
	assert.Eventually(t, func() bool { return p.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestPurgeOnce(t *testing.T) {
	p := &fakePurger{}
	assert.Equal(t, int64(3), PurgeOnce(context.Background(), p, 48*time.Hour, logrus.StandardLogger()))
	assert.Equal(t, 48*time.Hour, p.retention)

	p.err = errors.New("db locked")
	assert.Zero(t, PurgeOnce(context.Background(), p, time.Hour, logrus.StandardLogger()))
}
