package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"memberhub_backend/internal/lock"
	"memberhub_backend/internal/services"
	"memberhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeExpiry struct {
	sweeps    atomic.Int32
	reminders atomic.Int32
	result    services.ExpiryResult
	err       error
	lastDays  int
}

func (f *fakeExpiry) ExpireOverdue(_ context.Context, _ *gorm.DB) (services.ExpiryResult, error) {
	f.sweeps.Add(1)
	return f.result, f.err
}

func (f *fakeExpiry) SendRenewalReminders(_ context.Context, _ *gorm.DB, days int) (int, error) {
	f.reminders.Add(1)
	f.lastDays = days
	return 2, nil
}

func TestRunExpiryNow(t *testing.T) {
	fake := &fakeExpiry{result: services.ExpiryResult{Expired: 3, Failed: 1}}
	w := NewExpiryWorker(nil, fake, lock.NewInMemoryLock(), ExpiryWorkerOptions{})

	result, err := w.RunExpiryNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Expired)
	assert.Equal(t, 1, result.Failed)
	assert.EqualValues(t, 1, fake.sweeps.Load())

	// lock is released after the run
	_, err = w.RunExpiryNow(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, fake.sweeps.Load())
}

func TestRunExpiryNow_LockHeld(t *testing.T) {
	fake := &fakeExpiry{}
	locker := lock.NewInMemoryLock()
	release, ok, err := locker.TryAcquire(context.Background(), expiryLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	defer release()

	w := NewExpiryWorker(nil, fake, locker, ExpiryWorkerOptions{})
	_, err = w.RunExpiryNow(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrSweepInProgress)
	assert.Zero(t, fake.sweeps.Load())
}

func TestRunExpiryNow_Failure(t *testing.T) {
	fake := &fakeExpiry{err: errors.New("connection reset")}
	w := NewExpiryWorker(nil, fake, lock.NewInMemoryLock(), ExpiryWorkerOptions{})

	_, err := w.RunExpiryNow(context.Background())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.HTTPCode)
}

func TestRunRemindersNow(t *testing.T) {
	fake := &fakeExpiry{}
	w := NewExpiryWorker(nil, fake, lock.NewInMemoryLock(), ExpiryWorkerOptions{ReminderDays: 3})

	sent, err := w.RunRemindersNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 3, fake.lastDays)
}

func TestStart_RejectsBadSpec(t *testing.T) {
	w := NewExpiryWorker(nil, &fakeExpiry{}, lock.NewInMemoryLock(), ExpiryWorkerOptions{ExpirySpec: "not a spec"})
	assert.Error(t, w.Start(context.Background()))
}

func TestStart_StopsOnCancel(t *testing.T) {
	fake := &fakeExpiry{}
	w := NewExpiryWorker(nil, fake, lock.NewInMemoryLock(), ExpiryWorkerOptions{
		ExpirySpec:   "@every 1s",
		ReminderSpec: "@hourly",
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	assert.Eventually(t, func() bool { return fake.sweeps.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	cancel()
}
