package workers

import (
	"context"
	"fmt"
	"time"

	"memberhub_backend/internal/config"
	"memberhub_backend/internal/lock"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/metrics"
	"memberhub_backend/internal/services"
	"memberhub_backend/pkg/apperrors"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	expiryLockKey   = "expire-memberships"
	reminderLockKey = "renewal-reminders"
)

// ExpiryWorker runs the expiry sweep and the renewal reminders on a cron
// schedule. Both jobs take a lock first so only one replica does the work.
type ExpiryWorker struct {
	db           *gorm.DB
	expiry       services.ExpiryService
	locker       lock.Locker
	cron         *cron.Cron
	expirySpec   string
	reminderSpec string
	reminderDays int
	lockTTL      time.Duration
}

type ExpiryWorkerOptions struct {
	ExpirySpec   string
	ReminderSpec string
	ReminderDays int
	LockTTL      time.Duration
}

func NewExpiryWorker(db *gorm.DB, expiry services.ExpiryService, locker lock.Locker, opts ExpiryWorkerOptions) *ExpiryWorker {
	if opts.ExpirySpec == "" {
		opts.ExpirySpec = "@daily"
	}
	if opts.ReminderDays <= 0 {
		opts.ReminderDays = services.DefaultRenewalWindowDays
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}
	return &ExpiryWorker{
		db:           db,
		expiry:       expiry,
		locker:       locker,
		cron:         cron.New(cron.WithLocation(time.UTC)),
		expirySpec:   opts.ExpirySpec,
		reminderSpec: opts.ReminderSpec,
		reminderDays: opts.ReminderDays,
		lockTTL:      opts.LockTTL,
	}
}

// NewExpiryWorkerFromConfig reads schedules from the scheduler section
func NewExpiryWorkerFromConfig(db *gorm.DB, expiry services.ExpiryService, locker lock.Locker, cfg *config.Config) *ExpiryWorker {
	return NewExpiryWorker(db, expiry, locker, ExpiryWorkerOptions{
		ExpirySpec:   cfg.Scheduler.ExpirySpec,
		ReminderSpec: cfg.Scheduler.ReminderSpec,
		ReminderDays: cfg.Scheduler.ReminderDays,
		LockTTL:      time.Duration(cfg.Scheduler.LockTTL) * time.Second,
	})
}

// Start registers the jobs and starts the scheduler. The scheduler stops
// when ctx is cancelled.
func (w *ExpiryWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.expirySpec, func() {
		// a failed run is simply retried on the next tick
		_, _ = w.RunExpiryNow(ctx)
	}); err != nil {
		return fmt.Errorf("schedule expiry sweep %q: %w", w.expirySpec, err)
	}

	if w.reminderSpec != "" {
		if _, err := w.cron.AddFunc(w.reminderSpec, func() {
			_, _ = w.RunRemindersNow(ctx)
		}); err != nil {
			return fmt.Errorf("schedule renewal reminders %q: %w", w.reminderSpec, err)
		}
	}

	w.cron.Start()
	logger.Info("expiry worker started", "expiry_spec", w.expirySpec, "reminder_spec", w.reminderSpec)

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return nil
}

// Stop waits for a running job to finish
func (w *ExpiryWorker) Stop() {
	<-w.cron.Stop().Done()
	logger.Info("expiry worker stopped")
}

// RunExpiryNow performs one sweep. It is what the cron tick calls and what
// the jobs endpoint triggers on demand.
func (w *ExpiryWorker) RunExpiryNow(ctx context.Context) (services.ExpiryResult, error) {
	release, ok, err := w.locker.TryAcquire(ctx, expiryLockKey, w.lockTTL)
	if err != nil {
		logger.WorkerLog("expiry", "acquire_lock", err)
		return services.ExpiryResult{}, apperrors.InternalError(err)
	}
	if !ok {
		logger.Info("expiry sweep skipped, lock held elsewhere")
		return services.ExpiryResult{}, apperrors.ErrSweepInProgress
	}
	defer release()

	started := time.Now()
	result, err := w.expiry.ExpireOverdue(ctx, w.db)
	metrics.RecordExpiryRun(result.Expired, time.Since(started), err == nil)

	logger.WorkerLog("expiry", "sweep", err, "expired", result.Expired, "failed", result.Failed)
	if err != nil {
		return result, apperrors.InternalError(err)
	}
	return result, nil
}

// RunRemindersNow raises renewal reminders for memberships expiring within
// the configured window.
func (w *ExpiryWorker) RunRemindersNow(ctx context.Context) (int, error) {
	release, ok, err := w.locker.TryAcquire(ctx, reminderLockKey, w.lockTTL)
	if err != nil {
		logger.WorkerLog("reminders", "acquire_lock", err)
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	defer release()

	sent, err := w.expiry.SendRenewalReminders(ctx, w.db, w.reminderDays)
	logger.WorkerLog("reminders", "send", err, "sent", sent, "days", w.reminderDays)
	return sent, err
}
