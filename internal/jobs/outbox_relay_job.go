package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxSchedule relays every five seconds.
const DefaultOutboxSchedule = "*/5 * * * * *"

type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (commands.PublishOutboxResult, error)
}

type RelayRecorder interface {
	OutboxRelayed(published, failed int, took time.Duration)
}

// OutboxRelayJob ships queued outbox messages to the broker on a cron
// schedule. A run that is still going when the next tick fires makes that
// tick a no-op.
type OutboxRelayJob struct {
	handler  OutboxPublisher
	recorder RelayRecorder
	cmd      commands.PublishOutboxCommand
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

type OutboxRelayConfig struct {
	Schedule  string
	BatchSize int
	// Timeout bounds one run. Zero means 30 seconds.
	Timeout time.Duration
}

func NewOutboxRelayJob(
	handler OutboxPublisher,
	recorder RelayRecorder,
	cfg OutboxRelayConfig,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	if handler == nil {
		return nil, errors.New("outbox publisher is required")
	}
	cmd, err := commands.NewPublishOutboxCommand(cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultOutboxSchedule
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &OutboxRelayJob{
		handler:  handler,
		recorder: recorder,
		cmd:      cmd,
		schedule: cfg.Schedule,
		timeout:  cfg.Timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}, nil
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays one batch and reports it.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) (commands.PublishOutboxResult, error) {
	start := time.Now()
	res, err := j.handler.Handle(ctx, j.cmd)
	if j.recorder != nil {
		j.recorder.OutboxRelayed(res.Published, res.Failed, time.Since(start))
	}

	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return res, err
	}
	if res.Failed > 0 {
		j.logger.WarnContext(ctx, "Outbox messages not delivered", "published", res.Published, "failed", res.Failed)
	} else if res.Published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages delivered", "published", res.Published)
	}
	return res, nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
