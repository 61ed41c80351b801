package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (commands.RelayResult, error)
}

// OutboxRelayJob drains the outbox to the broker on a fixed interval.
// A pass that is still running when the next tick fires is not overlapped.
type OutboxRelayJob struct {
	handler   outboxRelayer
	interval  time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewOutboxRelayJob creates a relay job that claims up to batchSize messages
// every interval.
func NewOutboxRelayJob(
	handler outboxRelayer,
	interval time.Duration,
	batchSize int,
	logger *zap.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		interval:  interval,
		batchSize: batchSize,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With(zap.String("component", "outbox_relay_job")),
	}
}

func (j *OutboxRelayJob) Name() string {
	return "outbox_relay"
}

// Start schedules the job with an "@every" spec.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.ctx, j.cancel = context.WithCancel(context.Background())
	ctx := j.ctx
	j.mu.Unlock()

	if _, err = j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.RunOnce(ctx, cmd)
	}); err != nil {
		j.cancel()
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started",
		zap.Duration("interval", j.interval),
		zap.Int("batch_size", j.batchSize),
	)
	return nil
}

// RunOnce performs a single relay pass and records its outcome.
func (j *OutboxRelayJob) RunOnce(ctx context.Context, cmd commands.RelayOutboxCommand) {
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("relay_outbox").Inc()
		j.logger.Error("outbox relay pass failed", zap.Error(err))
		return
	}

	metrics.OutboxPublishedTotal.Add(float64(result.Published))
	metrics.OutboxFailuresTotal.Add(float64(result.Failed))

	if result.Cause != nil {
		j.logger.Warn("outbox batch not delivered",
			zap.Int("messages", result.Failed),
			zap.Error(result.Cause),
		)
		return
	}
	if result.Published > 0 {
		j.logger.Debug("outbox batch delivered", zap.Int("messages", result.Published))
	}
}

// Stop waits for a running pass to finish, then cancels the job context.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()

	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
	}
	j.mu.Unlock()

	j.logger.Info("outbox relay job stopped")
}
