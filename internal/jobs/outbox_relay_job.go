package jobs

import (
	"context"
	"time"

	"bidding/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const relayRunTimeout = 30 * time.Second

// OutboxRelayer is satisfied by commands.RelayOutboxCommandHandler.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob periodically drains the outbox. Overlapping runs are
// skipped rather than queued.
type OutboxRelayJob struct {
	relay     OutboxRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewOutboxRelayJob(relay OutboxRelayer, schedule string, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "outbox_relay_job"))

	return &OutboxRelayJob{
		relay:     relay,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

// Start schedules the job. It fails on an invalid schedule or batch size.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.Run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs a single relay pass.
func (j *OutboxRelayJob) Run(cmd commands.RelayOutboxCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), relayRunTimeout)
	defer cancel()

	relayed, err := j.relay.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("outbox relay failed", zap.Error(err))
		return
	}

	if relayed > 0 {
		j.logger.Debug("outbox messages relayed", zap.Int("count", relayed))
	}
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}
