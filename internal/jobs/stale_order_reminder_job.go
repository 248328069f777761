package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/notifications"

	"github.com/robfig/cron/v3"
)

const reminderDeliveryTimeout = 5 * time.Second

// StaleOrderReminderJob periodically looks for orders that have been waiting
// in "created" status for longer than maxAge and notifies connected admins,
// so unclaimed orders do not go unnoticed.
type StaleOrderReminderJob struct {
	handler  queries.GetStaleCreatedOrdersQueryHandler
	registry *notifications.Registry
	maxAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleOrderReminderJob creates a job reminding admins about unclaimed
// orders older than maxAge. Runs once a minute.
func NewStaleOrderReminderJob(
	handler queries.GetStaleCreatedOrdersQueryHandler,
	registry *notifications.Registry,
	maxAge time.Duration,
	logger *slog.Logger,
) *StaleOrderReminderJob {
	return &StaleOrderReminderJob{
		handler:  handler,
		registry: registry,
		maxAge:   maxAge,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_order_reminder_job"),
	}
}

// Start begins the reminder job to run once a minute.
func (j *StaleOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order reminder job started (running every minute)",
		"max_age", j.maxAge.String())
	return nil
}

// Stop stops the reminder job.
func (j *StaleOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order reminder job stopped")
}

func (j *StaleOrderReminderJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetStaleCreatedOrdersQuery(time.Now().Add(-j.maxAge))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order reminder job failed", "error", err)
		return
	}

	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order reminder job failed", "error", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	admins := make([]*notifications.Subscriber, 0)
	for _, sub := range j.registry.Snapshot() {
		if sub.Role().IsAdmin() {
			admins = append(admins, sub)
		}
	}

	if len(admins) == 0 {
		return
	}

	for _, orderInfo := range stale {
		msg := notifications.NewUnclaimedOrderMessage(
			orderInfo.ID.String(),
			orderInfo.ClientID.String(),
			orderInfo.CreatedAt,
		)

		for _, admin := range admins {
			go func(sub *notifications.Subscriber) {
				if sendErr := sub.Send(msg, reminderDeliveryTimeout); sendErr != nil {
					j.logger.WarnContext(ctx, "Stale order reminder delivery failed",
						"subscriber", sub.ID().String(),
						"order", msg.Payload.OrderID,
						"error", sendErr,
					)
				}
			}(admin)
		}
	}
}
