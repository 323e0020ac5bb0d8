package jobs

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleOrderReportJob periodically reports in-progress orders that have been
// open longer than the configured threshold, so dispatch can chase them.
type StaleOrderReportJob struct {
	handler   queries.GetStaleOrdersQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderReportJob creates a job reporting orders in progress longer
// than threshold. Runs every 15 minutes.
func NewStaleOrderReportJob(
	handler queries.GetStaleOrdersQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleOrderReportJob {
	return &StaleOrderReportJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_order_report_job"),
	}
}

// Start begins the report job on its 15-minute schedule.
func (j *StaleOrderReportJob) Start() error {
	_, err := j.cron.AddFunc("0 */15 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Stale order report job started (running every 15 minutes)",
		"threshold", j.threshold.String(),
	)
	return nil
}

// Stop stops the report job.
func (j *StaleOrderReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order report job stopped")
}

func (j *StaleOrderReportJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetStaleOrdersQuery(time.Now().UTC().Add(-j.threshold))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order report job failed to build query", "error", err)
		return
	}

	staleOrders, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order report job failed", "error", err)
		return
	}

	if len(staleOrders) == 0 {
		return
	}

	j.logger.WarnContext(ctx, "Found overdue in-progress orders", "count", len(staleOrders))
	for _, order := range staleOrders {
		j.logger.WarnContext(ctx, "Order overdue",
			"orderID", order.ID.String(),
			"assigneeID", order.AssigneeID.String(),
			"assignee", order.AssigneeName,
			"customer", order.CustomerName,
			"openFor", time.Since(order.CreatedAt).Round(time.Minute).String(),
		)
	}
}
