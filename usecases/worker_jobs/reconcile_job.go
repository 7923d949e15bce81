package worker_jobs

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/utils"
)

const (
	RECONCILE_SWEEP_INTERVAL = 15 * time.Minute
	RECONCILE_TIMEOUT        = 2 * time.Minute
)

// NewReconcileSweepPeriodicJob schedules the sweep that re-enqueues a
// reconcile task for every transfer still awaiting a terminal status,
// catching transfers whose per-transfer task chain was exhausted.
func NewReconcileSweepPeriodicJob() *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(RECONCILE_SWEEP_INTERVAL),
		func() (river.JobArgs, *river.InsertOpts) {
			return models.ReconcileSweepArgs{},
				&river.InsertOpts{
					Priority: 4,
					UniqueOpts: river.UniqueOpts{
						ByPeriod: RECONCILE_SWEEP_INTERVAL,
					},
				}
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	)
}

type transferReconciler interface {
	ReconcileByExternalId(ctx context.Context, externalTransferId string) error
	ReconcilePending(ctx context.Context) error
}

type ReconcileTransferWorker struct {
	river.WorkerDefaults[models.ReconcileTransferArgs]

	reconciliationUsecase transferReconciler
}

func NewReconcileTransferWorker(reconciliationUsecase transferReconciler) *ReconcileTransferWorker {
	return &ReconcileTransferWorker{
		reconciliationUsecase: reconciliationUsecase,
	}
}

func (w *ReconcileTransferWorker) Timeout(job *river.Job[models.ReconcileTransferArgs]) time.Duration {
	return RECONCILE_TIMEOUT
}

func (w *ReconcileTransferWorker) Work(ctx context.Context, job *river.Job[models.ReconcileTransferArgs]) error {
	logger := utils.LoggerFromContext(ctx)

	err := w.reconciliationUsecase.ReconcileByExternalId(ctx, job.Args.ExternalTransferId)
	if err != nil {
		logger.WarnContext(ctx, "Reconcile task failed, will be retried",
			"external_transfer_id", job.Args.ExternalTransferId,
			"attempt", job.Attempt,
			"error", err.Error())
	}
	return err
}

type ReconcileSweepWorker struct {
	river.WorkerDefaults[models.ReconcileSweepArgs]

	reconciliationUsecase transferReconciler
}

func NewReconcileSweepWorker(reconciliationUsecase transferReconciler) *ReconcileSweepWorker {
	return &ReconcileSweepWorker{
		reconciliationUsecase: reconciliationUsecase,
	}
}

func (w *ReconcileSweepWorker) Work(ctx context.Context, job *river.Job[models.ReconcileSweepArgs]) error {
	return w.reconciliationUsecase.ReconcilePending(ctx)
}
