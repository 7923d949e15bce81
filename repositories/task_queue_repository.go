package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/pure_utils"
	"github.com/shifi/transfers-backend/utils"
)

const (
	nbRetriesReconcile = 6 // at 1sec*attempt^4, that's 90min for the 6th attempt
	priorityReconcile  = 2 // nb: higher number is lower priority (between 1 and 4)
)

type TaskQueueRepository interface {
	EnqueueReconcileTransferTask(
		ctx context.Context,
		tx Transaction,
		externalTransferId string,
	) error
	EnqueueReconcileTransferTaskMany(
		ctx context.Context,
		externalTransferIds []string,
	) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

func (r riverRepository) EnqueueReconcileTransferTask(
	ctx context.Context,
	tx Transaction,
	externalTransferId string,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.ReconcileTransferArgs{
		ExternalTransferId: externalTransferId,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesReconcile,
		Priority:    priorityReconcile,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued reconcile task",
		"external_transfer_id", externalTransferId, "job_id", res.Job.ID)
	return nil
}

func (r riverRepository) EnqueueReconcileTransferTaskMany(
	ctx context.Context,
	externalTransferIds []string,
) error {
	if len(externalTransferIds) == 0 {
		return nil
	}

	params := pure_utils.Map(externalTransferIds, func(externalTransferId string) river.InsertManyParams {
		return river.InsertManyParams{
			Args: models.ReconcileTransferArgs{
				ExternalTransferId: externalTransferId,
			},
			InsertOpts: &river.InsertOpts{
				MaxAttempts: nbRetriesReconcile,
				Priority:    priorityReconcile,
				UniqueOpts: river.UniqueOpts{
					ByArgs: true,
				},
			},
		}
	})

	res, err := r.client.InsertManyFast(ctx, params)
	if err != nil {
		return err
	}
	utils.LoggerFromContext(ctx).
		DebugContext(ctx, "Enqueued reconcile tasks from sweep", "count", res)
	return nil
}
