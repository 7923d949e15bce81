package repositories

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories/dbmodels"
)

type TransfersRepository struct{}

func (repo TransfersRepository) CreateTransfer(
	ctx context.Context,
	exec Executor,
	input models.TransferCreateInput,
) error {
	metadata, err := json.Marshal(input.Metadata)
	if err != nil {
		return errors.Wrap(err, "can't encode transfer metadata")
	}

	err = ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TRANSFERS).
			Columns(
				"id",
				"external_transfer_id",
				"authorization_id",
				"direction",
				"amount_cents",
				"status",
				"routed_to_shifi",
				"contract_id",
				"merchant_id",
				"description",
				"metadata",
				"cancellable",
			).
			Values(
				input.Id,
				input.ExternalTransferId,
				input.AuthorizationId,
				input.Direction,
				input.AmountCents,
				input.Status,
				input.RoutedToShifi,
				input.ContractId,
				input.MerchantId,
				input.Description,
				metadata,
				input.Cancellable,
			),
	)
	if IsUniqueViolationError(err) {
		return errors.Wrap(models.ErrTransferAlreadyExists, err.Error())
	}
	return err
}

func (repo TransfersRepository) GetTransferById(
	ctx context.Context,
	exec Executor,
	transferId string,
) (models.Transfer, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTransfersColumn...).
			From(dbmodels.TABLE_TRANSFERS).
			Where(squirrel.Eq{"id": transferId}),
		dbmodels.AdaptTransfer,
	)
}

func (repo TransfersRepository) GetTransferByExternalId(
	ctx context.Context,
	exec Executor,
	externalTransferId string,
) (*models.Transfer, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTransfersColumn...).
			From(dbmodels.TABLE_TRANSFERS).
			Where(squirrel.Eq{"external_transfer_id": externalTransferId}),
		dbmodels.AdaptTransfer,
	)
}

func (repo TransfersRepository) ListTransfers(
	ctx context.Context,
	exec Executor,
	filters models.ListTransfersFilters,
) ([]models.Transfer, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectTransfersColumn...).
		From(dbmodels.TABLE_TRANSFERS).
		OrderBy("created_at DESC")

	if filters.MerchantId.Valid {
		query = query.Where(squirrel.Eq{"merchant_id": filters.MerchantId.String})
	}
	if filters.ContractId.Valid {
		query = query.Where(squirrel.Eq{"contract_id": filters.ContractId.String})
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptTransfer)
}

// ListNonTerminalTransfers returns transfers still awaiting a terminal
// status, for the periodic reconciliation sweep. Rows without an external id
// cannot be reconciled and are excluded.
func (repo TransfersRepository) ListNonTerminalTransfers(
	ctx context.Context,
	exec Executor,
) ([]models.Transfer, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTransfersColumn...).
			From(dbmodels.TABLE_TRANSFERS).
			Where(squirrel.NotEq{"external_transfer_id": nil}).
			Where(squirrel.Eq{"status": []models.TransferStatus{
				models.TransferStatusPending,
				models.TransferStatusPosted,
			}}).
			OrderBy("created_at ASC"),
		dbmodels.AdaptTransfer,
	)
}

// UpdateTransferStatus writes the reconciled status and cancellable flag.
// Returns the number of rows changed: 0 means the row already carried the
// same values, or already reached a terminal status. The terminal guard lives
// in the WHERE clause so that two concurrent reconciliations cannot interleave
// a stale snapshot over a terminal row.
func (repo TransfersRepository) UpdateTransferStatus(
	ctx context.Context,
	exec Executor,
	transferId string,
	status models.TransferStatus,
	cancellable bool,
) (int64, error) {
	return ExecBuilderAffected(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_TRANSFERS).
			Set("status", status).
			Set("cancellable", cancellable).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": transferId}).
			Where(squirrel.Or{
				squirrel.NotEq{"status": status},
				squirrel.NotEq{"cancellable": cancellable},
			}).
			Where(squirrel.NotEq{"status": models.TerminalTransferStatuses}),
	)
}
