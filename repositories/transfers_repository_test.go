package repositories_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/repositories/dbmodels"
	"github.com/shifi/transfers-backend/usecases/executor_factory"
)

func escapeSql(str string) string {
	str = strings.ReplaceAll(str, "(", "\\(")
	str = strings.ReplaceAll(str, ")", "\\)")
	return strings.ReplaceAll(str, "$", "\\$")
}

const selectTransfersSql = `SELECT id, external_transfer_id, authorization_id, direction, ` +
	`amount_cents, status, routed_to_shifi, contract_id, merchant_id, description, metadata, ` +
	`cancellable, created_at, updated_at FROM transfers`

func transferRow(rows *pgxmock.Rows, id string, status string) *pgxmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "sila-xfer-1", "auth-1", "debit", int64(125_00), status,
		true, "contract-1", "merchant-1", "Invoice 1042", []byte(`{"order":"1042"}`),
		true, now, now)
}

func TestTransfersRepositoryGetTransferById(t *testing.T) {
	exec := executor_factory.NewExecutorFactoryStub()
	repo := repositories.TransfersRepository{}

	exec.Mock.ExpectQuery(escapeSql(selectTransfersSql + ` WHERE id = $1`)).
		WithArgs("transfer-1").
		WillReturnRows(transferRow(pgxmock.NewRows(dbmodels.SelectTransfersColumn), "transfer-1", "pending"))

	transfer, err := repo.GetTransferById(context.Background(), exec.NewExecutor(), "transfer-1")

	assert.NoError(t, err)
	assert.Equal(t, "transfer-1", transfer.Id)
	assert.Equal(t, models.TransferStatusPending, transfer.Status)
	assert.Equal(t, models.TransferDirectionDebit, transfer.Direction)
	assert.Equal(t, map[string]string{"order": "1042"}, transfer.Metadata)
	assert.NoError(t, exec.Mock.ExpectationsWereMet())
}

func TestTransfersRepositoryGetTransferByIdNotFound(t *testing.T) {
	exec := executor_factory.NewExecutorFactoryStub()
	repo := repositories.TransfersRepository{}

	exec.Mock.ExpectQuery(escapeSql(selectTransfersSql + ` WHERE id = $1`)).
		WithArgs("transfer-9").
		WillReturnRows(pgxmock.NewRows(dbmodels.SelectTransfersColumn))

	_, err := repo.GetTransferById(context.Background(), exec.NewExecutor(), "transfer-9")

	assert.ErrorIs(t, err, models.NotFoundError)
}

func TestTransfersRepositoryGetTransferByExternalIdMissing(t *testing.T) {
	exec := executor_factory.NewExecutorFactoryStub()
	repo := repositories.TransfersRepository{}

	exec.Mock.ExpectQuery(escapeSql(selectTransfersSql + ` WHERE external_transfer_id = $1`)).
		WithArgs("sila-xfer-9").
		WillReturnRows(pgxmock.NewRows(dbmodels.SelectTransfersColumn))

	transfer, err := repo.GetTransferByExternalId(context.Background(), exec.NewExecutor(), "sila-xfer-9")

	assert.NoError(t, err)
	assert.Nil(t, transfer)
}

func TestTransfersRepositoryCreateTransfer(t *testing.T) {
	exec := executor_factory.NewExecutorFactoryStub()
	repo := repositories.TransfersRepository{}
	input := models.TransferCreateInput{
		Id:                 "transfer-1",
		ExternalTransferId: "sila-xfer-1",
		AuthorizationId:    "auth-1",
		Direction:          models.TransferDirectionDebit,
		AmountCents:        125_00,
		Status:             models.TransferStatusPending,
		RoutedToShifi:      true,
		Description:        "Invoice 1042",
		Cancellable:        true,
	}

	anyInsertArgs := make([]any, 12)
	for i := range anyInsertArgs {
		anyInsertArgs[i] = pgxmock.AnyArg()
	}

	t.Run("nominal", func(t *testing.T) {
		exec.Mock.ExpectExec(escapeSql(`INSERT INTO transfers`)).
			WithArgs(anyInsertArgs...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.CreateTransfer(context.Background(), exec.NewExecutor(), input)

		assert.NoError(t, err)
	})

	t.Run("duplicate authorization id", func(t *testing.T) {
		exec.Mock.ExpectExec(escapeSql(`INSERT INTO transfers`)).
			WithArgs(anyInsertArgs...).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := repo.CreateTransfer(context.Background(), exec.NewExecutor(), input)

		assert.ErrorIs(t, err, models.ErrTransferAlreadyExists)
	})
}

func TestTransfersRepositoryUpdateTransferStatus(t *testing.T) {
	exec := executor_factory.NewExecutorFactoryStub()
	repo := repositories.TransfersRepository{}
	updateSql := escapeSql(`UPDATE transfers SET status = $1, cancellable = $2, ` +
		`updated_at = now() WHERE id = $3 AND (status <> $4 OR cancellable <> $5) ` +
		`AND status NOT IN ($6,$7,$8,$9)`)
	updateArgs := []any{
		models.TransferStatusPosted, true, "transfer-1", models.TransferStatusPosted, true,
		models.TransferStatusSettled, models.TransferStatusReturned,
		models.TransferStatusCancelled, models.TransferStatusFailed,
	}

	t.Run("row changed", func(t *testing.T) {
		exec.Mock.ExpectExec(updateSql).
			WithArgs(updateArgs...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		affected, err := repo.UpdateTransferStatus(context.Background(), exec.NewExecutor(),
			"transfer-1", models.TransferStatusPosted, true)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("row already up to date", func(t *testing.T) {
		exec.Mock.ExpectExec(updateSql).
			WithArgs(updateArgs...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		affected, err := repo.UpdateTransferStatus(context.Background(), exec.NewExecutor(),
			"transfer-1", models.TransferStatusPosted, true)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})

	// A stale snapshot racing a concurrent reconcile must not rewrite a row
	// that reached a terminal status in between: the guard is in the WHERE
	// clause, not in the caller's earlier in-memory read.
	t.Run("terminal row is not overwritten", func(t *testing.T) {
		exec.Mock.ExpectExec(updateSql).
			WithArgs(updateArgs...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		affected, err := repo.UpdateTransferStatus(context.Background(), exec.NewExecutor(),
			"transfer-1", models.TransferStatusPosted, true)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestTransfersRepositoryListNonTerminalTransfers(t *testing.T) {
	exec := executor_factory.NewExecutorFactoryStub()
	repo := repositories.TransfersRepository{}

	exec.Mock.ExpectQuery(escapeSql(selectTransfersSql+
		` WHERE external_transfer_id IS NOT NULL AND status IN ($1,$2) ORDER BY created_at ASC`)).
		WithArgs(models.TransferStatusPending, models.TransferStatusPosted).
		WillReturnRows(transferRow(
			transferRow(pgxmock.NewRows(dbmodels.SelectTransfersColumn), "transfer-1", "pending"),
			"transfer-2", "posted"))

	transfers, err := repo.ListNonTerminalTransfers(context.Background(), exec.NewExecutor())

	assert.NoError(t, err)
	assert.Len(t, transfers, 2)
	assert.Equal(t, models.TransferStatusPosted, transfers[1].Status)
}
