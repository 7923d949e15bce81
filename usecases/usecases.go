package usecases

import (
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/usecases/executor_factory"
	"github.com/shifi/transfers-backend/usecases/worker_jobs"
)

type Usecases struct {
	Repositories         repositories.Repositories
	settlementAccountRef string
}

type options struct {
	settlementAccountRef string
}

type Option func(*options)

// WithSettlementAccountRef configures the platform settlement account that
// merchant payouts draw on. Payouts fail with a configuration error when it
// is not set.
func WithSettlementAccountRef(accountRef string) Option {
	return func(o *options) {
		o.settlementAccountRef = accountRef
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return Usecases{
		Repositories:         repositories,
		settlementAccountRef: o.settlementAccountRef,
	}
}

func (usecases Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases Usecases) NewAuthorizationGateUsecase() AuthorizationGateUsecase {
	return AuthorizationGateUsecase{
		silaTransferRepository: usecases.Repositories.SilaTransferRepository,
	}
}

func (usecases Usecases) NewReconciliationUsecase() ReconciliationUsecase {
	return ReconciliationUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		transfersRepository:    usecases.Repositories.TransfersRepository,
		merchantsRepository:    usecases.Repositories.MerchantsRepository,
		silaTransferRepository: usecases.Repositories.SilaTransferRepository,
		taskQueueRepository:    usecases.Repositories.TaskQueueRepository,
	}
}

func (usecases Usecases) NewTransferUsecase() TransferUsecase {
	return TransferUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		transactionFactory:     usecases.NewTransactionFactory(),
		transfersRepository:    usecases.Repositories.TransfersRepository,
		merchantsRepository:    usecases.Repositories.MerchantsRepository,
		silaTransferRepository: usecases.Repositories.SilaTransferRepository,
		taskQueueRepository:    usecases.Repositories.TaskQueueRepository,
		authorizationGate:      usecases.NewAuthorizationGateUsecase(),
		reconciler:             usecases.NewReconciliationUsecase(),
		settlementAccountRef:   usecases.settlementAccountRef,
	}
}

func (usecases Usecases) NewRecurringTransferUsecase() RecurringTransferUsecase {
	return RecurringTransferUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		merchantsRepository:    usecases.Repositories.MerchantsRepository,
		silaTransferRepository: usecases.Repositories.SilaTransferRepository,
		authorizationGate:      usecases.NewAuthorizationGateUsecase(),
	}
}

func (usecases Usecases) NewReconcileTransferWorker() *worker_jobs.ReconcileTransferWorker {
	return worker_jobs.NewReconcileTransferWorker(usecases.NewReconciliationUsecase())
}

func (usecases Usecases) NewReconcileSweepWorker() *worker_jobs.ReconcileSweepWorker {
	return worker_jobs.NewReconcileSweepWorker(usecases.NewReconciliationUsecase())
}

func (usecases Usecases) NewOriginatorUsecase() OriginatorUsecase {
	return OriginatorUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		originatorsRepository:  usecases.Repositories.OriginatorsRepository,
		merchantsRepository:    usecases.Repositories.MerchantsRepository,
		silaTransferRepository: usecases.Repositories.SilaTransferRepository,
	}
}
