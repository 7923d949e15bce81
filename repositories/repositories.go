package repositories

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"

	"github.com/shifi/transfers-backend/infra"
)

type Repositories struct {
	ExecutorGetter         ExecutorGetter
	TransfersRepository    TransfersRepository
	OriginatorsRepository  OriginatorsRepository
	MerchantsRepository    MerchantsRepository
	SilaTransferRepository SilaTransferRepository
	TaskQueueRepository    TaskQueueRepository
}

type options struct {
	riverClient *river.Client[pgx.Tx]
	httpClient  *http.Client
}

type Option func(*options)

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func WithHttpClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func NewRepositories(
	pool *pgxpool.Pool,
	silaConfig infra.SilaConfig,
	opts ...Option,
) Repositories {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	repositories := Repositories{
		ExecutorGetter:         NewExecutorGetter(pool),
		TransfersRepository:    TransfersRepository{},
		OriginatorsRepository:  OriginatorsRepository{},
		MerchantsRepository:    MerchantsRepository{},
		SilaTransferRepository: NewSilaTransferRepository(silaConfig, o.httpClient),
	}
	if o.riverClient != nil {
		repositories.TaskQueueRepository = NewTaskQueueRepository(o.riverClient)
	}
	return repositories
}
