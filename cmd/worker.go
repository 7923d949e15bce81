package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/shifi/transfers-backend/infra"
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/usecases"
	"github.com/shifi/transfers-backend/usecases/worker_jobs"
	"github.com/shifi/transfers-backend/utils"
)

func RunTaskQueue() error {
	pgConfig := pgConfigFromEnv()
	silaConfig := silaConfigFromEnv()
	loggingFormat := utils.GetEnv("LOGGING_FORMAT", "text")
	settlementAccountRef := utils.GetEnv("SETTLEMENT_ACCOUNT_REF", "")
	probePort := utils.GetEnv("PROBE_PORT", "")

	logger := utils.NewLogger(loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		return err
	}

	// insert-only client for the repositories; the working client with its
	// queue config is created below once the workers exist
	insertClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		return err
	}

	repositories := repositories.NewRepositories(pool, silaConfig,
		repositories.WithRiverClient(insertClient),
	)

	uc := usecases.NewUsecases(repositories,
		usecases.WithSettlementAccountRef(settlementAccountRef),
	)

	workers := river.NewWorkers()
	river.AddWorker(workers, uc.NewReconcileTransferWorker())
	river.AddWorker(workers, uc.NewReconcileSweepWorker())

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		RescueStuckJobsAfter: 5 * time.Minute,
		PeriodicJobs: []*river.PeriodicJob{
			worker_jobs.NewReconcileSweepPeriodicJob(),
		},
		Workers: workers,
	})
	if err != nil {
		return err
	}

	if err := riverClient.Start(ctx); err != nil {
		return err
	}

	// non-blocking http server for container liveness probes
	if probePort != "" {
		go func() {
			http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			})
			if err := http.ListenAndServe(":"+probePort, nil); err != nil {
				logger.ErrorContext(ctx, "probe server stopped", "error", err)
			}
		}()
	}

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "River client stopped")
	return nil
}

// cleanStop waits for SIGINT/SIGTERM and tries a soft stop first, leaving
// running jobs a chance to finish. A second signal or the soft-stop timeout
// escalates to a hard stop that cancels the context of all active jobs.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop (cancel everything)")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop (cancel everything)")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; ignoring stop procedure and exiting unclean")
		return
	} else if err != nil {
		panic(err)
	}
	logger.InfoContext(ctx, "Hard stop succeeded")
}
