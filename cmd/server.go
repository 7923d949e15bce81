package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/shifi/transfers-backend/api"
	"github.com/shifi/transfers-backend/infra"
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/usecases"
	"github.com/shifi/transfers-backend/utils"
)

func RunServer() error {
	apiConfig := api.Configuration{
		Env:            utils.GetEnv("ENV", "development"),
		AppName:        "transfers-backend",
		Port:           utils.GetRequiredEnv[string]("PORT"),
		ApiKey:         utils.GetRequiredEnv[string]("API_KEY"),
		DefaultTimeout: time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 10)) * time.Second,
	}
	pgConfig := pgConfigFromEnv()
	silaConfig := silaConfigFromEnv()
	loggingFormat := utils.GetEnv("LOGGING_FORMAT", "text")
	settlementAccountRef := utils.GetEnv("SETTLEMENT_ACCOUNT_REF", "")

	logger := utils.NewLogger(loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		return err
	}

	// insert-only client: jobs are worked by the worker process
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		return err
	}

	repositories := repositories.NewRepositories(pool, silaConfig,
		repositories.WithRiverClient(riverClient),
	)

	uc := usecases.NewUsecases(repositories,
		usecases.WithSettlementAccountRef(settlementAccountRef),
	)

	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "Error while serving the app", "error", err)
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "Error while shutting down the server")
	}
	return nil
}
