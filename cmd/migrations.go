package cmd

import (
	"context"

	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/utils"
)

func RunMigrations() error {
	ctx := context.Background()
	pgConfig := pgConfigFromEnv()
	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))

	return repositories.RunMigrations(ctx, pgConfig, logger)
}
