package cmd

import (
	"github.com/shifi/transfers-backend/infra"
	"github.com/shifi/transfers-backend/utils"
)

func pgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           utils.GetEnv("PG_DATABASE", "transfers"),
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}

func silaConfigFromEnv() infra.SilaConfig {
	return infra.SilaConfig{
		Environment:       infra.SilaEnvironment(utils.GetEnv("SILA_ENVIRONMENT", string(infra.SilaSandbox))),
		SandboxBaseUrl:    utils.GetEnv("SILA_SANDBOX_BASE_URL", "https://sandbox.silamoney.com"),
		ProductionBaseUrl: utils.GetEnv("SILA_PRODUCTION_BASE_URL", "https://api.silamoney.com"),
		AppId:             utils.GetRequiredEnv[string]("SILA_APP_ID"),
		AppKey:            utils.GetRequiredEnv[string]("SILA_APP_KEY"),
	}
}
