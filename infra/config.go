package infra

import (
	"fmt"
)

const DEFAULT_MAX_CONNECTIONS = 20

type PgConfig struct {
	ConnectionString    string
	Database            string
	DbConnectWithSocket bool
	Hostname            string
	Password            string
	Port                string
	User                string
	MaxPoolConnections  int
	SslMode             string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	connectionString := fmt.Sprintf("host=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.User, config.Password, config.Database, config.SslMode)
	if !config.DbConnectWithSocket {
		connectionString = fmt.Sprintf("%s port=%s", connectionString, config.Port)
	}
	return connectionString
}

type SilaEnvironment string

const (
	SilaSandbox    SilaEnvironment = "sandbox"
	SilaProduction SilaEnvironment = "production"
)

// SilaConfig holds the platform-wide credentials and environment for the ACH
// provider. Merchant-issued credentials, when present, override AppId/AppKey
// per call; in that case the environment is inferred from the merchant's
// access token rather than from this config.
type SilaConfig struct {
	Environment       SilaEnvironment
	SandboxBaseUrl    string
	ProductionBaseUrl string
	AppId             string
	AppKey            string
}

func (c SilaConfig) BaseUrl(sandbox bool) string {
	if sandbox {
		return c.SandboxBaseUrl
	}
	return c.ProductionBaseUrl
}

func (c SilaConfig) SandboxByDefault() bool {
	return c.Environment != SilaProduction
}
