package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "velure"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "VELURE_DB_DSN"
	EnvDBHost = "VELURE_DB_HOST"
	EnvDBUser = "VELURE_DB_USER"
	EnvDBName = "VELURE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
