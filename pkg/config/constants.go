package config

// EnvPrefix scopes every envconfig lookup.
const EnvPrefix = "MOTOCLUBS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MOTOCLUBS_DB_DSN"
	EnvDBHost = "MOTOCLUBS_DB_HOST"
	EnvDBUser = "MOTOCLUBS_DB_USER"
	EnvDBName = "MOTOCLUBS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
