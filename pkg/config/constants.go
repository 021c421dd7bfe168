package config

// EnvPrefix is the envconfig prefix; variable names carry the full RAVETAG_
// prefix in their tags so this stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "RAVETAG_APP_ENV"
	EnvPort       = "RAVETAG_APP_PORT"
	EnvDBDSN      = "RAVETAG_DB_DSN"
	EnvDBHost     = "RAVETAG_DB_HOST"
	EnvDBUser     = "RAVETAG_DB_USER"
	EnvDBName     = "RAVETAG_DB_NAME"
	EnvRedisURL   = "RAVETAG_REDIS_URL"
	EnvAdminToken = "RAVETAG_ADMIN_TOKEN"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
