package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	DatabaseSchema  string `envconfig:"DATABASE_SCHEMA" default:"public"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Shared-secret gate
	SitePassword    string `envconfig:"SITE_PASSWORD"`
	CookieName      string `envconfig:"COOKIE_NAME" default:"eomy_auth"`
	CookieMaxAgeSec int    `envconfig:"COOKIE_MAX_AGE_SEC" default:"2592000"` // 30 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Dataset artifacts
	DatasetBucket string `envconfig:"DATASET_BUCKET"`
	DatasetPrefix string `envconfig:"DATASET_PREFIX" default:"datasets"`
}
