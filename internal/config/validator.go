package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredDBEnvVars must be set explicitly outside dev when the postgres driver is used.
var RequiredDBEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks the env schema version and, for non-dev postgres
// deployments, that the database settings were not left to defaults.
func ValidateEnv(cfg *Config) error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion != "" && schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	if cfg.StoreDriver != StoreDriverPostgres || cfg.Environment == DefaultEnvironment {
		return nil
	}

	var missing []string
	for _, envVar := range RequiredDBEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports non-fatal issues
func ValidateEnvWithWarnings(cfg *Config) ([]string, error) {
	if err := ValidateEnv(cfg); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("ENV_SCHEMA_VERSION") == "" {
		warnings = append(warnings, fmt.Sprintf("ENV_SCHEMA_VERSION is not set (expected: %s)", ExpectedEnvSchemaVersion))
	}

	if cfg.StoreDriver == StoreDriverPostgres && (cfg.DBPassword == "postgres" || cfg.DBPassword == "change_this_secure_password") {
		warnings = append(warnings, "DB_PASSWORD appears to be a default or example value - please use a secure password")
	}

	if cfg.StoreDriver == StoreDriverMemory && cfg.Environment != DefaultEnvironment {
		warnings = append(warnings, "STORE_DRIVER=memory keeps all balances in process memory; state is lost on restart")
	}

	return warnings, nil
}
