// Package config provides configuration management for demystify.
//
// Configuration is loaded from a YAML or TOML file with environment variable
// overrides, validated, and filled in with defaults. Files ending in .toml
// are read as TOML; both formats use the same key names.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("demystify.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("demystify.yaml")
//
//  3. From a TOML file:
//     cfg, err := config.LoadConfig("demystify.toml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention DEMYSTIFY_SECTION_FIELD:
//
//   - DEMYSTIFY_PARSER_MAX_TOKENS overrides parser.max_tokens
//   - DEMYSTIFY_BATCH_WORKERS overrides batch.workers
//   - DEMYSTIFY_STORAGE_PATH overrides storage.path
//   - DEMYSTIFY_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	parser:
//	  max_tokens: 256
//	  strict: false
//	batch:
//	  workers: 8
//	  fail_fast: false
//	storage:
//	  enabled: true
//	  path: "./demystify.db"
//	watch:
//	  debounce: "250ms"
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  metrics:
//	    enabled: true
//	    listen_address: "127.0.0.1:9090"
//
// # Singleton Pattern
//
//	if err := config.Initialize("demystify.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// For testing, prefer explicit Config instances built with Default or
// ApplyDefaults over the global singleton.
package config
