// Package config provides the settings of the astroncheck tool itself.
//
// These are not the Astron cluster configurations being validated; they
// control how validation runs: the reserved channel band, the file size
// limit, logging, metrics and watch mode.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("astroncheck.yaml")
//
//  2. From a YAML file (or the defaults, for an empty path) with environment
//     variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("astroncheck.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ASTRONCHECK_SECTION_FIELD.
// For example:
//
//   - ASTRONCHECK_LOGGING_LEVEL overrides logging.level
//   - ASTRONCHECK_VALIDATION_RESERVED_CHANNELS_MAX overrides validation.reserved_channels.max
//   - ASTRONCHECK_WATCH_EXTENSIONS overrides watch.extensions (comma separated)
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
//	validation:
//	  reserved_channels:
//	    min: 1
//	    max: 999
//	  max_file_size: 1048576
//
//	logging:
//	  level: "info"
//	  format: "text"
//
//	metrics:
//	  namespace: "astron"
//	  address: "127.0.0.1:9102"
//
//	watch:
//	  debounce: "250ms"
//	  schedule: "*/5 * * * *"
package config
