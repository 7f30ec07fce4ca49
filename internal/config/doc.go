// Package config handles configuration loading for bloglist.
//
// # Overview
//
// Configuration is loaded from a YAML file, or a TOML file when the path ends
// in .toml, with environment variable expansion. Defaults are applied before
// validation.
//
// # Configuration File
//
// Default locations (in order, resolved by cmd/bloglist):
//
//  1. Path from BLOGLIST_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/bloglist/config.yaml
//  3. ~/.config/bloglist/config.yaml
//
// BLOGLIST_DB_PATH, when set, overrides database.path.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  token_secret: "${ACCESS_TOKEN_SECRET}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "127.0.0.1:3003"
//
//	database:
//	  path: "./data/bloglist.db"   # ":memory:" for a throwaway database
//
//	auth:
//	  token_secret: "${ACCESS_TOKEN_SECRET}"  # required
//	  bcrypt_cost: 10                         # 4..31
//
//	cors:
//	  allowed_origins: ["*"]
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
//	metrics:
//	  enabled: true
//	  path: "/metrics"
//
//	testing:
//	  enable_reset: false  # mounts POST /testing/reset
//
// The same keys are used in TOML:
//
//	[auth]
//	token_secret = "${ACCESS_TOKEN_SECRET}"
//
// # Validation
//
// Load() rejects:
//
//   - an empty auth.token_secret
//   - an empty database.path
//   - a bcrypt cost outside 4..31
//   - unknown logging level or format
//   - a metrics path without a leading slash when metrics are enabled
package config
