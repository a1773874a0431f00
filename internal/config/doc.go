// Package config handles configuration loading for the newspulse client.
//
// # Overview
//
// Configuration is loaded from a YAML or TOML file with environment variable
// expansion. Every value has a default, so running without a file works
// against a backend on 127.0.0.1:5000 with the offline identity provider.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from the --config flag
//  2. Path from NEWSPULSE_CONFIG environment variable
//  3. $XDG_CONFIG_HOME/newspulse/config.yaml
//  4. ~/.config/newspulse/config.yaml
//
// A path ending in .toml is parsed as TOML; anything else as YAML.
//
// # Environment Variable Expansion
//
//	identity:
//	  api_key: "${FIREBASE_API_KEY}"
//
// # Configuration Sections
//
//	backend:
//	  base_url: "http://127.0.0.1:5000"   # serves /chatbot and /dashboard-data
//	  page_url: "http://127.0.0.1:5000/"  # sent as "url" with chat queries
//
//	identity:
//	  provider: "local"                   # local or firebase
//	  api_key: "${FIREBASE_API_KEY}"      # firebase only
//	  project_id: "login-form"            # firebase only
//	  jwt_secret: "${NEWSPULSE_SECRET}"   # local only, optional
//	  token_ttl: "24h"
//
//	session:
//	  path: "~/.local/share/newspulse/client.db"
//
//	navigation:
//	  app_root: "http://127.0.0.1:5000"
//	  login_page: "http://127.0.0.1:5500/templates/login.html"
//	  redirect_delay: "1500ms"
//
//	notifications:
//	  hide_after: "4s"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//	  file: ""        # log destination while the TUI runs
//
// # Validation
//
// Load validates the backend URL scheme, the provider name and its required
// fields, the session path, the log format, and every duration string.
package config
