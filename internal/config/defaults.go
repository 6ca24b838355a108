package config

import "time"

// Default values applied when no other configuration source sets a field.
// The memory backend keeps a bare `vault` binary runnable without any
// external store; the Mongo database name matches the one used by the
// existing deployments so stored data stays reachable.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			GeneratedPasswordLength: 10,
		},
		Storage: Storage{
			Backend: BackendMemory,
			Mongo: Mongo{
				Database: "password_manager_db",
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}
