// Package config defines the declarative server configuration: connector
// selection (plain HTTP, TLS, protocol toggles), transport limits, TLS
// material paths, connection pool sizing and lifecycle flags.
//
// A Config can be built three ways: the Default constructor, a struct
// literal, or Load which reads environment variables (with .env support)
// using the caarlos0/env tags on each field.
//
//	cfg := config.Default()
//	cfg.Port = 8080
//	cfg.SSL = true
//	cfg.CertFile = "cert.pem"
//	cfg.KeyFile = "key.pem"
//
// Validation enforces two invariants: at least one connector must be
// enabled, and ClientAuth must be one of none, want or need. The server
// validates before any connector binds, so a bad Config never produces a
// partially started server.
package config
