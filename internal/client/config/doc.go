// Package config loads runtime configuration for the SikaCare client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Properties file (-e/-env, or ./.env when present) plus SIKACARE_*
//     process environment variables, read with godotenv.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   backend base URL
//	-k string   anon API key
//	-g string   gRPC health address
//	-s string   session database file
//	-i int      online status check interval (seconds)
//	-p string   google sign-in provider
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "backend_url": "http://127.0.0.1:8080",
//	  "api_key": "anon",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "real_reset": false
//	}
package config
