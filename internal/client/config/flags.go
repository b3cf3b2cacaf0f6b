package config

import (
	"flag"
	"os"
	"time"

	"github.com/hifi-israel/sikacare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-u string   backend base URL
//	-k string   anon API key
//	-g string   gRPC health address
//	-s string   session database file
//	-i int      online check interval in seconds
//	-p string   google sign-in provider (browser|unsupported)
//	-l string   log level
//
// Only these flags are parsed; everything else in os.Args is filtered out
// with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k", "-g", "-s", "-i", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "u", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "anon API key")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "address and port of the gRPC health endpoint")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "session database file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.GoogleProvider, "p", cfg.GoogleProvider, "google sign-in provider: browser or unsupported")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
