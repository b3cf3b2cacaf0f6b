package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hifi-israel/sikacare/internal/buildinfo"
	"github.com/hifi-israel/sikacare/internal/client/cli"
	"github.com/hifi-israel/sikacare/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
