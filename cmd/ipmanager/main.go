package main

import (
	"fmt"
	"os"

	"ipmanager/config"
	"ipmanager/internal/logs"
	"ipmanager/server"

	"github.com/spf13/pflag"
)

func main() {
	cfgPath := pflag.StringP("config", "c", os.Getenv("IPMANAGER_CONFIG"), "path to config file (yaml|json|toml)")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var app server.App
	if err := app.Initialize(cfg); err != nil {
		logs.Logger.WithError(err).Fatal("initialize")
	}
	if err := app.Run(); err != nil {
		logs.Logger.WithError(err).Fatal("run")
	}
}
