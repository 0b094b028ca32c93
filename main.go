package main

import (
	"flag"
	"fmt"
	"net/http"

	"carmarket/global"
	"carmarket/initialize"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to yaml config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}

	addr := fmt.Sprintf("%s:%d", app.Cfg.HTTP.Host, app.Cfg.HTTP.Port)
	global.Logger.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, app.Router); err != nil {
		global.Logger.Fatal().Err(err).Msg("http server")
	}
}
