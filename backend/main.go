package main

import (
	"flag"
	"os"

	"territorios/backend/global"
	"territorios/backend/initialize"
	"territorios/backend/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Error().Err(err).Msg("build failed")
		os.Exit(1)
	}

	global.Logger.Info().
		Str("host", app.Cfg.Server.Host).
		Int("port", app.Cfg.Server.Port).
		Str("db", app.Cfg.DB.Driver).
		Msg("territorios backend listening")

	if err := server.StartHTTPServer(app.Cfg.Server.Host, app.Cfg.Server.Port, app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("http server stopped")
		os.Exit(1)
	}
}
