package main

import (
	"chicstation/config"
	"chicstation/di"
	"chicstation/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
