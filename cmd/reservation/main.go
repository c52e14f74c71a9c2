package main

import (
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Astemirdum/room-reservation/reservation/app"
	"github.com/Astemirdum/room-reservation/reservation/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig()

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("reservation ", err)
	}
}
