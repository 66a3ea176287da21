package main

import (
	"flag"
	"log"

	"github.com/Chirandip-dev07/ujjivana/internal/app"
	"github.com/Chirandip-dev07/ujjivana/internal/config"
	"github.com/Chirandip-dev07/ujjivana/pkg/logger"
)

func main() {
	provisionAdmin := flag.Bool("provision-admin", false, "create the bootstrap admin account if none exists, then start the server")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ProvisionAdmin = *provisionAdmin

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
