package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ajithkumar-developer/Inventory/src/production/INV.IngestorService/client"
	"github.com/Ajithkumar-developer/Inventory/src/production/INV.IngestorService/ingestor"
	container "github.com/Ajithkumar-developer/Inventory/src/production/INV.Container"
)

func main() {
	ctr, err := container.NewIngestorContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}

	logger := ctr.GetLogger()
	logger.Info("Starting Scale Ingestor Service")

	config := ctr.GetConfig()

	apiClient := client.NewAPIClient(config.ApiServiceURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ing := ingestor.New(config, apiClient, logger)
	if err := ing.Start(ctx); err != nil {
		logger.FatalWithError(err, "Failed to start scale ingestor")
	}

	logger.Info("Scale ingestor running... press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")
	cancel()
	ing.Stop()
}
