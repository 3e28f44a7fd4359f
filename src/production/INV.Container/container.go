package container

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	config "github.com/Ajithkumar-developer/Inventory/src/production/INV.Config"
	database "github.com/Ajithkumar-developer/Inventory/src/production/INV.Database"
	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
	repository "github.com/Ajithkumar-developer/Inventory/src/production/INV.Repository"
)

// Container manages dependencies and their lifecycle
type Container struct {
	config *config.Config
	logger *logger.Logger
	db     *gorm.DB

	mu           sync.Mutex
	cleanupFuncs []func() error
}

// IngestorContainer manages dependencies for the scale Ingestor service
type IngestorContainer struct {
	config *config.IngestorConfig
	logger *logger.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(&cfg.Logging)

	return &Container{
		config: cfg,
		logger: log,
	}, nil
}

// NewIngestorContainer creates a new container for the Ingestor service
func NewIngestorContainer() (*IngestorContainer, error) {
	cfg, err := config.LoadIngestorConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load ingestor configuration: %w", err)
	}

	log := logger.NewLogger(&cfg.Logging)

	return &IngestorContainer{
		config: cfg,
		logger: log,
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetConfig returns the ingestor configuration
func (c *IngestorContainer) GetConfig() *config.IngestorConfig {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetLogger returns the logger
func (c *IngestorContainer) GetLogger() *logger.Logger {
	return c.logger
}

// GetDatabase returns the database connection, connecting lazily
func (c *Container) GetDatabase() (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		db, err := database.Connect(c.config)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
		c.cleanupFuncs = append(c.cleanupFuncs, func() error {
			return database.Close(db)
		})
	}

	return c.db, nil
}

// GetGateway returns a persistence gateway over the database
func (c *Container) GetGateway() (*repository.Gateway, error) {
	db, err := c.GetDatabase()
	if err != nil {
		return nil, err
	}
	return repository.NewGateway(db, c.config.Database.QueryTimeout), nil
}

// InitializeDatabase connects and migrates the schema
func (c *Container) InitializeDatabase(ctx context.Context) error {
	db, err := c.GetDatabase()
	if err != nil {
		return err
	}

	if err := database.Migrate(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	c.logger.Info("Database initialized successfully")
	return nil
}

// AddCleanupFunc adds a cleanup function
func (c *Container) AddCleanupFunc(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// Shutdown gracefully shuts down the container and its dependencies
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	c.mu.Lock()
	defer c.mu.Unlock()

	// Cleanup functions run in reverse registration order
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			c.logger.ErrorWithError(err, "Error during cleanup")
		}
	}
	c.cleanupFuncs = nil

	c.logger.Info("Container shutdown complete")
	return nil
}
