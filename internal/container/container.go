package container

import (
	"fmt"
	"net/http"

	"go-lens-solver/internal/config"
	"go-lens-solver/internal/factory"
	"go-lens-solver/internal/logger"
	"go-lens-solver/internal/observer"
	"go-lens-solver/internal/repository"
	"go-lens-solver/internal/service"
	"go-lens-solver/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config       *config.Config
	lensRepo     repository.LensModelRepository
	solveService service.SolveService
	events       observer.Subject
	handler      http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	presets, err := config.LoadPresets(cfg.PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load solver presets: %w", err)
	}

	// Build dependency graph
	lensRepo := repository.NewLensModelRepository()
	componentFactory := factory.NewComponentFactory()

	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(observer.NewMetricsObserver())

	solveService := service.NewSolveService(
		lensRepo,
		componentFactory.SolverFactory,
		factory.SeederType(cfg.SeederType),
		presets,
		events,
		cfg.MaxBatchSources,
	)
	handler := transport.NewHandler(solveService, cfg)

	return &Container{
		config:       cfg,
		lensRepo:     lensRepo,
		solveService: solveService,
		events:       events,
		handler:      handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases the container's solver resources
func (c *Container) Close() error {
	return c.solveService.Close()
}
