package ports

import "go.trai.ch/sasspipe/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration starting at cwd and returns the resolved pipeline.
	Load(cwd string) (*domain.Pipeline, error)
}
