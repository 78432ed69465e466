package config

import "go.trai.ch/sasspipe/internal/core/domain"

// Pipelinefile represents the structure of the sasspipe.yaml configuration file.
type Pipelinefile struct {
	Version      string         `yaml:"version"`
	Root         string         `yaml:"root"`
	Output       string         `yaml:"output"`
	Options      domain.Options `yaml:"options"`
	Bundles      []BundleDTO    `yaml:"bundles"`
	CompileFiles []string       `yaml:"compileFiles"`
}

// BundleDTO represents a bundle definition in the configuration.
type BundleDTO struct {
	Route         string   `yaml:"route"`
	Files         []string `yaml:"files"`
	PhysicalFiles []string `yaml:"physicalFiles"`
}

// DefaultOutputDir is used when the configuration names no output directory.
const DefaultOutputDir = "dist"
