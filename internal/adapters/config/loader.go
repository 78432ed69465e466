// Package config provides the configuration loader for sasspipe.
package config

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/sasspipe/internal/adapters/fs"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	resolver *fs.Resolver
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger, resolver *fs.Resolver) *Loader {
	return &Loader{Logger: logger, resolver: resolver}
}

// Load resolves the pipeline configuration. If cwd names a file it is loaded directly;
// otherwise sasspipe.yaml is searched from cwd upwards.
func (l *Loader) Load(cwd string) (*domain.Pipeline, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	file := Pipelinefile{Options: domain.DefaultOptions()}
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	return l.build(configPath, &file)
}

func findConfiguration(cwd string) (string, error) {
	info, err := os.Stat(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "path", cwd)
	}
	if !info.IsDir() {
		return cwd, nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func (l *Loader) build(configPath string, file *Pipelinefile) (*domain.Pipeline, error) {
	if err := file.Options.Validate(); err != nil {
		return nil, invalid(err, "field", "options")
	}

	root := resolveRoot(configPath, file.Root)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, zerr.With(domain.ErrConfigInvalid, "root", root)
	}

	output := file.Output
	if output == "" {
		output = DefaultOutputDir
	}

	p := &domain.Pipeline{
		Root:    root,
		Output:  resolveRoot(configPath, output),
		Options: file.Options,
	}

	fsys := os.DirFS(root)
	routes := make(map[string]struct{})

	for i := range file.Bundles {
		bundle, err := l.bundle(fsys, &file.Bundles[i])
		if err != nil {
			return nil, err
		}
		if _, dup := routes[bundle.Route]; dup {
			return nil, invalid(domain.ErrDuplicateBundle, "route", bundle.Route)
		}
		routes[bundle.Route] = struct{}{}
		p.Bundles = append(p.Bundles, bundle)
	}

	compiled, err := l.compileFiles(fsys, file.CompileFiles)
	if err != nil {
		return nil, err
	}
	for _, bundle := range compiled {
		if _, dup := routes[bundle.Route]; dup {
			l.Logger.Warn(fmt.Sprintf("%s is already produced by a bundle, skipping %s", bundle.Route, bundle.SourceFiles[0]))
			continue
		}
		routes[bundle.Route] = struct{}{}
		p.Bundles = append(p.Bundles, bundle)
	}

	if len(p.Bundles) == 0 {
		l.Logger.Warn(fmt.Sprintf("%s declares no bundles", configPath))
	}
	return p, nil
}

func (l *Loader) bundle(fsys iofs.FS, dto *BundleDTO) (domain.Bundle, error) {
	route := dto.Route
	if route == "" || !strings.HasPrefix(route, "/") {
		return domain.Bundle{}, zerr.With(domain.ErrConfigInvalid, "route", route)
	}
	route = domain.MakeAbsolute("/", route).String()

	if len(dto.Files) == 0 {
		return domain.Bundle{}, invalid(domain.ErrEmptyBundle, "route", route)
	}

	files, err := l.resolver.ResolveInputs(fsys, dto.Files)
	if err != nil {
		return domain.Bundle{}, invalid(err, "route", route)
	}
	if len(files) == 0 {
		return domain.Bundle{}, invalid(domain.ErrEmptyBundle, "route", route)
	}

	bundle := domain.NewBundle(route, files...)
	if len(dto.PhysicalFiles) > 0 {
		physical, err := l.resolver.ResolveInputs(fsys, dto.PhysicalFiles)
		if err != nil {
			return domain.Bundle{}, invalid(err, "route", route)
		}
		bundle.PhysicalFiles = physical
	}
	return bundle, nil
}

// compileFiles turns every non-partial stylesheet matched by patterns into a bundle of its own,
// served next to its source with a ".css" extension.
func (l *Loader) compileFiles(fsys iofs.FS, patterns []string) ([]domain.Bundle, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	matches, err := l.resolver.ResolveInputs(fsys, patterns)
	if err != nil {
		return nil, invalid(err, "field", "compileFiles")
	}

	var bundles []domain.Bundle
	for _, m := range matches {
		if !fs.IsCompilable(m) {
			continue
		}
		ext := path.Ext(m)
		route := domain.MakeAbsolute("/", strings.TrimSuffix(m, ext)+".css").String()
		bundles = append(bundles, domain.NewBundle(route, m))
	}
	return bundles, nil
}

func invalid(err error, key string, value any) error {
	return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), key, value)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
