// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sasspipe/internal/adapters/cas"
	_ "go.trai.ch/sasspipe/internal/adapters/config"
	_ "go.trai.ch/sasspipe/internal/adapters/fs"
	_ "go.trai.ch/sasspipe/internal/adapters/logger"
	_ "go.trai.ch/sasspipe/internal/adapters/sass"
	_ "go.trai.ch/sasspipe/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/sasspipe/internal/app"
)
