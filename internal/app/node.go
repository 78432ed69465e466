package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sasspipe/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/sasspipe/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/sasspipe/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/sasspipe/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/sasspipe/internal/adapters/sass"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sasspipe/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/sasspipe/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			sass.FactoryNodeID,
			watcher.FactoryNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildRecordStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[*fs.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	compilers, err := graft.Dep[sass.Factory](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, store, hasher, compilers, watchers), nil
}
