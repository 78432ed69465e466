package sass

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sasspipe/internal/adapters/logger"
	"go.trai.ch/sasspipe/internal/core/ports"
)

// FactoryNodeID is the unique identifier for the compiler factory Graft node.
const FactoryNodeID graft.ID = "adapter.sass.factory"

// Factory creates a compiler bound to one pipeline root.
type Factory func(files ports.FileProvider, resolver ports.ImportResolver) ports.Compiler

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(files ports.FileProvider, resolver ports.ImportResolver) ports.Compiler {
				return NewCompiler(files, resolver, log)
			}, nil
		},
	})
}
