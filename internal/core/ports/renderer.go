package ports

import (
	"context"
	"time"
)

// Renderer presents build progress. It is driven by the span stream of a build.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once the bundles of a build are known.
	OnPlanEmit(bundles []string)

	// OnTaskStart is called when a bundle starts building.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a bundle build emits output.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a bundle build finishes. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
