// Package events carries content write notifications from the api handlers
// to background modules over an in-process event bus.
package events

import (
	"context"
	"sync"
	"time"

	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Engine manages shared resources and execution lifecycle of each module. It
// maintains a shared event bus
type Engine struct {
	// A list of modules that will be run in this Engine. Module's lifetime is
	// bound to Engine's lifetime. Each Module will be ran in a separate routine.
	Modules []Module

	// Root this engine is running on
	ctx context.Context

	// Cancel function for root context, used for graceful shutdown
	cancel context.CancelFunc

	// Delay before a failed module is restarted.
	RestartDelay time.Duration

	// The EventBus this engine managed. A golang channel implementation is
	// enough while api and modules share a process.
	EventBus *gochannel.GoChannel
}

// Create a new Engine given the provided modules and event bus. The engine
// stops when ctx is cancelled or Shutdown is called.
func NewEngine(ctx context.Context, ms []Module, e *gochannel.GoChannel, restartDelay time.Duration) *Engine {
	ctx, cancel := context.WithCancel(ctx)
	return &Engine{
		Modules:      ms,
		ctx:          ctx,
		cancel:       cancel,
		RestartDelay: restartDelay,
		EventBus:     e,
	}
}

// Execute all Engine modules and wait untils all modules to finish execution.
func (e *Engine) Run() {
	var wg sync.WaitGroup

	for idx := range e.Modules {
		wg.Add(1)
		go func(m Module) {
			defer wg.Done()
			Logger.Log.Infof("start engine module %s", m.Name())
			RunModuleWithGracefulRestart(e.ctx, m, e.RestartDelay)
			Logger.Log.Infof("module %s finished execution", m.Name())
		}(e.Modules[idx])
	}

	// Block until all goroutine finished execution.
	wg.Wait()
}

func (e *Engine) Shutdown() {
	Logger.Log.Infoln("starting graceful shutdown of event modules")
	e.cancel()

	var wg sync.WaitGroup
	for idx := range e.Modules {
		wg.Add(1)
		go func(m Module) {
			defer wg.Done()
			m.Shutdown()
			Logger.Log.Infof("module %s shut down", m.Name())
		}(e.Modules[idx])
	}

	// Block until all goroutine finished execution.
	wg.Wait()
}
