package events

import (
	"context"
	"time"

	Logger "github.com/Luismorlan/maag/utils/log"
)

// RunModuleWithGracefulRestart runs module until it returns without error or
// ctx is done, waiting delay between failed runs.
func RunModuleWithGracefulRestart(ctx context.Context, module Module, delay time.Duration) {
	for {
		err := module.RunModule(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}
		Logger.Log.WithError(err).Errorf(
			"module %s exited with error, retry in %s", module.Name(), delay)

		// Wait for a small amount of time and restart.
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

type Module interface {
	// RunModule contains the customized logic of the module. It takes in a
	// context object by which its lifecycle is managed. Return error if
	// encountered any error during execution.
	RunModule(ctx context.Context) error

	// Return name of the Module. Uniquely identifies the module instance. Note
	// that if there are multiple instances of the same module, each instance
	// should have a unique name instead of using the same name.
	Name() string

	// Release whatever the module holds, called once after the engine context
	// is cancelled.
	Shutdown()
}
