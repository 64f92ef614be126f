package utils

import (
	"github.com/Luismorlan/maag/utils/flag"
	"github.com/pkg/errors"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

// StartProfiler starts the Datadog continuous profiler. Only used in
// production, the agent is not available locally.
func StartProfiler() error {
	err := profiler.Start(
		profiler.WithService(*flag.ServiceName),
		profiler.WithEnv(DeploymentEnv()),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
		),
	)
	return errors.Wrap(err, "fail to start profiler")
}

// Stop profiler, OK to be closed multiple times
func CloseProfiler() {
	profiler.Stop()
}
