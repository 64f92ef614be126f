package utils

import (
	"github.com/Luismorlan/maag/utils/flag"
	Logger "github.com/Luismorlan/maag/utils/log"
	"github.com/sirupsen/logrus"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// StartTracer starts the Datadog tracer for the current service.
func StartTracer() {
	tracer.Start(
		tracer.WithService(*flag.ServiceName),
		tracer.WithEnv(DeploymentEnv()),
	)

	Logger.Log.WithFields(
		logrus.Fields{"env": DeploymentEnv()},
	).Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
