package log

import (
	"os"
	"time"

	"github.com/Luismorlan/maag/utils/dotenv"
	"github.com/Luismorlan/maag/utils/flag"
	ddhook "github.com/bin3377/logrus-datadog-hook"
	"github.com/sirupsen/logrus"
)

const (
	datadogUSHost    = "http-intake.logs.datadoghq.com"
	apiKeyEnv        = "DD_API_KEY"
	syncFrequencySec = 30
	syncRetry        = 3
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

// InitLogger (re)builds the global entry. Call it again from main after
// flags are parsed so the service field is correct.
func InitLogger() {
	logger = logrus.New()

	isProd := dotenv.Env() == dotenv.ProdEnv
	if isProd && os.Getenv(apiKeyEnv) != "" {
		hook := ddhook.NewHook(
			datadogUSHost,
			os.Getenv(apiKeyEnv),
			syncFrequencySec*time.Second,
			syncRetry,
			logrus.InfoLevel,
			&logrus.JSONFormatter{},
			ddhook.Options{},
		)
		logger.Hooks.Add(hook)
	}

	// Also send log to stderr, without json formatter for better readability
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": *flag.ServiceName, "is_development": !isProd},
	)
}
