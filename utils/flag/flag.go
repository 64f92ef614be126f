/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package.
	Call ParseFlags once in main before using any of them.
*/

package flag

import (
	"flag"
)

const (
	APIServer      = "api_server"
	WebhookServer  = "webhook_server"
	MigrationTool  = "migration"
	DefaultAppConf = "app_config/server_app_config.yaml"
)

var (
	IsDevelopment = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName   = flag.String("service", APIServer, "'api_server', 'webhook_server' or 'migration'")
	ByPassAuth    = flag.Bool("bypass_auth", false, "skip token verification on write routes, development only")
	ConfigPath    = flag.String("config", DefaultAppConf, "path to the yaml app config")
)

func ParseFlags() {
	if !flag.Parsed() {
		flag.Parse()
	}
}
