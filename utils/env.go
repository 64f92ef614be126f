package utils

import "github.com/Luismorlan/maag/utils/dotenv"

func IsProdEnv() bool {
	return dotenv.Env() == dotenv.ProdEnv
}

// DeploymentEnv is the env tag reported to Datadog.
func DeploymentEnv() string {
	if IsProdEnv() {
		return "production"
	}
	return "development"
}
