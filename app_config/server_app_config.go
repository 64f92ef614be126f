package app_config

import (
	"io/ioutil"

	"github.com/Luismorlan/maag/normalizer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort        = 8080
	DefaultFrontendUrl = "http://localhost:5173"
	DefaultMediaPrefix = "uploads/"
)

// This is the config for the api and webhook servers. Secrets do not belong
// here, they are read from the environment.
type ServerAppConfig struct {
	// Port the http server listens on.
	PORT int `yaml:"PORT"`
	// Origins allowed by CORS. Empty means the frontend url only.
	ALLOWED_ORIGINS []string `yaml:"ALLOWED_ORIGINS"`
	// Base url of the site, used for checkout and portal redirects.
	FRONTEND_URL string `yaml:"FRONTEND_URL"`
	// S3 bucket and region for uploaded media.
	MEDIA_BUCKET string `yaml:"MEDIA_BUCKET"`
	MEDIA_REGION string `yaml:"MEDIA_REGION"`
	// Key prefix inside the bucket.
	MEDIA_KEY_PREFIX string `yaml:"MEDIA_KEY_PREFIX"`
	// Public url prefix of the bucket, e.g. a CDN domain. Defaults to the
	// virtual hosted S3 url.
	MEDIA_PUBLIC_URL string `yaml:"MEDIA_PUBLIC_URL"`
	// Incoming webhook for editorial notifications. Empty disables them.
	SLACK_WEBHOOK_URL string `yaml:"SLACK_WEBHOOK_URL"`
	// Datadog agent statsd address. Empty disables metrics.
	STATSD_ADDR string `yaml:"STATSD_ADDR"`
	// Tag options per category key. Legacy documents stored the title, the
	// value is persisted instead.
	CATEGORY_TAGS normalizer.TagCatalog `yaml:"CATEGORY_TAGS"`
	// Seconds a failed event module waits before restart.
	MODULE_RESTART_DELAY_SECOND int64 `yaml:"MODULE_RESTART_DELAY_SECOND"`
}

func ParseServerAppConfig(path string) (ServerAppConfig, error) {
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return ServerAppConfig{}, errors.Wrap(err, "fail to read app config")
	}
	return UnmarshalServerAppConfig(yamlFile)
}

func UnmarshalServerAppConfig(data []byte) (ServerAppConfig, error) {
	c := ServerAppConfig{}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return ServerAppConfig{}, errors.Wrap(err, "fail to unmarshal app config")
	}
	c.applyDefaults()
	return c, nil
}

func (c *ServerAppConfig) applyDefaults() {
	if c.PORT == 0 {
		c.PORT = DefaultPort
	}
	if c.FRONTEND_URL == "" {
		c.FRONTEND_URL = DefaultFrontendUrl
	}
	if len(c.ALLOWED_ORIGINS) == 0 {
		c.ALLOWED_ORIGINS = []string{c.FRONTEND_URL}
	}
	if c.MEDIA_KEY_PREFIX == "" {
		c.MEDIA_KEY_PREFIX = DefaultMediaPrefix
	}
	if c.MEDIA_PUBLIC_URL == "" && c.MEDIA_BUCKET != "" {
		c.MEDIA_PUBLIC_URL = "https://" + c.MEDIA_BUCKET + ".s3." + c.MEDIA_REGION + ".amazonaws.com"
	}
	if c.MODULE_RESTART_DELAY_SECOND == 0 {
		c.MODULE_RESTART_DELAY_SECOND = 5
	}
}
