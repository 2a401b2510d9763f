package main

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/AmadorHeE/configsvc/internal/telemetry"
)

const (
	serviceName    = "configsvc"
	serviceVersion = "1.0.0"
)

// Config is read from CONFIGSVC_* variables. Empty endpoints disable the
// matching OTLP exporter.
type Config struct {
	Env             string  `envconfig:"ENV" default:"development"`
	Port            int     `default:"8080"`
	SampleRatio     float64 `split_words:"true" default:"0.1"`
	TracingEndpoint string  `split_words:"true"`
	MetricsEndpoint string  `split_words:"true"`
	LogsEndpoint    string  `split_words:"true"`
}

func LoadConfig() (Config, error) {
	var config Config
	if err := envconfig.Process(serviceName, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Telemetry() telemetry.Config {
	return telemetry.Config{
		ServiceName:     serviceName,
		ServiceVersion:  serviceVersion,
		Env:             c.Env,
		SampleRatio:     c.SampleRatio,
		TracingEndpoint: c.TracingEndpoint,
		MetricsEndpoint: c.MetricsEndpoint,
		LogsEndpoint:    c.LogsEndpoint,
	}
}
