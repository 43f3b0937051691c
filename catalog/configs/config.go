package configs

import (
	"time"

	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/completion"
)

type ServiceConfig struct {
	API              apiConfig              `yaml:"api"`
	ServiceDiscovery serviceDiscoveryConfig `yaml:"serviceDiscovery"`
	DatabaseConfig   DatabaseConfig         `yaml:"database"`
	Jaeger           JaegerConfig           `yaml:"jaeger"`
	Prometheus       PrometheusConfig       `yaml:"prometheus"`
	TLS              TLSConfig              `yaml:"tls"`
	Completion       completion.Config      `yaml:"completion"`
	CallGateway      callgateway.Config     `yaml:"callGateway"`
	Enrichment       EnrichmentConfig       `yaml:"enrichment"`
	Processor        ProcessorConfig        `yaml:"processor"`
}

type apiConfig struct {
	Port int `yaml:"port" validate:"required,min=1,max=65535"`
}

type serviceDiscoveryConfig struct {
	Consul consulConfig `yaml:"consul"`
}
type consulConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	// Driver is either mysql or memory.
	Driver string      `yaml:"driver" validate:"oneof=mysql memory"`
	Mysql  MysqlConfig `yaml:"mysql"`
}

type MysqlConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" default:"3306"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"db_name"`
}

type JaegerConfig struct {
	URL string `yaml:"url"`
}

type PrometheusConfig struct {
	MetricsPort int `yaml:"metricsPort" validate:"min=1,max=65535"`
}

type TLSConfig struct {
	CertFile string `yaml:"certFile"`
	KeyFile  string `yaml:"keyFile"`
}

// EnrichmentConfig defines batch sizes and pacing for the enrichment pipelines.
type EnrichmentConfig struct {
	MoodBatchSize     int           `yaml:"moodBatchSize" validate:"gte=0,lte=15"`
	AdvisoryBatchSize int           `yaml:"advisoryBatchSize" validate:"gte=0,lte=15"`
	InterBatchDelay   time.Duration `yaml:"interBatchDelay" validate:"gte=0"`
}

// ProcessorConfig defines the periodic enrichment processor.
type ProcessorConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval" validate:"gte=0"`
	Limit    int           `yaml:"limit" validate:"gte=0"`
}
