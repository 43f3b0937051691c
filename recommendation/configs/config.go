package configs

import (
	"time"

	"cinecircle/pkg/callgateway"
	"cinecircle/pkg/completion"
	"cinecircle/recommendation/internal/scorer"
)

type ServiceConfig struct {
	API              apiConfig              `yaml:"api"`
	ServiceDiscovery serviceDiscoveryConfig `yaml:"serviceDiscovery"`
	DatabaseConfig   DatabaseConfig         `yaml:"database"`
	Jaeger           JaegerConfig           `yaml:"jaeger"`
	Prometheus       PrometheusConfig       `yaml:"prometheus"`
	TLS              TLSConfig              `yaml:"tls"`
	Auth             AuthConfig             `yaml:"auth"`
	Completion       completion.Config      `yaml:"completion"`
	CallGateway      callgateway.Config     `yaml:"callGateway"`
	Scoring          ScoringConfig          `yaml:"scoring"`
	Dismissal        DismissalConfig        `yaml:"dismissal"`
}

type apiConfig struct {
	Port int `yaml:"port" validate:"required,min=1,max=65535"`
	// HTTPPort enables the HTTP API when positive.
	HTTPPort int `yaml:"httpPort" validate:"gte=0,max=65535"`
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

// AuthConfig holds the token signing secret. It is normally supplied
// through the AUTH_SECRET environment variable.
type AuthConfig struct {
	Secret string `yaml:"secret"`
}

type ScoringConfig struct {
	scorer.Config `yaml:",inline"`
	// CandidateLimit bounds the catalog items scored per request.
	CandidateLimit int `yaml:"candidateLimit" validate:"gte=0"`
	// Explain asks the model for reasoning. Local reasoning is used otherwise.
	Explain bool `yaml:"explain"`
}

type DismissalConfig struct {
	UndoWindow time.Duration `yaml:"undoWindow" validate:"gte=0"`
}
