package configs

import "cinecircle/rating/pkg/model"

type ServiceConfig struct {
	API              apiConfig              `yaml:"api"`
	ServiceDiscovery serviceDiscoveryConfig `yaml:"serviceDiscovery"`
	MessengerConfig  MessengerConfig        `yaml:"messenger"`
	DatabaseConfig   DatabaseConfig         `yaml:"database"`
	Jaeger           JaegerConfig           `yaml:"jaeger"`
	Prometheus       PrometheusConfig       `yaml:"prometheus"`
	TLS              TLSConfig              `yaml:"tls"`
	Auth             AuthConfig             `yaml:"auth"`
	// Dimensions are the optional rating dimensions and their weights in
	// the derived overall score.
	Dimensions model.Dimensions `yaml:"dimensions" validate:"dive"`
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

type MessengerConfig struct {
	Kafka kafkaConfig `yaml:"kafka"`
}

type kafkaConfig struct {
	// Enabled turns on rating event ingestion.
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address" default:"localhost"`
	Port    int    `yaml:"port" default:"9092"`
	GroupID string `yaml:"groupId" validate:"required_if=Enabled true"`
	Topic   string `yaml:"topic" validate:"required_if=Enabled true"`
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
