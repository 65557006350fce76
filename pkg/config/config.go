package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"catalog-table"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode        bool   `envconfig:"LOCAL_MODE" default:"true"` // run on seed data without AWS
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:""`  // empty disables the transaction log sink
	KafkaTopic       string `envconfig:"KAFKA_TOPIC" default:"transaction-records"`
	TLSEnabled       bool   `envconfig:"TLS_ENABLED" default:"false"`
	SpireSocketPath  string `envconfig:"SPIRE_SOCKET_PATH" default:"unix:///run/spire/sockets/agent.sock"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
