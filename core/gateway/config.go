package gateway

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Server struct {
		Host string `envconfig:"SERVER_HOST" default:"127.0.0.1"`
		Port int    `envconfig:"SERVER_PORT" default:"8000"`
	}
	Store struct {
		// Path of the leveldb metadata store. Empty means the manifests
		// live in memory only.
		Path string `envconfig:"STORE_PATH"`
	}
	DataNodes struct {
		Addrs []string `envconfig:"DATANODE_ADDRS" default:"http://127.0.0.1:9000"`
	}
}

func GetConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
