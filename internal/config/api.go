package config

import "errors"

type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *APIConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("missing api host")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.New("api port must be between 1 and 65535")
	}
	return nil
}
