package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./deploy/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Catalog); err != nil {
		return err
	}
	if err := v.Struct(cfg.Timeline); err != nil {
		return err
	}
	if err := v.Struct(cfg.Inventory); err != nil {
		return err
	}
	Config = cfg
	applyDefaults(&Config)
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16282
	}
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = "mysql"
	}
	if cfg.Timeline.BackwardJumpThresholdMinutes == 0 {
		cfg.Timeline.BackwardJumpThresholdMinutes = 720
	}
	if cfg.Inventory.HoldTTLSeconds == 0 {
		cfg.Inventory.HoldTTLSeconds = 600
	}
	if cfg.Inventory.SweepIntervalSeconds == 0 {
		cfg.Inventory.SweepIntervalSeconds = 30
	}
}
