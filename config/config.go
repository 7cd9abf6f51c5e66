package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
	Storage Storage `json:"storage" yaml:"storage" mapstructure:"storage"`
	Library Library `json:"library" yaml:"library" mapstructure:"library"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Storage configuration is for the sqlite guess cache
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath" validate:"required"`
}

// Library points at the media directory the scan command walks
type Library struct {
	Dir        string   `json:"dir" yaml:"dir" mapstructure:"dir"`
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads and validates a configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		if err := cu.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	if err := cu.Unmarshal(&c); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}
