package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// MenuCatalogSize is the number of entries in the built-in menu
// catalog. Requested menu item counts below it are extended up to it,
// never truncated.
const MenuCatalogSize = 18

const MinMenuItems = 8

type MongoConfig struct {
	URI      string `mapstructure:"mongo_uri"`
	Database string `mapstructure:"mongo_database"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p PostgresConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	Seed       int64     `mapstructure:"seed"`
	Orders     int       `mapstructure:"orders"`
	Customers  int       `mapstructure:"customers"`
	MenuItems  int       `mapstructure:"menu_items"`
	StaffUsers int       `mapstructure:"staff"`
	AnchorDate time.Time `mapstructure:"anchor_date"`

	OutputPath   string `mapstructure:"output_path"`
	OutputFolder string `mapstructure:"output_folder"`
	ShowProgress bool   `mapstructure:"show_progress"`

	MongoEnabled bool        `mapstructure:"insert"`
	Mongo        MongoConfig `mapstructure:",squash"`

	PostgresEnabled bool           `mapstructure:"postgres"`
	Postgres        PostgresConfig `mapstructure:"postgres_conn"`

	ParquetEnabled bool `mapstructure:"parquet"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	KafkaTopicPrefix string `mapstructure:"kafka_topic_prefix"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

// ConfigError reports an invalid or degenerate generation parameter.
// Validation happens before any output is produced.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (cfg *Config) Validate() error {
	if cfg.Orders < 1 {
		return &ConfigError{Field: "orders", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.Orders)}
	}
	if cfg.Customers < 1 {
		return &ConfigError{Field: "customers", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.Customers)}
	}
	if cfg.MenuItems < MinMenuItems {
		return &ConfigError{Field: "menu_items", Reason: fmt.Sprintf("must be at least %d, got %d", MinMenuItems, cfg.MenuItems)}
	}
	if cfg.StaffUsers < 1 {
		return &ConfigError{Field: "staff", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.StaffUsers)}
	}
	if cfg.AnchorDate.IsZero() {
		return &ConfigError{Field: "anchor_date", Reason: "must be set"}
	}
	return nil
}

// EffectiveMenuItems applies the "extend if needed, never shrink below
// catalog" policy: the generated collection always holds at least the
// full built-in catalog.
func (cfg *Config) EffectiveMenuItems() int {
	if cfg.MenuItems < MenuCatalogSize {
		return MenuCatalogSize
	}
	return cfg.MenuItems
}

// LoadConfig initializes and reads the configuration using Viper. The
// config file is optional; flags and environment variables are layered
// on top of it.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
		// default config is best-effort
		_ = viper.ReadInConfig()
	}

	viper.AutomaticEnv()

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
