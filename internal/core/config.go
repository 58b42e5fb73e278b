package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tobyward/taskroster/pkg/models"
)

// ConfigurationManager loads service configuration from taskroster.yaml,
// with TASKROSTER_* environment variables taking precedence.
type ConfigurationManager interface {
	Load() (*models.Config, error)
}

// viperConfigManager implements ConfigurationManager using Viper.
type viperConfigManager struct {
	// basePath is the directory where taskroster.yaml resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultConfig returns a Config populated with sensible defaults.
func defaultConfig() *models.Config {
	return &models.Config{
		DatabasePath: "taskroster.db",
		ListenAddr:   ":8080",
		EventLogPath: ".taskroster_events.jsonl",
	}
}

// Load reads taskroster.yaml from the base path. If the file does not
// exist, defaults are returned; environment variables override either way.
func (cm *viperConfigManager) Load() (*models.Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("taskroster")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("TASKROSTER")
	v.AutomaticEnv()

	v.SetDefault("database_path", cfg.DatabasePath)
	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("event_log_path", cfg.EventLogPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file found; defaults plus environment apply.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
