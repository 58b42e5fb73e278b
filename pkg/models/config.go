package models

// Config holds service-wide settings read from taskroster.yaml via Viper.
type Config struct {
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
	ListenAddr   string `yaml:"listen_addr" mapstructure:"listen_addr"`
	EventLogPath string `yaml:"event_log_path" mapstructure:"event_log_path"`
}
