package config

import "time"

// Watch definition watch_service YAML structure
type Watch struct {
	Port string `mapstructure:"port"`

	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	MongoSQL   DatabaseConfig `mapstructure:"mongo"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Kafka      KafkaConfig    `mapstructure:"kafka"`
	Rabbit     DatabaseConfig `mapstructure:"rabbit"`
	MinIO      MinIOConfig    `mapstructure:"minio"`

	Session SessionConfig `mapstructure:"session"`
}

// SessionConfig definition watch session tuning
type SessionConfig struct {
	// 檢舉可反悔的秒數，逾時自動 commit
	ReportGraceSeconds int `mapstructure:"report_grace_seconds"`
	// 觀看進度回報的固定間隔秒數
	ProgressCadenceSeconds int `mapstructure:"progress_cadence_seconds"`
	// 播放位置節流間隔秒數
	PositionThrottleSeconds int `mapstructure:"position_throttle_seconds"`
}

// ReportGrace report grace window as duration
func (s SessionConfig) ReportGrace() time.Duration {
	return time.Duration(s.ReportGraceSeconds) * time.Second
}

// ProgressCadence progress ping cadence as duration
func (s SessionConfig) ProgressCadence() time.Duration {
	return time.Duration(s.ProgressCadenceSeconds) * time.Second
}

// PositionThrottle position update throttle as duration
func (s SessionConfig) PositionThrottle() time.Duration {
	return time.Duration(s.PositionThrottleSeconds) * time.Second
}

// ServiceConfig definition service port & name
type ServiceConfig struct {
	Port string `mapstructure:"service_port"`
	Name string `mapstructure:"service_name"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	RedisDB int `mapstructure:"redis_db"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}
