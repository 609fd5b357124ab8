package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all server configuration.
type Config struct {
	Host             string
	Port             string
	OpsPort          string
	SnapshotPath     string
	SnapshotInterval time.Duration
	MaxLineBytes     int
	AdminUsername    string
	AdminPassHash    string
	AdminName        string
}

// Load returns the server configuration with defaults applied. Values come
// from viper, so .env files and environment variables bound in main both
// feed it.
func Load() *Config {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "4545")
	viper.SetDefault("ops.port", "8080")
	viper.SetDefault("snapshot.path", "marketplace_db.json")
	viper.SetDefault("snapshot.interval", time.Minute*5)
	viper.SetDefault("server.max_line_bytes", 4*1024*1024)
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password_hash", "")
	viper.SetDefault("admin.name", "Administrator")

	return &Config{
		Host:             viper.GetString("server.host"),
		Port:             viper.GetString("server.port"),
		OpsPort:          viper.GetString("ops.port"),
		SnapshotPath:     viper.GetString("snapshot.path"),
		SnapshotInterval: viper.GetDuration("snapshot.interval"),
		MaxLineBytes:     viper.GetInt("server.max_line_bytes"),
		AdminUsername:    viper.GetString("admin.username"),
		AdminPassHash:    viper.GetString("admin.password_hash"),
		AdminName:        viper.GetString("admin.name"),
	}
}

// ListenAddr is the TCP protocol listen address.
func (c *Config) ListenAddr() string {
	return c.Host + ":" + c.Port
}

// OpsAddr is the operational HTTP listen address.
func (c *Config) OpsAddr() string {
	return c.Host + ":" + c.OpsPort
}
