package config

import (
	"fmt"
	"strings"

	"github.com/maisonaurum/aurum/pkg/common"
)

// SysConfig holds system-wide settings.
type SysConfig struct {
	Appid    string `json:"appid"`
	Location string `json:"location"`
	Workdir  string `json:"workdir"`
	Debug    bool   `json:"debug"`
}

// WebConfig holds the HTTP server settings. Secret is the shared admin
// access code; the gate is intentionally a single static comparison.
type WebConfig struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secret string `json:"secret"`
}

// DBConfig holds the backing document database settings.
// Type may be postgres, sqlite or memory. Empty or placeholder values mean
// no backend is configured and the application runs in degraded mode.
type DBConfig struct {
	Type   string `json:"type"`
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Name   string `json:"name"`
	User   string `json:"user"`
	Passwd string `json:"passwd"`
	Debug  bool   `json:"debug"`
}

// MediaConfig holds the media upload service settings.
type MediaConfig struct {
	UploadURL string `json:"upload_url"`
	Cloud     string `json:"cloud"`
	Preset    string `json:"preset"`
	Timeout   int    `json:"timeout"` // seconds
}

// LogConfig holds logger settings.
type LogConfig struct {
	Mode       string `json:"mode"`
	FileEnable bool   `json:"file_enable"`
	Filename   string `json:"filename"`
}

type AppConfig struct {
	System   SysConfig   `json:"system"`
	Web      WebConfig   `json:"web"`
	Database DBConfig    `json:"database"`
	Media    MediaConfig `json:"media"`
	Logger   LogConfig   `json:"logger"`
}

// Configured reports whether the database settings point at a real backend.
// Placeholder values left over from a template must not crash the
// application; they switch it into degraded mode instead.
func (c DBConfig) Configured() bool {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case "memory", "sqlite":
		return true
	case "postgres", "postgresql":
		if c.Host == "" || c.Name == "" {
			return false
		}
		if strings.HasPrefix(c.Host, "YOUR_") || strings.HasPrefix(c.Name, "YOUR_") {
			return false
		}
		return true
	default:
		return false
	}
}

// DSN builds a postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Passwd, c.Name)
}

// LoadConfig builds the application configuration from environment
// variables, with development-friendly defaults.
func LoadConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    common.EnvString("AURUM_SYSTEM_APPID", "aurum"),
			Location: common.EnvString("AURUM_SYSTEM_LOCATION", "Africa/Nairobi"),
			Workdir:  common.EnvString("AURUM_SYSTEM_WORKDIR", "/var/aurum"),
			Debug:    common.EnvBool("AURUM_SYSTEM_DEBUG", true),
		},
		Web: WebConfig{
			Host:   common.EnvString("AURUM_WEB_HOST", "0.0.0.0"),
			Port:   common.EnvInt("AURUM_WEB_PORT", 1816),
			Secret: common.EnvString("AURUM_WEB_SECRET", "12345"),
		},
		Database: DBConfig{
			Type:   common.EnvString("AURUM_DB_TYPE", ""),
			Host:   common.EnvString("AURUM_DB_HOST", ""),
			Port:   common.EnvInt("AURUM_DB_PORT", 5432),
			Name:   common.EnvString("AURUM_DB_NAME", ""),
			User:   common.EnvString("AURUM_DB_USER", "aurum"),
			Passwd: common.EnvString("AURUM_DB_PASSWD", ""),
			Debug:  common.EnvBool("AURUM_DB_DEBUG", false),
		},
		Media: MediaConfig{
			UploadURL: common.EnvString("AURUM_MEDIA_UPLOAD_URL", "https://api.cloudinary.com/v1_1"),
			Cloud:     common.EnvString("AURUM_MEDIA_CLOUD", "ds2mbrzcn"),
			Preset:    common.EnvString("AURUM_MEDIA_PRESET", "qqk2urzm"),
			Timeout:   common.EnvInt("AURUM_MEDIA_TIMEOUT", 60),
		},
		Logger: LogConfig{
			Mode:       common.EnvString("AURUM_LOGGER_MODE", "development"),
			FileEnable: common.EnvBool("AURUM_LOGGER_FILE_ENABLE", false),
			Filename:   common.EnvString("AURUM_LOGGER_FILENAME", "/var/aurum/aurum.log"),
		},
	}
}
