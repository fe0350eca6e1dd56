package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr                   string `yaml:"addr"`
	LogLevel               string `yaml:"log_level"`
	LogJSON                bool   `yaml:"log_json"`
	// Limits fall back to defaults when omitted or 0; see applyDefaults.
	ThreadDailyLimit       int `yaml:"thread_daily_limit"`       // max threads per author per rolling 24h
	ExcerptLength          int `yaml:"excerpt_length"`           // runes kept in notification excerpts
	NotificationsPageLimit int `yaml:"notifications_page_limit"` // max notifications returned per request
}

type Private struct {
	JwtKey string        `yaml:"jwt_key"`
	JwtTTL time.Duration `yaml:"jwt_ttl"` // nanoseconds; omit to get the 7-day default
	Pg     Pg            `yaml:"pg"`
	Email  *Email        `yaml:"email"` // nil disables the email channel
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset fields. Zero counts as unset: none of these
// limits can be configured to 0, omitting a key and writing 0 are the
// same thing.
func (c *Config) applyDefaults() {
	if c.Public.Addr == "" {
		c.Public.Addr = ":8080"
	}
	if c.Public.ThreadDailyLimit == 0 {
		c.Public.ThreadDailyLimit = 5
	}
	if c.Public.ExcerptLength == 0 {
		c.Public.ExcerptLength = 120
	}
	if c.Public.NotificationsPageLimit == 0 {
		c.Public.NotificationsPageLimit = 50
	}
	if c.Private.JwtTTL == 0 {
		c.Private.JwtTTL = 7 * 24 * time.Hour
	}
}
