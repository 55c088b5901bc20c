package config

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port          string        `mapstructure:"port"`
		Env           string        `mapstructure:"env"`
		SettleTimeout time.Duration `mapstructure:"settle_timeout"`
	} `mapstructure:"app"`
	GitHub struct {
		BaseURL   string        `mapstructure:"base_url"`
		UserAgent string        `mapstructure:"user_agent"`
		Timeout   time.Duration `mapstructure:"timeout"`
	} `mapstructure:"github"`
	Session struct {
		TTL             time.Duration `mapstructure:"ttl"`
		ErrorClearDelay time.Duration `mapstructure:"error_clear_delay"`
		DefaultUsername string        `mapstructure:"default_username"`
		SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	} `mapstructure:"session"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.settle_timeout", 8*time.Second)

	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.user_agent", "devfinder")
	v.SetDefault("github.timeout", 10*time.Second)

	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.error_clear_delay", 10*time.Second)
	v.SetDefault("session.default_username", "octocat")
	v.SetDefault("session.sweep_interval", time.Minute)

	v.SetDefault("kafka.topic", "lookup.events")
	v.SetDefault("kafka.group_id", "lookup-recorder-group")
}

// LoadConfig reads .env and config.yaml from the given directories (the
// working directory when none is given) and lets environment variables win.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, filepath.Join(p, ".env"))
	}
	for _, f := range envFiles {
		if loadErr := godotenv.Load(f); loadErr == nil {
			break
		}
	}

	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, err
		}
		log.Printf("note: config.yaml not found, using defaults and environment")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.settle_timeout", "APP_SETTLE_TIMEOUT")
	v.BindEnv("github.base_url", "GITHUB_BASE_URL")
	v.BindEnv("github.user_agent", "GITHUB_USER_AGENT")
	v.BindEnv("github.timeout", "GITHUB_TIMEOUT")
	v.BindEnv("session.ttl", "SESSION_TTL")
	v.BindEnv("session.error_clear_delay", "SESSION_ERROR_CLEAR_DELAY")
	v.BindEnv("session.default_username", "SESSION_DEFAULT_USERNAME")
	v.BindEnv("session.sweep_interval", "SESSION_SWEEP_INTERVAL")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_TOPIC")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}
