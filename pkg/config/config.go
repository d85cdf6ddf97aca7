package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Links     LinksConfig     `mapstructure:"links"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	// Backend selects the session store: "memory", "postgres" or "redis".
	Backend    string        `mapstructure:"backend"`
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	User       string        `mapstructure:"user"`
	Password   string        `mapstructure:"password"`
	DBName     string        `mapstructure:"dbname"`
	SSLMode    string        `mapstructure:"sslmode"`
	RedisURL   string        `mapstructure:"redis_url"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type AnalysisConfig struct {
	// QuickFloor is the minimum display delay of the quick stage.
	QuickFloor time.Duration `mapstructure:"quick_floor"`
	// PromptDelay is how long the gate waits before the engagement prompt
	// becomes presentable.
	PromptDelay    time.Duration `mapstructure:"prompt_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// LinksConfig holds the three outbound engagement targets offered by the
// gate prompt.
type LinksConfig struct {
	Line      string `mapstructure:"line"`
	X         string `mapstructure:"x"`
	Instagram string `mapstructure:"instagram"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Backend:  "postgres",
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.backend", "memory")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.session_ttl", 24*time.Hour)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 1024)
	v.SetDefault("openai.temperature", 0.3)
	v.SetDefault("analysis.quick_floor", 1500*time.Millisecond)
	v.SetDefault("analysis.prompt_delay", time.Second)
	v.SetDefault("analysis.request_timeout", 30*time.Second)
	v.SetDefault("links.line", "https://lin.ee/wwmzy4G")
	v.SetDefault("links.x", "https://x.com/NowMe_app_")
	v.SetDefault("links.instagram", "https://www.instagram.com/now_me_app")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		dbConfig.SessionTTL = config.Database.SessionTTL
		config.Database = dbConfig
	}

	// Get other environment variables
	if redisURL := v.GetString("REDIS_URL"); redisURL != "" {
		config.Database.Backend = "redis"
		config.Database.RedisURL = redisURL
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if model := v.GetString("OPENAI_MODEL"); model != "" {
		config.OpenAI.Model = model
	}

	if port := v.GetInt("PORT"); port != 0 {
		config.Server.Port = port
	}

	return &config, nil
}
