package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Photos   PhotosConfig   `yaml:"photos"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	BasePath   string `yaml:"base_path"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`

	// DSNOverride takes precedence over the discrete fields when set.
	DSNOverride string `yaml:"dsn"`
}

func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	FlightsCacheTTL int    `yaml:"flights_cache_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	PassengerTopic string   `yaml:"passenger_topic"`
	GroupID        string   `yaml:"group_id"`
}

type AuthConfig struct {
	JWTSecret         string `yaml:"jwt_secret"`
	TokenTTLMinutes   int    `yaml:"token_ttl_minutes"`
	MinPasswordLength int    `yaml:"min_password_length"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// PhotosConfig selects the photo backend. Driver is "local" or "s3".
type PhotosConfig struct {
	Driver     string `yaml:"driver"`
	Dir        string `yaml:"dir"`
	PublicPath string `yaml:"public_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`

	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
	S3PublicURL string `yaml:"s3_public_url"`
}

type WorkerConfig struct {
	PhotoSweepMinutes int `yaml:"photo_sweep_minutes"`
	PhotoGraceMinutes int `yaml:"photo_grace_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document, fills unset fields with defaults and
// applies environment overrides.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.BasePath == "" {
		c.HTTP.BasePath = "/api/dorado"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Redis.FlightsCacheTTL == 0 {
		c.Redis.FlightsCacheTTL = 60
	}
	if c.Kafka.PassengerTopic == "" {
		c.Kafka.PassengerTopic = "passenger_events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "dorado-worker"
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = 24 * 60
	}
	if c.Auth.MinPasswordLength == 0 {
		c.Auth.MinPasswordLength = 6
	}
	if c.Photos.Driver == "" {
		c.Photos.Driver = "local"
	}
	if c.Photos.Dir == "" {
		c.Photos.Dir = "public/uploads"
	}
	if c.Photos.PublicPath == "" {
		c.Photos.PublicPath = "/uploads"
	}
	if c.Photos.MaxSizeMB == 0 {
		c.Photos.MaxSizeMB = 5
	}
	if c.Worker.PhotoSweepMinutes == 0 {
		c.Worker.PhotoSweepMinutes = 30
	}
	if c.Worker.PhotoGraceMinutes == 0 {
		c.Worker.PhotoGraceMinutes = 60
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSNOverride = v
	}
}
