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
		Port    string `mapstructure:"port"`
		Env     string `mapstructure:"env"`
		SiteURL string `mapstructure:"site_url"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret         string        `mapstructure:"jwt_secret"`
		TokenLifespan     time.Duration `mapstructure:"token_lifespan"`
		HandoffCookieName string        `mapstructure:"handoff_cookie_name"`
		HandoffTokenTTL   time.Duration `mapstructure:"handoff_token_ttl"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Enquiry struct {
		SinkURL       string        `mapstructure:"sink_url"`
		NotifyURL     string        `mapstructure:"notify_url"`
		NotifyTimeout time.Duration `mapstructure:"notify_timeout"`
	} `mapstructure:"enquiry"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func LoadConfig(path ...string) (cfg Config, err error) {

	root := "."
	if len(path) > 0 {
		root = path[0]
	}

	err = godotenv.Load(filepath.Join(root, ".env"))
	if err != nil {
		log.Println("warning: .env file not found, use system environment.")
	}

	viper.AddConfigPath(root)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.site_url", "APP_SITE_URL")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("auth.handoff_cookie_name", "HANDOFF_COOKIE_NAME")
	viper.BindEnv("auth.handoff_token_ttl", "HANDOFF_TOKEN_TTL")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	viper.BindEnv("enquiry.sink_url", "ENQUIRY_SINK_URL")
	viper.BindEnv("enquiry.notify_url", "ENQUIRY_NOTIFY_URL")
	viper.BindEnv("enquiry.notify_timeout", "ENQUIRY_NOTIFY_TIMEOUT")

	viper.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.site_url", "http://localhost:3000")
	viper.SetDefault("auth.handoff_cookie_name", "authToken")
	viper.SetDefault("auth.handoff_token_ttl", 5*time.Minute)
	viper.SetDefault("enquiry.notify_timeout", 15*time.Second)

	err = viper.Unmarshal(&cfg)
	return
}
