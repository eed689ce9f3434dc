package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"vidsocial/infrastructure/logger"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Media       Media       `json:"media"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	Logger      Logger      `json:"logger"`
	Cors        Cors        `json:"cors"`
	RateLimit   RateLimit   `json:"rateLimit"`
}

type App struct {
	Port           int           `json:"port"`
	SecretKey      string        `json:"secretKey"`
	AccessTokenTTL time.Duration `json:"accessTokenTTL"`
	CookieSecure   bool          `json:"cookieSecure"`
	TLSEnabled     bool          `json:"tlsEnabled"`
	TLSCertFile    string        `json:"tlsCertFile"`
	TLSKeyFile     string        `json:"tlsKeyFile"`
}

type Database struct {
	Mongo Db `json:"mongo"`
}

type Db struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Password string        `json:"password"`
	Database int           `json:"database"`
	Username string        `json:"username"`
	VideoTTL time.Duration `json:"videoTTL"`
}

func (r RedisClient) Addr() string {
	if r.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type Media struct {
	Endpoint      string `json:"endpoint"`
	AccessKey     string `json:"accessKey"`
	SecretKey     string `json:"secretKey"`
	UseSSL        bool   `json:"useSSL"`
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	PublicBaseURL string `json:"publicBaseURL"`
	TempDir       string `json:"tempDir"`
	MaxUploadMB   int64  `json:"maxUploadMB"`
}

type Pubsub struct {
	ProjectID       string `json:"projectID"`
	TopicID         string `json:"topicID"`
	CredentialsFile string `json:"credentialsFile"`
}

type ServiceBus struct {
	Namespace        string `json:"namespace"`
	ConnectionString string `json:"connectionString"`
	Queue            string `json:"queue"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

// RateLimit applies per client IP to register and login.
type RateLimit struct {
	RPS   float64 `json:"rps"`
	Burst int     `json:"burst"`
}

var C Config

func init() {
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initServices(&C)
	logger.SetLevel(C.Logger.Level)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	mongo := &C.Database.Mongo
	setString(&mongo.URI, "MONGO_URI")
	setString(&mongo.Host, "MONGO_HOST")
	setString(&mongo.Port, "MONGO_PORT")
	setString(&mongo.User, "MONGO_USER")
	setString(&mongo.Password, "MONGO_PASSWORD")
	setString(&mongo.Name, "MONGO_DB_NAME")
	if mongo.Name == "" {
		mongo.Name = "vidsocial"
	}

	redis := &C.RedisClient
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		host, port, found := strings.Cut(addr, ":")
		redis.Host = host
		if found {
			redis.Port = port
		}
	}
	setString(&redis.Password, "REDIS_PASSWORD")
	setString(&redis.Username, "REDIS_USERNAME")
	if redis.Host != "" && redis.Port == "" {
		redis.Port = "6379"
	}
	if redis.VideoTTL <= 0 {
		redis.VideoTTL = 5 * time.Minute
	}
}

func initApp(C *Config) {
	// Prefer SECRET_KEY from environment for JWT verification; overrides config file when provided
	setString(&C.App.SecretKey, "SECRET_KEY")
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			C.App.AccessTokenTTL = d
		}
	}
	if C.App.AccessTokenTTL <= 0 {
		C.App.AccessTokenTTL = 24 * time.Hour
	}
	setBool(&C.App.CookieSecure, "COOKIE_SECURE")
	setBool(&C.App.TLSEnabled, "TLS_ENABLED")
	setString(&C.App.TLSCertFile, "TLS_CERT_FILE")
	setString(&C.App.TLSKeyFile, "TLS_KEY_FILE")
	if C.App.TLSEnabled {
		C.App.CookieSecure = true
		logger.GetLogger().WithFields(map[string]interface{}{"cert": C.App.TLSCertFile, "key": C.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		C.Cors.AllowOrigins = splitList(v)
	}
	if len(C.Cors.AllowOrigins) == 0 {
		C.Cors.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if C.RateLimit.RPS <= 0 {
		C.RateLimit.RPS = 1
	}
	if C.RateLimit.Burst <= 0 {
		C.RateLimit.Burst = 5
	}
	setString(&C.Logger.Level, "LOG_LEVEL")
}

func initServices(C *Config) {
	media := &C.Media
	setString(&media.Endpoint, "MINIO_ENDPOINT")
	setString(&media.AccessKey, "MINIO_ACCESS_KEY")
	setString(&media.SecretKey, "MINIO_SECRET_KEY")
	setBool(&media.UseSSL, "MINIO_USE_SSL")
	setString(&media.Bucket, "MINIO_BUCKET")
	setString(&media.PublicBaseURL, "MINIO_PUBLIC_BASE_URL")
	setString(&media.TempDir, "MEDIA_TEMP_DIR")
	if media.Bucket == "" {
		media.Bucket = "vidsocial"
	}
	if media.TempDir == "" {
		media.TempDir = os.TempDir()
	}
	if media.MaxUploadMB <= 0 {
		media.MaxUploadMB = 512
	}

	setString(&C.Pubsub.ProjectID, "PUBSUB_PROJECT_ID")
	setString(&C.Pubsub.TopicID, "PUBSUB_TOPIC_ID")
	setString(&C.Pubsub.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	if C.Pubsub.TopicID == "" {
		C.Pubsub.TopicID = "activity"
	}

	setString(&C.ServiceBus.Namespace, "SERVICEBUS_NAMESPACE")
	setString(&C.ServiceBus.ConnectionString, "SERVICEBUS_CONNECTION_STRING")
	setString(&C.ServiceBus.Queue, "SERVICEBUS_QUEUE")
	if C.ServiceBus.Queue == "" {
		C.ServiceBus.Queue = "activity"
	}
}

// setString overrides dst with the environment value of key when present.
func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True":
		*dst = true
	case "0", "false", "FALSE", "False":
		*dst = false
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
