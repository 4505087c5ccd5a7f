package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string `validate:"oneof=development production staging test"`
	Server     Server
	Database   Database
	Redis      Redis
	Supabase   Supabase
	AI         AI
	Transcript Transcript
	Metadata   Metadata
}

type Server struct {
	Port          string `validate:"required,numeric"`
	SessionSecret string `validate:"required,min=16"`
	CookieSecure  bool
}

type Database struct {
	Driver   string `validate:"oneof=postgres sqlite"`
	Host     string `validate:"required_if=Driver postgres"`
	Port     string `validate:"required_if=Driver postgres"`
	User     string `validate:"required_if=Driver postgres"`
	Password string
	Name     string `validate:"required_if=Driver postgres"`
	SSLMode  string `validate:"omitempty,oneof=disable require verify-ca verify-full"`
	Path     string `validate:"required_if=Driver sqlite"`
}

// Redis is optional. An empty Addr keeps generated quizzes in process memory.
type Redis struct {
	Addr     string
	Password string
	DB       int           `validate:"min=0,max=15"`
	QuizTTL  time.Duration `validate:"min=1m"`
}

type Supabase struct {
	URL       string `validate:"required,url"`
	AnonKey   string `validate:"required"`
	JWTSecret string
}

type AI struct {
	Provider     string `validate:"oneof=gemini openai"`
	GeminiApiKey string
	GeminiModel  string `validate:"required"`
	OpenAIApiKey string
	OpenAIModel  string        `validate:"required"`
	Timeout      time.Duration `validate:"min=1s"`
}

type Transcript struct {
	Source   string `validate:"oneof=youtube http"`
	Endpoint string `validate:"required_if=Source http"`
	Language string
}

type Metadata struct {
	Endpoint      string        `validate:"required,url"`
	ClientTimeout time.Duration `validate:"min=1s"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "require")
	v.SetDefault("DATABASE_PATH", "vidcert.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("QUIZ_TTL", "2h")
	v.SetDefault("AI_PROVIDER", "gemini")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	v.SetDefault("AI_TIMEOUT", "60s")
	v.SetDefault("TRANSCRIPT_SOURCE", "youtube")
	v.SetDefault("TRANSCRIPT_LANGUAGE", "en")
	v.SetDefault("METADATA_ENDPOINT", "https://noembed.com/embed")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "15s")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file, relying on environment")
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	var config Config

	config.Env = v.GetString("APP_ENV")

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.SessionSecret = v.GetString("SESSION_SECRET")
	config.Server.CookieSecure = v.GetBool("COOKIE_SECURE")

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.Path = v.GetString("DATABASE_PATH")

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.QuizTTL = v.GetDuration("QUIZ_TTL")

	config.Supabase.URL = strings.TrimSuffix(v.GetString("SUPABASE_URL"), "/")
	config.Supabase.AnonKey = v.GetString("SUPABASE_ANON_KEY")
	config.Supabase.JWTSecret = v.GetString("SUPABASE_JWT_SECRET")

	config.AI.Provider = strings.ToLower(v.GetString("AI_PROVIDER"))
	config.AI.GeminiApiKey = v.GetString("GEMINI_API_KEY")
	config.AI.GeminiModel = v.GetString("GEMINI_MODEL")
	config.AI.OpenAIApiKey = v.GetString("OPENAI_API_KEY")
	config.AI.OpenAIModel = v.GetString("OPENAI_MODEL")
	config.AI.Timeout = v.GetDuration("AI_TIMEOUT")

	config.Transcript.Source = strings.ToLower(v.GetString("TRANSCRIPT_SOURCE"))
	config.Transcript.Endpoint = v.GetString("TRANSCRIPT_ENDPOINT")
	config.Transcript.Language = v.GetString("TRANSCRIPT_LANGUAGE")

	config.Metadata.Endpoint = v.GetString("METADATA_ENDPOINT")
	config.Metadata.ClientTimeout = v.GetDuration("HTTP_CLIENT_TIMEOUT")

	if err := validate(config); err != nil {
		return nil, err
	}

	log.Info().
		Str("env", config.Env).
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Bool("redis", config.Redis.Addr != "").
		Str("ai_provider", config.AI.Provider).
		Str("transcript_source", config.Transcript.Source).
		Msg("Config loaded")
	return &config, nil
}

func validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var errMsgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errMsgs = append(errMsgs, fmt.Sprintf("Field: %s, Tag: %s, Param: %s", fe.Namespace(), fe.Tag(), fe.Param()))
			}
		} else {
			errMsgs = append(errMsgs, err.Error())
		}
		return fmt.Errorf("config validation failed: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}

// IsDevelopment reports whether verbose, human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "test"
}
