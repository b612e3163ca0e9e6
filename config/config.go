package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Tts      TtsConfig      `mapstructure:"tts"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Google   GoogleConfig   `mapstructure:"google"`
	Output   OutputConfig   `mapstructure:"output"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	TemplatesDir   string   `mapstructure:"templates_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Synthesizer selection
type TtsConfig struct {
	Provider string `mapstructure:"provider"` // "openai", "google" or "dummy"
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // Optional, defaults to OpenAI API
	Timeout int    `mapstructure:"timeout"`  // seconds
}

type GoogleConfig struct {
	CredentialsFile string            `mapstructure:"credentials_file"`
	LanguageCode    string            `mapstructure:"language_code"`
	DefaultVoice    string            `mapstructure:"default_voice"`
	Voices          map[string]string `mapstructure:"voices"` // studio voice -> google voice name
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// The encoder binary is only handed to downstream audio tooling.
type AudioConfig struct {
	FFmpegPath string `mapstructure:"ffmpeg_path"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Enabled bool   `mapstructure:"enabled"`
}

type AuthConfig struct {
	SessionSecret string `mapstructure:"session_secret"`
	PasswordHash  string `mapstructure:"password_hash"` // bcrypt; empty disables the login gate
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.templates_dir", "./web/templates")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:8080"})

	v.SetDefault("tts.provider", "openai")

	v.SetDefault("openai.model", "tts-1-hd")
	v.SetDefault("openai.timeout", 60)

	v.SetDefault("google.language_code", "en-US")
	v.SetDefault("google.default_voice", "en-US-Chirp-HD-F")

	v.SetDefault("output.dir", "~/Desktop/TTS_Output")
	v.SetDefault("audio.ffmpeg_path", `C:\ffmpeg\ffmpeg.exe`)

	v.SetDefault("database.path", "./ttsstudio.db")
	v.SetDefault("database.enabled", true)

	v.SetDefault("auth.session_secret", "your-secret-key-change-this-in-production")

	v.SetDefault("log.level", "info")
}

// Load reads config.yaml (and config.local.yaml on top of it), the .env file
// and the environment. A missing config file is not an error.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.BindEnv("openai.api_key", "TTS_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("google.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("server.port", "PORT")

	v.SetEnvPrefix("TTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	// Local overrides (ignored by git)
	v.SetConfigName("config.local")
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to merge local config: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	dir, err := homedir.Expand(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to expand output dir %q: %w", cfg.Output.Dir, err)
	}
	cfg.Output.Dir = dir

	return &cfg, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	return decode(v)
}
