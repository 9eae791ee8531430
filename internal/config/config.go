package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Log struct {
		Path string `yaml:"path"`
	} `yaml:"log"`

	Generator struct {
		Backend        string  `yaml:"backend"` // openai, gemini, hf
		Model          string  `yaml:"model"`
		Endpoint       string  `yaml:"endpoint"` // hf inference URL
		MaxNewTokens   int     `yaml:"maxNewTokens"`
		Temperature    float32 `yaml:"temperature"`
		ReturnFullText bool    `yaml:"returnFullText"`
	} `yaml:"generator"`

	Archive struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"archive"`
}

// Load baca file config.yaml; a .env alongside the binary is loaded
// first so API tokens can live outside the config file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Path == "" {
		c.Log.Path = "generated_reports.xlsx"
	}
	if c.Generator.Backend == "" {
		c.Generator.Backend = "openai"
	}
	if c.Generator.MaxNewTokens == 0 {
		c.Generator.MaxNewTokens = 128
	}
	if c.Generator.Temperature == 0 {
		c.Generator.Temperature = 0.7
	}
}

// GeneratorToken is the bearer credential for the configured backend,
// read from the environment once at startup.
func (c *Config) GeneratorToken() (string, error) {
	var key string
	switch c.Generator.Backend {
	case "openai":
		key = "OPENAI_API_KEY"
	case "gemini":
		key = "GEMINI_API_KEY"
	case "hf":
		key = "HF_API_TOKEN"
	default:
		return "", fmt.Errorf("unknown generator backend: %s", c.Generator.Backend)
	}
	token := os.Getenv(key)
	if token == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return token, nil
}
