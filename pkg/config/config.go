package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	ErrNoRPCURL       = fmt.Errorf("eth.rpc_url must be set")
	ErrBadQuoteTTL    = fmt.Errorf("quote.ttl must be a positive duration")
	ErrBadLogLevel    = fmt.Errorf("log.level is not a logrus level")
	ErrPrivateKeyFile = fmt.Errorf("error in reading private key file")
)

type Config struct {
	Port        string
	AllowOrigin []string
	LogLevel    logrus.Level

	RPCURL         string
	PrivateKey     string
	PrivateKeyFile string

	Messages Messages

	QuoteEnabled bool
	QuoteURL     string
	QuoteAPIKey  string
	QuoteCoin    string
	QuoteFiat    string
	QuoteTTL     time.Duration
}

type Messages struct {
	Success       string
	Failure       string
	InvalidFields string
	Disconnected  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("cors.allow_origins", []string{"http://localhost:4200"})
	v.SetDefault("log.level", "info")
	v.SetDefault("eth.rpc_url", "http://127.0.0.1:8545")
	v.SetDefault("status.messages.success", "Transacción enviada con éxito!")
	v.SetDefault("status.messages.failure", "Error enviando la transacción.")
	v.SetDefault("status.messages.invalid_fields", "Por favor, completa todos los campos correctamente")
	v.SetDefault("status.messages.disconnected", "Cartera desconectada")
	v.SetDefault("quote.enabled", false)
	v.SetDefault("quote.coin", "eth")
	v.SetDefault("quote.fiat", "usd")
	v.SetDefault("quote.ttl", "10m")
}

// Load читает .env, затем configs/config.yaml (или файл из path) и переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Infof("Файл .env не загружен: %s", err)
	}

	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Warn("Config file not found, using defaults")
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("port"),
		AllowOrigin:    v.GetStringSlice("cors.allow_origins"),
		RPCURL:         strings.TrimSpace(v.GetString("eth.rpc_url")),
		PrivateKey:     strings.TrimSpace(os.Getenv("WALLET_PRIVATE_KEY")),
		PrivateKeyFile: strings.TrimSpace(v.GetString("eth.private_key_file")),
		Messages: Messages{
			Success:       v.GetString("status.messages.success"),
			Failure:       v.GetString("status.messages.failure"),
			InvalidFields: v.GetString("status.messages.invalid_fields"),
			Disconnected:  v.GetString("status.messages.disconnected"),
		},
		QuoteEnabled: v.GetBool("quote.enabled"),
		QuoteURL:     v.GetString("quote.url"),
		QuoteAPIKey:  os.Getenv("COINGECKO_API_KEY"),
		QuoteCoin:    v.GetString("quote.coin"),
		QuoteFiat:    v.GetString("quote.fiat"),
	}
	if env := os.Getenv("PORT"); env != "" {
		cfg.Port = env
	}

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, ErrBadLogLevel
	}
	cfg.LogLevel = level

	if cfg.RPCURL == "" {
		return nil, ErrNoRPCURL
	}

	cfg.QuoteTTL, err = time.ParseDuration(v.GetString("quote.ttl"))
	if err != nil || cfg.QuoteTTL <= 0 {
		return nil, ErrBadQuoteTTL
	}

	return cfg, nil
}

// ReadPrivateKey отдаёт ключ из окружения или из файла; читается при подключении,
// чтобы ключ не держать в конфиге дольше нужного
func (c *Config) ReadPrivateKey() (string, error) {
	if c.PrivateKey != "" {
		return c.PrivateKey, nil
	}
	if c.PrivateKeyFile == "" {
		return "", fmt.Errorf("WALLET_PRIVATE_KEY or eth.private_key_file must be set")
	}
	content, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		logrus.Errorf("Failed to read private key file - %v", err)
		return "", ErrPrivateKeyFile
	}
	return strings.TrimSpace(string(content)), nil
}
