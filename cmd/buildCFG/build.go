package buildCFG

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
)

type ServerConfig struct {
	Port string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

type SessionConfig struct {
	TTL time.Duration
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	return ServerConfig{Port: port}
}

// BuildBackendConfig resolves the external API base URL. The environment
// variable wins over config.yaml, matching how the deployment injects it.
func BuildBackendConfig(cfg *config.Config, log *zerolog.Logger) (BackendConfig, error) {
	baseURL := os.Getenv("CSA_BACKEND_BASE_URL")
	if baseURL == "" {
		baseURL = cfg.GetString("backend.base_url")
	}
	if baseURL == "" {
		return BackendConfig{}, fmt.Errorf("backend base URL is not configured")
	}

	timeoutSec := cfg.GetInt("backend.timeout_seconds")
	if timeoutSec <= 0 {
		timeoutSec = 15
	}

	log.Info().Str("base_url", baseURL).Msg("backend API configured")
	return BackendConfig{
		BaseURL: baseURL,
		Timeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	url := cfg.GetString("rabbit.url")
	if url == "" {
		return RabbitConfig{}, fmt.Errorf("rabbit.url is not configured")
	}
	rc := RabbitConfig{
		Url:      url,
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.Exchange == "" {
		rc.Exchange = "csa.notifications"
	}
	if rc.Queue == "" {
		rc.Queue = "csa.notifications.mail"
	}
	log.Info().Str("exchange", rc.Exchange).Str("queue", rc.Queue).Msg("RabbitMQ configured")
	return rc, nil
}

func BuildSMTPConfig(cfg *config.Config, log *zerolog.Logger) (SMTPConfig, error) {
	sc := SMTPConfig{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetString("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: os.Getenv("CSA_SMTP_PASSWORD"),
	}
	if sc.Host == "" || sc.From == "" {
		return SMTPConfig{}, fmt.Errorf("smtp.host and smtp.from must be configured")
	}
	if sc.Port == "" {
		sc.Port = "587"
	}
	if sc.Password == "" {
		log.Warn().Msg("CSA_SMTP_PASSWORD is empty, mail sending will likely fail")
	}
	return sc, nil
}

func BuildSessionConfig(cfg *config.Config) SessionConfig {
	ttlHours := cfg.GetInt("session.ttl_hours")
	if ttlHours <= 0 {
		ttlHours = 168
	}
	return SessionConfig{TTL: time.Duration(ttlHours) * time.Hour}
}
